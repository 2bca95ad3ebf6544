package tex2html

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-tex2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.FileLookup  = (MapFiles)(nil)
	_ pipeline.AssetLookup = (MapAssets)(nil)
)

// DefaultEntryName is tried first when no entry file name is supplied.
const DefaultEntryName = "main.tex"

// Option customizes a Compiler.
type Option func(*Compiler)

// WithStyle replaces the default stylesheet embedded in the rendered
// document.
func WithStyle(css string) Option {
	return func(c *Compiler) { c.style = css }
}

// WithClock overrides the diagnostic timestamp source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// Compiler runs the document assembly and rendering pipeline. A Compiler is
// stateless between passes and safe for sequential reuse; all per-pass state
// (counters, visited sets, diagnostics) lives inside one Compile call.
type Compiler struct {
	style string
	now   func() time.Time
}

// NewCompiler creates a Compiler with the default stylesheet.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{style: DefaultStyle, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// stage is one named step of the rewrite pipeline. The explicit list makes
// the ordering documented and testable instead of an implicit sequence of
// in-place mutations.
type stage struct {
	name string
	run  func(ctx context.Context, body string) string
}

// Compile resolves entryName against files, runs the staged transformation,
// and returns the rendered document plus its diagnostic log.
//
// Compile never returns an error and never panics outward: fragment-level
// problems degrade to inline markers, and the only fatal condition (no entry
// file locatable at all) yields an empty document with a single error
// diagnostic. Output is deterministic for a fixed snapshot of inputs.
func (c *Compiler) Compile(ctx context.Context, entryName string, files FileResolver, assets AssetResolver) (result *CompileResult) {
	log := newDiagnosticLog(c.now)

	defer func() {
		if r := recover(); r != nil {
			log.add(SeverityError, fmt.Sprintf("internal error: %v", r), entryName)
			result = &CompileResult{Diagnostics: log.entries}
		}
	}()

	entry, content, ok := discoverEntry(entryName, files)
	if !ok {
		log.add(SeverityError, "no entry file found: "+displayEntryName(entryName), entryName)
		return &CompileResult{Diagnostics: log.entries}
	}

	// Import resolution runs first so the document-class check sees the
	// fully assembled source; the check itself runs on comment-stripped
	// text so a commented-out declaration does not count.
	body := pipeline.ResolveImports(entry, content, files)
	hasClass := pipeline.HasDocumentClass(pipeline.StripComments(body))

	stripper := &pipeline.Stripper{}
	store := &pipeline.ProtectedStore{}
	environments := pipeline.NewEnvironmentHandler(store)
	headings := &pipeline.HeadingTransformer{}

	// Code interiors are set aside before any other stage so a % or a
	// heading directive inside a listing is never rewritten or counted.
	stages := []stage{
		{name: "protect", run: environments.Protect},
		{name: "strip", run: stripper.Strip},
	}
	stages = append(stages,
		stage{name: "sections", run: headings.Transform},
		stage{name: "environments", run: environments.Transform},
	)
	// The formatter is built lazily: it needs the title metadata the strip
	// stage captures.
	stages = append(stages,
		stage{name: "format", run: func(ctx context.Context, body string) string {
			return pipeline.NewFormatter(stripper.Meta()).Transform(ctx, body)
		}},
		stage{name: "assets", run: pipeline.NewAssetBinder(assets).Bind},
		stage{name: "math", run: pipeline.NewMathRenderer().Render},
	)

	for _, s := range stages {
		body = s.run(ctx, body)
	}

	body = store.Restore(body)
	body = pipeline.FinalizeMarkers(body)
	rendered := renderDocument(body, c.style)

	if hasClass {
		log.add(SeverityInfo, fmt.Sprintf("rendered %s (~%d bytes)", entry, len(rendered)), entry)
	} else {
		log.add(SeverityWarning, "no \\documentclass declaration found in "+entry, entry)
	}

	return &CompileResult{HTML: rendered, Diagnostics: log.entries}
}

// discoverEntry locates the entry file. An explicit name is normalized
// (default extension appended) and looked up directly; with no name given,
// main.tex is preferred, then the first .tex file in sorted order.
func discoverEntry(entryName string, files FileResolver) (name, content string, ok bool) {
	if entryName != "" {
		name = pipeline.NormalizeSourceName(entryName)
		content, ok = files.Lookup(name)
		return name, content, ok
	}

	if content, ok := files.Lookup(DefaultEntryName); ok {
		return DefaultEntryName, content, true
	}
	for _, candidate := range files.Names() {
		if strings.HasSuffix(candidate, pipeline.DefaultSourceExt) {
			content, ok := files.Lookup(candidate)
			return candidate, content, ok
		}
	}
	return "", "", false
}

func displayEntryName(entryName string) string {
	if entryName == "" {
		return "(no .tex candidate)"
	}
	return pipeline.NormalizeSourceName(entryName)
}
