package pipeline

import (
	"path"
	"regexp"
	"strings"
)

// FileLookup abstracts the caller-supplied file snapshot. Names are
// basenames; the caller guarantees uniqueness for one compile pass.
type FileLookup interface {
	Lookup(name string) (content string, ok bool)
}

// DefaultSourceExt is appended to inclusion targets that carry no extension.
const DefaultSourceExt = ".tex"

// includePattern matches \input{path} and \include{path}. The two spellings
// are treated identically.
var includePattern = regexp.MustCompile(`\\(?:input|include)\{([^}]*)\}`)

// ResolveImports expands inclusion directives in entryContent into one
// logical body. entryName seeds the visited set so a file including the
// entry point is caught as a cycle.
//
// Cycle protection is per branch: each child expansion receives a copy of
// the current visited set, so diamond-shaped includes (A includes B and C,
// both including D) succeed while true ancestor cycles (A->B->A) degrade to
// an inline marker without aborting sibling expansion.
func ResolveImports(entryName, entryContent string, files FileLookup) string {
	visited := map[string]struct{}{NormalizeSourceName(entryName): {}}
	return expandIncludes(entryContent, files, visited)
}

func expandIncludes(content string, files FileLookup, visited map[string]struct{}) string {
	return includePattern.ReplaceAllStringFunc(content, func(directive string) string {
		target := includePattern.FindStringSubmatch(directive)[1]
		name := NormalizeSourceName(target)

		if _, seen := visited[name]; seen {
			return ErrorMarker("recursive loop detected: " + name)
		}

		raw, ok := files.Lookup(name)
		if !ok {
			return ErrorMarker("missing file: " + name)
		}

		// Fresh copy per branch: sibling inclusions of the same file stay
		// independently allowed.
		branch := make(map[string]struct{}, len(visited)+1)
		for k := range visited {
			branch[k] = struct{}{}
		}
		branch[name] = struct{}{}

		expanded := expandIncludes(raw, files, branch)

		// Boundary markers are comments: visible for traceability between
		// this stage and the stripper, never part of rendered output.
		return "% begin " + name + "\n" + expanded + "\n% end " + name
	})
}

// NormalizeSourceName reduces an inclusion target to a basename and appends
// the default extension when absent.
func NormalizeSourceName(target string) string {
	name := path.Base(strings.TrimSpace(strings.ReplaceAll(target, `\`, "/")))
	if name == "." || name == "/" {
		return ""
	}
	if !strings.Contains(name, ".") {
		name += DefaultSourceExt
	}
	return name
}
