package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled patterns for comment and preamble stripping.
var (
	// A comment runs from an unescaped % to end of line. The marker is
	// captured together with its preceding character so \% survives.
	commentPattern = regexp.MustCompile(`(?m)(^|[^\\])%[^\n]*`)

	beginDocumentPattern = regexp.MustCompile(`\\begin\{document\}`)

	documentClassPattern = regexp.MustCompile(`\\documentclass(\[[^\]]*\])?\{[^}]*\}`)

	// Title metadata is captured before the preamble is discarded so a later
	// \maketitle can still render it.
	titlePattern  = regexp.MustCompile(`\\title\{([^}]*)\}`)
	authorPattern = regexp.MustCompile(`\\author\{([^}]*)\}`)
	datePattern   = regexp.MustCompile(`\\date\{([^}]*)\}`)

	// Preamble-only directives with no visual output. Dropped wherever they
	// appear so they never leak into the body as noise.
	preambleDirectives = []*regexp.Regexp{
		regexp.MustCompile(`\\usepackage(\[[^\]]*\])?\{[^}]*\}`),
		regexp.MustCompile(`\\selectlanguage\{[^}]*\}`),
		regexp.MustCompile(`\\(?:non)?frenchspacing\b`),
		regexp.MustCompile(`\\hyphenation\{[^}]*\}`),
		regexp.MustCompile(`\\setlength\{[^}]*\}\{[^}]*\}`),
		regexp.MustCompile(`\\newlength\{[^}]*\}`),
		regexp.MustCompile(`\\addtolength\{[^}]*\}\{[^}]*\}`),
		regexp.MustCompile(`\\pagestyle\{[^}]*\}`),
		regexp.MustCompile(`\\pagenumbering\{[^}]*\}`),
		regexp.MustCompile(`\\title\{[^}]*\}`),
		regexp.MustCompile(`\\author\{[^}]*\}`),
		regexp.MustCompile(`\\date\{[^}]*\}`),
	}
)

// TitleMeta is the document metadata captured by the stripper.
type TitleMeta struct {
	Title  string
	Author string
	Date   string
}

// Stripper removes comments, extracts the document body, and drops
// preamble-only directives. One instance serves one compile pass; it retains
// captured title metadata for the formatter's \maketitle handling.
type Stripper struct {
	meta TitleMeta
}

// Strip runs the three passes in order. Both document markers absent means
// the whole input is treated as the body (degrades gracefully). Title
// metadata is captured only after comments are stripped, so a commented-out
// \title never feeds \maketitle.
func (s *Stripper) Strip(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	body = StripComments(body)
	s.meta = captureTitleMeta(body)
	body = ExtractDocumentBody(body)
	body = DropPreambleDirectives(body)
	return body
}

// Meta returns the title metadata captured by the last Strip call.
func (s *Stripper) Meta() TitleMeta {
	return s.meta
}

// HasDocumentClass reports whether the body declares a document class.
// Checked by the orchestrator on the assembled source, before stripping.
func HasDocumentClass(body string) bool {
	return documentClassPattern.MatchString(body)
}

// StripComments removes trailing comment text on each line. Escaped \% is
// preserved.
func StripComments(body string) string {
	return commentPattern.ReplaceAllString(body, "$1")
}

// ExtractDocumentBody returns the content between \begin{document} and the
// last \end{document}. If either marker is missing the whole input is the
// body.
func ExtractDocumentBody(body string) string {
	loc := beginDocumentPattern.FindStringIndex(body)
	if loc == nil {
		return body
	}
	end := strings.LastIndex(body, `\end{document}`)
	if end < 0 || end < loc[1] {
		return body
	}
	return body[loc[1]:end]
}

// DropPreambleDirectives removes the fixed allow-list of non-visual setup
// directives.
func DropPreambleDirectives(body string) string {
	body = documentClassPattern.ReplaceAllString(body, "")
	for _, p := range preambleDirectives {
		body = p.ReplaceAllString(body, "")
	}
	return body
}

func captureTitleMeta(body string) TitleMeta {
	var meta TitleMeta
	if m := titlePattern.FindStringSubmatch(body); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}
	if m := authorPattern.FindStringSubmatch(body); m != nil {
		meta.Author = strings.TrimSpace(m[1])
	}
	if m := datePattern.FindStringSubmatch(body); m != nil {
		meta.Date = strings.TrimSpace(m[1])
	}
	return meta
}
