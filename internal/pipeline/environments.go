package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Precompiled environment patterns. (?s) lets interiors span lines.
var (
	verbatimPattern   = regexp.MustCompile(`(?s)\\begin\{verbatim\}\n?(.*?)\\end\{verbatim\}`)
	lstlistingPattern = regexp.MustCompile(`(?s)\\begin\{lstlisting\}(?:\[([^\]]*)\])?\n?(.*?)\\end\{lstlisting\}`)
	itemizePattern    = regexp.MustCompile(`(?s)\\begin\{itemize\}(.*?)\\end\{itemize\}`)
	enumeratePattern  = regexp.MustCompile(`(?s)\\begin\{enumerate\}(.*?)\\end\{enumerate\}`)
	abstractPattern   = regexp.MustCompile(`(?s)\\begin\{abstract\}(.*?)\\end\{abstract\}`)
	quotePattern      = regexp.MustCompile(`(?s)\\begin\{quot(?:e|ation)\}(.*?)\\end\{quot(?:e|ation)\}`)
	centerPattern     = regexp.MustCompile(`(?s)\\begin\{center\}(.*?)\\end\{center\}`)
	minipagePattern   = regexp.MustCompile(`(?s)\\begin\{minipage\}(?:\[[^\]]*\])?\{([^}]*)\}(.*?)\\end\{minipage\}`)

	listingLanguagePattern = regexp.MustCompile(`language\s*=\s*([A-Za-z0-9+#-]+)`)
)

// highlightStyle is the chroma style used for code listings.
const highlightStyle = "github"

// EnvironmentHandler rewrites list, abstract, quotation, centering,
// side-by-side and code-listing environments into block-level HTML.
// Code-listing output is handed to the protected store so no rewrite stage
// can touch it.
type EnvironmentHandler struct {
	protected *ProtectedStore
}

// NewEnvironmentHandler creates a handler storing protected fragments in
// store. The orchestrator restores them after the last stage.
func NewEnvironmentHandler(store *ProtectedStore) *EnvironmentHandler {
	return &EnvironmentHandler{protected: store}
}

// Protect replaces verbatim and listing environments with placeholder
// tokens. It must run before every other rewrite stage, the stripper
// included: a % or a \section inside code would otherwise be stripped as a
// comment or numbered as a real heading.
func (h *EnvironmentHandler) Protect(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	body = h.convertVerbatim(body)
	return h.convertListings(body)
}

// Transform rewrites the remaining supported environments. Code blocks are
// already out of reach, set aside by Protect.
func (h *EnvironmentHandler) Transform(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	body = convertLists(body)
	body = convertAbstract(body)
	body = convertQuotes(body)
	body = convertCenter(body)
	body = convertMinipages(body)
	return body
}

func (h *EnvironmentHandler) convertVerbatim(body string) string {
	return verbatimPattern.ReplaceAllStringFunc(body, func(env string) string {
		code := verbatimPattern.FindStringSubmatch(env)[1]
		block := `<pre class="tex-verbatim">` + html.EscapeString(code) + `</pre>`
		return h.protected.Add(block)
	})
}

func (h *EnvironmentHandler) convertListings(body string) string {
	return lstlistingPattern.ReplaceAllStringFunc(body, func(env string) string {
		m := lstlistingPattern.FindStringSubmatch(env)
		opts, code := m[1], m[2]

		lang := ""
		if lm := listingLanguagePattern.FindStringSubmatch(opts); lm != nil {
			lang = lm[1]
		}

		return h.protected.Add(highlightListing(code, lang))
	})
}

// highlightListing renders code through chroma with inline styles so the
// output is self-contained. An unknown language or a tokenizer failure
// degrades to an escaped plain block.
func highlightListing(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return `<pre class="tex-listing">` + html.EscapeString(code) + `</pre>`
	}

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithPreWrapper(listingWrapper{}))
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return `<pre class="tex-listing">` + html.EscapeString(code) + `</pre>`
	}
	return buf.String()
}

// listingWrapper tags chroma's <pre> with the listing class.
type listingWrapper struct{}

func (listingWrapper) Start(code bool, styleAttr string) string {
	return `<pre class="tex-listing"` + styleAttr + ">"
}

func (listingWrapper) End(code bool) string {
	return "</pre>"
}

func convertLists(body string) string {
	body = itemizePattern.ReplaceAllStringFunc(body, func(env string) string {
		interior := itemizePattern.FindStringSubmatch(env)[1]
		return renderList("ul", interior)
	})
	return enumeratePattern.ReplaceAllStringFunc(body, func(env string) string {
		interior := enumeratePattern.FindStringSubmatch(env)[1]
		return renderList("ol", interior)
	})
}

// renderList converts the interior of a list environment: each \item opens
// one entry running to the next \item or the end of the environment. Text
// before the first \item is dropped.
func renderList(tag, interior string) string {
	parts := strings.Split(interior, `\item`)
	var b strings.Builder
	b.WriteString("<" + tag + ` class="tex-list">`)
	for _, part := range parts[1:] {
		b.WriteString("<li>" + strings.TrimSpace(part) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func convertAbstract(body string) string {
	return abstractPattern.ReplaceAllString(body,
		`<div class="tex-abstract"><div class="tex-abstract-title">Abstract</div>$1</div>`)
}

func convertQuotes(body string) string {
	return quotePattern.ReplaceAllString(body, `<blockquote class="tex-quote">$1</blockquote>`)
}

func convertCenter(body string) string {
	return centerPattern.ReplaceAllString(body, `<div class="tex-center">$1</div>`)
}

func convertMinipages(body string) string {
	return minipagePattern.ReplaceAllStringFunc(body, func(env string) string {
		m := minipagePattern.FindStringSubmatch(env)
		width := widthArgToPercent(m[1])
		// Inline block so two consecutive minipages lay out side by side.
		return fmt.Sprintf(`<div class="tex-minipage" style="width: %.4g%%;">%s</div>`, width, m[2])
	})
}
