package pipeline

import (
	"context"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/go-latex/latex"
)

// literalDollarPlaceholder hides \$ from span matching, using the Private
// Use Area like the pipeline's other markers. Without it, two escaped
// dollars on one line would pair up into a bogus inline span.
const literalDollarPlaceholder = "\uE004"

// Math span patterns. Display spans must be matched before inline spans so a
// $$...$$ block is never mis-split into two inline spans.
var (
	displayDollarPattern  = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)
	displayBracketPattern = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	inlineDollarPattern   = regexp.MustCompile(`\$([^$\n]+?)\$`)

	supPattern      = regexp.MustCompile(`\^\{([^}]*)\}|\^(\S)`)
	subPattern      = regexp.MustCompile(`_\{([^}]*)\}|_(\S)`)
	fracPattern     = regexp.MustCompile(`\\frac\{([^}]*)\}\{([^}]*)\}`)
	sqrtPattern     = regexp.MustCompile(`\\sqrt\{([^}]*)\}`)
	textCmdPattern  = regexp.MustCompile(`\\(?:text|mathrm)\{([^}]*)\}`)
	delimCmdPattern = regexp.MustCompile(`\\(?:left|right)\b`)
)

// mathSymbols maps TeX commands to their typeset characters.
var mathSymbols = map[string]string{
	`\alpha`: "α", `\beta`: "β", `\gamma`: "γ", `\delta`: "δ",
	`\epsilon`: "ε", `\zeta`: "ζ", `\eta`: "η", `\theta`: "θ",
	`\lambda`: "λ", `\mu`: "μ", `\pi`: "π", `\rho`: "ρ",
	`\sigma`: "σ", `\tau`: "τ", `\phi`: "φ", `\chi`: "χ",
	`\psi`: "ψ", `\omega`: "ω",
	`\Gamma`: "Γ", `\Delta`: "Δ", `\Theta`: "Θ", `\Lambda`: "Λ",
	`\Pi`: "Π", `\Sigma`: "Σ", `\Phi`: "Φ", `\Psi`: "Ψ", `\Omega`: "Ω",
	`\cdot`: "·", `\times`: "×", `\div`: "÷", `\pm`: "±", `\mp`: "∓",
	`\leq`: "≤", `\geq`: "≥", `\neq`: "≠", `\approx`: "≈", `\equiv`: "≡",
	`\infty`: "∞", `\partial`: "∂", `\nabla`: "∇",
	`\sum`: "∑", `\prod`: "∏", `\int`: "∫",
	`\in`: "∈", `\notin`: "∉", `\subset`: "⊂", `\subseteq`: "⊆",
	`\cup`: "∪", `\cap`: "∩", `\forall`: "∀", `\exists`: "∃",
	`\rightarrow`: "→", `\leftarrow`: "←", `\Rightarrow`: "⇒",
	`\to`: "→", `\mapsto`: "↦",
}

// mathSymbolReplacer substitutes every symbol command in one deterministic
// pass. Longer commands are listed first so \in never consumes the prefix of
// \infty or \int, and \subset never truncates \subseteq.
var mathSymbolReplacer = func() *strings.Replacer {
	cmds := make([]string, 0, len(mathSymbols))
	for cmd := range mathSymbols {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		if len(cmds[i]) != len(cmds[j]) {
			return len(cmds[i]) > len(cmds[j])
		}
		return cmds[i] < cmds[j]
	})
	pairs := make([]string, 0, 2*len(cmds))
	for _, cmd := range cmds {
		pairs = append(pairs, cmd, mathSymbols[cmd])
	}
	return strings.NewReplacer(pairs...)
}()

// Typesetter turns the content of one math span into HTML. Implementations
// must never panic on malformed input; ok=false selects the literal
// fallback.
type Typesetter func(src string, display bool) (rendered string, ok bool)

// MathRenderer rewrites inline and display math spans into typeset HTML
// fragments. A span the typesetter rejects is shown as its literal source in
// a visually distinct style; the rest of the document is unaffected.
type MathRenderer struct {
	typeset Typesetter
}

// NewMathRenderer creates a renderer using the default parse-gated
// typesetter.
func NewMathRenderer() *MathRenderer {
	return &MathRenderer{typeset: TypesetMath}
}

// NewMathRendererWith creates a renderer with a custom typesetter.
// Used by tests to pin the fault-isolation contract.
func NewMathRendererWith(t Typesetter) *MathRenderer {
	return &MathRenderer{typeset: t}
}

// Render rewrites every math span, display spans first.
func (r *MathRenderer) Render(ctx context.Context, body string) string {
	if ctx.Err() != nil {
		return body
	}
	// Escaped dollars are hidden before any span is matched and resolved
	// only after the last one, so \$ can never open or close a span.
	body = strings.ReplaceAll(body, `\$`, literalDollarPlaceholder)
	body = r.renderSpans(body, displayDollarPattern, "$$", true)
	body = r.renderSpans(body, displayBracketPattern, `\[`, true)
	body = r.renderSpans(body, inlineDollarPattern, "$", false)
	return strings.ReplaceAll(body, literalDollarPlaceholder, "$")
}

func (r *MathRenderer) renderSpans(body string, pattern *regexp.Regexp, delim string, display bool) string {
	closing := delim
	if delim == `\[` {
		closing = `\]`
	}
	return pattern.ReplaceAllStringFunc(body, func(span string) string {
		src := pattern.FindStringSubmatch(span)[1]

		rendered, ok := r.typesetSafely(src, display)
		if !ok {
			return `<span class="tex-math-error">` + html.EscapeString(delim+src+closing) + `</span>`
		}
		if display {
			return `<div class="tex-math-display">` + rendered + `</div>`
		}
		return `<span class="tex-math-inline">` + rendered + `</span>`
	})
}

// typesetSafely guards the typesetting call so a panic on malformed input
// degrades to the literal fallback instead of aborting the compile.
func (r *MathRenderer) typesetSafely(src string, display bool) (rendered string, ok bool) {
	defer func() {
		if recover() != nil {
			rendered, ok = "", false
		}
	}()
	return r.typeset(src, display)
}

// TypesetMath is the default Typesetter: the span is parse-gated through
// go-latex and, when it is well-formed, typeset with symbol substitution and
// script markup. Parse failure selects the literal fallback.
func TypesetMath(src string, display bool) (string, bool) {
	if strings.TrimSpace(src) == "" {
		return "", false
	}
	if _, err := latex.ParseExpr(src); err != nil {
		return "", false
	}
	return typesetHTML(src), true
}

// typesetHTML renders a parsed span with lightweight HTML typesetting.
func typesetHTML(src string) string {
	out := html.EscapeString(strings.TrimSpace(src))

	out = fracPattern.ReplaceAllString(out,
		`<span class="tex-frac"><sup>$1</sup>&frasl;<sub>$2</sub></span>`)
	out = sqrtPattern.ReplaceAllString(out, `√<span class="tex-sqrt">$1</span>`)
	out = supPattern.ReplaceAllString(out, `<sup>$1$2</sup>`)
	out = subPattern.ReplaceAllString(out, `<sub>$1$2</sub>`)
	out = textCmdPattern.ReplaceAllString(out, `<span class="tex-math-text">$1</span>`)
	out = delimCmdPattern.ReplaceAllString(out, "")

	out = mathSymbolReplacer.Replace(out)

	out = strings.ReplaceAll(out, "{", "")
	out = strings.ReplaceAll(out, "}", "")
	return out
}
