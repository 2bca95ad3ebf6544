package tex2html

import "fmt"

// documentTemplate wraps the rendered body in a complete HTML5 document.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Preview</title>
<style>
%s
</style>
</head>
<body>
<div class="tex-document">
%s
</div>
</body>
</html>`

// DefaultStyle is the stylesheet embedded in rendered documents. Override
// with WithStyle.
const DefaultStyle = `
.tex-document {
  max-width: 21cm;
  margin: 0 auto;
  padding: 1.5rem;
  font-family: Georgia, 'Times New Roman', serif;
  line-height: 1.5;
}
.tex-chapter { font-size: 1.8rem; margin: 1.2rem 0 0.6rem; }
.tex-section { font-size: 1.4rem; margin: 1rem 0 0.5rem; }
.tex-subsection { font-size: 1.15rem; margin: 0.8rem 0 0.4rem; }
.tex-titleblock { text-align: center; margin: 1.5rem 0; }
.tex-title { font-size: 1.9rem; font-weight: bold; }
.tex-author { margin-top: 0.5rem; }
.tex-date { margin-top: 0.25rem; color: #555; }
.tex-abstract {
  margin: 1rem 3rem;
  font-size: 0.95rem;
}
.tex-abstract-title { text-align: center; font-weight: bold; margin-bottom: 0.4rem; }
.tex-quote { margin: 0.8rem 2rem; color: #333; }
.tex-center { text-align: center; }
.tex-minipage { display: inline-block; vertical-align: top; }
.tex-list { margin: 0.5rem 0 0.5rem 1.5rem; }
.tex-parskip { height: 0.7rem; }
.tex-pagebreak { border-top: 1px dashed #bbb; margin: 1rem 0; }
.tex-smallcaps { font-variant: small-caps; }
.tex-verbatim, .tex-listing {
  font-family: 'SF Mono', Consolas, monospace;
  font-size: 0.85rem;
  background: #f6f8fa;
  padding: 0.6rem;
  overflow-x: auto;
}
.tex-figure { max-width: 100%; }
.tex-math-display { text-align: center; margin: 0.8rem 0; font-style: italic; }
.tex-math-inline { font-style: italic; }
.tex-math-error, .tex-error {
  background: #fdecea;
  color: #b3261e;
  font-family: monospace;
  padding: 0 0.25em;
  border-radius: 2px;
}
.tex-frac sup, .tex-frac sub { font-size: 0.8em; }
.tex-size-tiny { font-size: 0.6em; }
.tex-size-scriptsize { font-size: 0.7em; }
.tex-size-footnotesize { font-size: 0.8em; }
.tex-size-small { font-size: 0.9em; }
.tex-size-normalsize { font-size: 1em; }
.tex-size-large { font-size: 1.15em; }
.tex-size-Large { font-size: 1.3em; }
.tex-size-LARGE { font-size: 1.5em; }
.tex-size-huge { font-size: 1.75em; }
.tex-size-Huge { font-size: 2em; }
@media print {
  .tex-pagebreak { border: none; page-break-after: always; }
}
`

// renderDocument assembles the final output from the transformed body and
// the active stylesheet.
func renderDocument(body, css string) string {
	return fmt.Sprintf(documentTemplate, css, body)
}
