// Package tex2html compiles a restricted LaTeX subset into a renderable
// HTML document, fast enough for live preview while editing multi-file
// projects.
//
// # Quick Start
//
// Supply a snapshot of source files and assets, then compile:
//
//	files := tex2html.MapFiles{
//	    "main.tex": `\documentclass{article}
//	\begin{document}
//	\section{Intro}
//	Hello $x^2$.
//	\end{document}`,
//	}
//	c := tex2html.NewCompiler()
//	result := c.Compile(ctx, "main.tex", files, tex2html.MapAssets{})
//	fmt.Println(result.HTML)
//
// Compile never fails: malformed fragments degrade to inline markers, and
// overall problems surface on result.Diagnostics. Only a missing entry file
// is fatal, and even then a well-formed CompileResult is returned.
//
// # Pipeline
//
// One compile pass runs a fixed, documented stage order:
//
//  1. Import resolution (\input/\include, cycle-guarded)
//  2. Code-block protection (verbatim/lstlisting interiors set aside)
//  3. Comment and preamble stripping
//  4. Structural headings (numbered chapters/sections/subsections)
//  5. Environments (lists, abstract, minipage)
//  6. Inline and block formatting
//  7. Asset binding (\includegraphics to data URIs)
//  8. Math rendering (parse-gated, literal fallback)
//
// # Scheduling
//
// For continuously-editing callers, Scheduler debounces compile requests:
// a pass runs only after a quiet interval with no further edits, and at most
// one pass is ever in flight.
//
// # PDF Export
//
// PDFExporter renders a compile result to A4 PDF through headless Chrome
// (go-rod downloads a managed Chromium on first use). Set ROD_BROWSER_BIN to
// use a pre-installed browser; ROD_NO_SANDBOX=1 for containers.
package tex2html
