package main

import (
	"context"
	"fmt"
	"os"

	tex2html "github.com/alnah/go-tex2html"
	"github.com/alnah/go-tex2html/internal/config"
)

// runConvert performs one compile pass and writes the output.
func runConvert(cfg config.Config, flags *cliFlags) int {
	result, code := compileOnce(context.Background(), cfg, flags)
	if code != exitOK {
		return code
	}
	return writeOutputs(context.Background(), cfg, flags, result)
}

// compileOnce snapshots the source directory and runs the pipeline.
func compileOnce(ctx context.Context, cfg config.Config, flags *cliFlags) (*tex2html.CompileResult, int) {
	files, assets, err := tex2html.SnapshotDir(cfg.Input.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, exitIO
	}

	compiler := newCompiler(cfg)
	result := compiler.Compile(ctx, cfg.Input.Entry, files, assets)

	if !flags.quiet {
		printDiagnostics(result)
	}
	if result.HasFatal() {
		return result, exitCompile
	}
	return result, exitOK
}

func newCompiler(cfg config.Config) *tex2html.Compiler {
	var opts []tex2html.Option
	if cfg.Style.CSS != "" {
		opts = append(opts, tex2html.WithStyle(cfg.Style.CSS))
	}
	return tex2html.NewCompiler(opts...)
}

// writeOutputs writes the HTML (stdout or file) and the optional PDF export.
func writeOutputs(ctx context.Context, cfg config.Config, flags *cliFlags, result *tex2html.CompileResult) int {
	if cfg.Output.Path == "" {
		fmt.Print(result.HTML)
	} else {
		if err := os.WriteFile(cfg.Output.Path, []byte(result.HTML), 0o644); err != nil { // #nosec G306 -- rendered document
			fmt.Fprintln(os.Stderr, err)
			return exitIO
		}
		if flags.verbose {
			fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.Output.Path)
		}
	}

	if cfg.Output.PDF != "" {
		exporter := tex2html.NewPDFExporter(0)
		defer func() { _ = exporter.Close() }()

		pdf, err := exporter.Export(ctx, result.HTML)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIO
		}
		if err := os.WriteFile(cfg.Output.PDF, pdf, 0o644); err != nil { // #nosec G306 -- rendered document
			fmt.Fprintln(os.Stderr, err)
			return exitIO
		}
		if flags.verbose {
			fmt.Fprintf(os.Stderr, "wrote %s\n", cfg.Output.PDF)
		}
	}
	return exitOK
}

// printDiagnostics renders the diagnostic log on stderr, one line per entry.
func printDiagnostics(result *tex2html.CompileResult) {
	for _, d := range result.Diagnostics {
		if d.File != "" {
			fmt.Fprintf(os.Stderr, "[%s] %s (%s)\n", d.Severity, d.Message, d.File)
			continue
		}
		fmt.Fprintf(os.Stderr, "[%s] %s\n", d.Severity, d.Message)
	}
}
