package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tex2html/internal/config"
	"github.com/alnah/go-tex2html/internal/fileutil"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	configPath string
	dir        string
	entry      string
	out        string
	pdf        string
	style      string
	addr       string
	quietMS    int

	watch   bool
	serve   bool
	verbose bool
	quiet   bool
	version bool
}

// parseFlags parses args (including the program name).
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("tex2html", flag.ContinueOnError)
	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	fs.StringVarP(&f.dir, "dir", "d", "", "source directory (default \".\")")
	fs.StringVarP(&f.entry, "entry", "e", "", "entry file name (default: discover main.tex)")
	fs.StringVarP(&f.out, "out", "o", "", "HTML output path (default: stdout)")
	fs.StringVar(&f.pdf, "pdf", "", "also export PDF to this path")
	fs.StringVar(&f.style, "style", "", "stylesheet: a CSS file path or inline CSS")
	fs.StringVar(&f.addr, "addr", "", "listen address for --serve (default \":8391\")")
	fs.IntVar(&f.quietMS, "quiet-interval", 0, "watch debounce interval in milliseconds")
	fs.BoolVarP(&f.watch, "watch", "w", false, "recompile on source changes")
	fs.BoolVar(&f.serve, "serve", false, "run the HTTP compile API")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress diagnostics on stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}

// resolveConfig merges config file values, environment overrides and flag
// overrides. Precedence: flags > env > config file > defaults.
func resolveConfig(flags *cliFlags) (config.Config, error) {
	cfg := config.Default()

	configPath := flags.configPath
	if configPath == "" {
		configPath = envConfigPath()
	}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	applyEnvOverrides(&cfg)

	if flags.dir != "" {
		cfg.Input.Dir = flags.dir
	}
	if flags.entry != "" {
		cfg.Input.Entry = flags.entry
	}
	if flags.out != "" {
		cfg.Output.Path = flags.out
	}
	if flags.pdf != "" {
		cfg.Output.PDF = flags.pdf
	}
	if flags.addr != "" {
		cfg.Serve.Addr = flags.addr
	}
	if flags.quietMS != 0 {
		cfg.Watch.QuietMillis = flags.quietMS
	}
	style := flags.style
	if style == "" {
		style = envStyle()
	}
	if style != "" {
		css, err := resolveStyleFlag(style)
		if err != nil {
			return cfg, err
		}
		cfg.Style.CSS = css
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveStyleFlag accepts either a CSS file path or inline CSS content.
func resolveStyleFlag(style string) (string, error) {
	if fileutil.IsCSS(style) && !fileutil.IsFilePath(style) {
		return style, nil
	}
	if fileutil.FileExists(style) {
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading style file %q: %w", style, err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("style %q is neither a CSS file nor inline CSS", style)
}
