package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-tex2html/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	flags, err := parseFlags([]string{
		"tex2html",
		"-d", "./docs",
		"-e", "report",
		"-o", "out.html",
		"--pdf", "out.pdf",
		"--quiet-interval", "500",
		"-w",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if flags.dir != "./docs" || flags.entry != "report" {
		t.Errorf("input flags = %q, %q", flags.dir, flags.entry)
	}
	if flags.out != "out.html" || flags.pdf != "out.pdf" {
		t.Errorf("output flags = %q, %q", flags.out, flags.pdf)
	}
	if flags.quietMS != 500 || !flags.watch {
		t.Errorf("watch flags = %d, %v", flags.quietMS, flags.watch)
	}
	if flags.serve || flags.version {
		t.Errorf("unset flags should stay false")
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"tex2html", "--no-such-flag"}); err == nil {
		t.Errorf("unknown flag should fail")
	}
}

func TestResolveConfigFlagOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := "input:\n  dir: ./from-file\nwatch:\n  quietMillis: 400\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	flags := &cliFlags{configPath: path, dir: "./from-flag"}
	cfg, err := resolveConfig(flags)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}

	if cfg.Input.Dir != "./from-flag" {
		t.Errorf("flag should win over file: %q", cfg.Input.Dir)
	}
	if cfg.Watch.QuietMillis != 400 {
		t.Errorf("file value should survive unflagged: %d", cfg.Watch.QuietMillis)
	}
}

func TestResolveConfigInvalidQuiet(t *testing.T) {
	t.Parallel()

	flags := &cliFlags{quietMS: 999_999}
	if _, err := resolveConfig(flags); !errors.Is(err, config.ErrInvalidQuiet) {
		t.Errorf("err = %v, want ErrInvalidQuiet", err)
	}
}

func TestResolveStyleFlag(t *testing.T) {
	t.Parallel()

	t.Run("inline css", func(t *testing.T) {
		t.Parallel()

		css, err := resolveStyleFlag("body { color: blue; }")
		if err != nil {
			t.Fatalf("resolveStyleFlag: %v", err)
		}
		if !strings.Contains(css, "color: blue") {
			t.Errorf("inline CSS altered: %q", css)
		}
	})

	t.Run("css file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "style.css")
		if err := os.WriteFile(path, []byte("h1 { font-size: 2em; }"), 0o600); err != nil {
			t.Fatal(err)
		}
		css, err := resolveStyleFlag(path)
		if err != nil {
			t.Fatalf("resolveStyleFlag: %v", err)
		}
		if !strings.Contains(css, "font-size") {
			t.Errorf("file content not loaded: %q", css)
		}
	})

	t.Run("neither", func(t *testing.T) {
		t.Parallel()

		if _, err := resolveStyleFlag("no-such-thing"); err == nil {
			t.Errorf("unresolvable style should fail")
		}
	})
}
