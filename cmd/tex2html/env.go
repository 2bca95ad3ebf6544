package main

import (
	"os"
	"strconv"

	"github.com/alnah/go-tex2html/internal/config"
)

// Environment variable overrides, for CI and container use where flags are
// awkward. Precedence: CLI flags > env vars > config file > defaults; flags
// are merged after this by resolveConfig.

// envConfigPath returns the config file path from the environment, used when
// the --config flag is absent.
func envConfigPath() string {
	return os.Getenv("TEX2HTML_CONFIG")
}

// envStyle returns the stylesheet from the environment, used when the --style
// flag is absent. Same forms as the flag: a CSS file path or inline CSS.
func envStyle() string {
	return os.Getenv("TEX2HTML_STYLE")
}

// applyEnvOverrides applies TEX2HTML_* values on top of the loaded config.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("TEX2HTML_DIR"); v != "" {
		cfg.Input.Dir = v
	}
	if v := os.Getenv("TEX2HTML_ENTRY"); v != "" {
		cfg.Input.Entry = v
	}
	if v := os.Getenv("TEX2HTML_OUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("TEX2HTML_PDF"); v != "" {
		cfg.Output.PDF = v
	}
	if v := os.Getenv("TEX2HTML_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	if v := os.Getenv("TEX2HTML_QUIET_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Watch.QuietMillis = ms
		}
	}
}
