// Package config loads and validates CLI configuration for tex2html.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-tex2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidQuiet   = errors.New("quiet interval out of range")
	ErrInvalidAddr    = errors.New("serve address cannot be empty when serving")
)

// Quiet interval bounds in milliseconds.
const (
	MinQuietMillis = 10
	MaxQuietMillis = 10_000
)

// Config holds all configuration for preview compilation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Style  StyleConfig  `yaml:"style"`
	Watch  WatchConfig  `yaml:"watch"`
	Serve  ServeConfig  `yaml:"serve"`
}

// InputConfig defines the source snapshot.
type InputConfig struct {
	Dir   string `yaml:"dir"`   // Source directory (default ".")
	Entry string `yaml:"entry"` // Entry file name (empty = discover)
}

// OutputConfig defines where rendered output goes.
type OutputConfig struct {
	Path string `yaml:"path"` // HTML output path (empty = stdout)
	PDF  string `yaml:"pdf"`  // PDF output path (empty = no PDF export)
}

// StyleConfig selects the stylesheet: a file path or inline CSS.
type StyleConfig struct {
	CSS string `yaml:"css"`
}

// WatchConfig tunes the debounced recompile loop.
type WatchConfig struct {
	QuietMillis int `yaml:"quietMillis"` // Edit-settle delay (default 300)
}

// ServeConfig configures the HTTP compile API.
type ServeConfig struct {
	Addr string `yaml:"addr"` // Listen address (default ":8391")
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Input: InputConfig{Dir: "."},
		Watch: WatchConfig{QuietMillis: 300},
		Serve: ServeConfig{Addr: ":8391"},
	}
}

// Load reads and validates a YAML config file, applying defaults for absent
// fields. Unknown fields are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.Watch.QuietMillis < MinQuietMillis || c.Watch.QuietMillis > MaxQuietMillis {
		return fmt.Errorf("%w: %dms (want %d-%d)", ErrInvalidQuiet, c.Watch.QuietMillis, MinQuietMillis, MaxQuietMillis)
	}
	return nil
}

// QuietInterval returns the watch debounce interval as a duration.
func (c Config) QuietInterval() time.Duration {
	return time.Duration(c.Watch.QuietMillis) * time.Millisecond
}
