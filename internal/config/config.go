package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/alnah/go-mdfilter/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidRenderer = errors.New("invalid HTML renderer")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidWorkers  = errors.New("invalid workers value")
)

// appName is the directory searched under the XDG config dirs.
const appName = "mdfilter"

// MaxWorkers caps parallel conversions; each one is a pandoc process.
const MaxWorkers = 32

// Renderers lists the accepted html.renderer values.
var Renderers = []string{"goldmark", "blackfriday"}

// Formats lists the pandoc writer formats that accept extra arguments.
var Formats = []string{"asciidoc", "html", "latex", "rst"}

// Config holds all configuration for markdown conversion.
type Config struct {
	Pandoc  PandocConfig `yaml:"pandoc"`
	HTML    HTMLConfig   `yaml:"html"`
	Output  OutputConfig `yaml:"output"`
	Workers int          `yaml:"workers"` // 0 = auto
}

// PandocConfig defines how the external converter is invoked.
type PandocConfig struct {
	Path      string            `yaml:"path"`      // Empty = "pandoc" on PATH
	From      string            `yaml:"from"`      // pandoc reader; empty = markdown+lists_without_preceding_blankline
	ExtraArgs map[string]string `yaml:"extraArgs"` // writer format -> shell words, e.g. latex: "--wrap=none"
}

// HTMLConfig defines the in-process HTML renderer.
type HTMLConfig struct {
	Renderer       string `yaml:"renderer"`       // "goldmark" (default) or "blackfriday"
	HighlightStyle string `yaml:"highlightStyle"` // chroma style; empty = CSS classes
	HardWraps      bool   `yaml:"hardWraps"`
	Safe           bool   `yaml:"safe"` // drop raw HTML
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = stdout or next to the source
}

// Validate checks enumerated fields and that extra arguments split cleanly.
// Called automatically by LoadConfig, but available for callers who build a
// Config by hand.
func (c *Config) Validate() error {
	if c.HTML.Renderer != "" && !contains(Renderers, c.HTML.Renderer) {
		return fmt.Errorf("%w: html.renderer %q (must be one of %s)",
			ErrInvalidRenderer, c.HTML.Renderer, strings.Join(Renderers, ", "))
	}

	for _, format := range sortedKeys(c.Pandoc.ExtraArgs) {
		if !contains(Formats, format) {
			return fmt.Errorf("%w: pandoc.extraArgs.%s (must be one of %s)",
				ErrInvalidFormat, format, strings.Join(Formats, ", "))
		}
		if _, err := shellquote.Split(c.Pandoc.ExtraArgs[format]); err != nil {
			return fmt.Errorf("%w: pandoc.extraArgs.%s: %v", ErrConfigParse, format, err)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkers, c.Workers, MaxWorkers)
	}

	return nil
}

// ArgsFor returns the configured extra pandoc arguments for a writer format,
// split into words. Returns nil when none are configured.
func (c *Config) ArgsFor(format string) ([]string, error) {
	raw := strings.TrimSpace(c.Pandoc.ExtraArgs[format])
	if raw == "" {
		return nil, nil
	}
	args, err := shellquote.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: pandoc.extraArgs.%s: %v", ErrConfigParse, format, err)
	}
	return args, nil
}

// DefaultConfig returns a configuration that uses pandoc from PATH and the
// default in-process renderer.
func DefaultConfig() *Config {
	return &Config{
		Pandoc: PandocConfig{Path: ""},
		HTML:   HTMLConfig{Renderer: ""},
		Output: OutputConfig{DefaultDir: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := unmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, XDG config dirs (mdfilter/).
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	for _, ext := range extensions {
		rel := filepath.Join(appName, name+ext)
		if p, err := xdg.SearchConfigFile(rel); err == nil {
			return p, nil
		}
		triedPaths = append(triedPaths, filepath.Join(xdg.ConfigHome, rel))
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
