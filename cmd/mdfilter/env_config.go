package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdfilter/internal/config"
)

// envPrefix marks environment variables read by mdfilter.
const envPrefix = "MDFILTER_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDFILTER_CONFIG: config file name or path
	Pandoc     string        // MDFILTER_PANDOC: pandoc executable
	Renderer   string        // MDFILTER_RENDERER: in-process HTML renderer
	Timeout    time.Duration // MDFILTER_TIMEOUT: run timeout
	Workers    int           // MDFILTER_WORKERS: parallel workers
}

// knownEnvVars lists valid MDFILTER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDFILTER_CONFIG":   true,
	"MDFILTER_PANDOC":   true,
	"MDFILTER_RENDERER": true,
	"MDFILTER_TIMEOUT":  true,
	"MDFILTER_WORKERS":  true,
}

// loadEnvConfig reads MDFILTER_* variables through getenv.
// Malformed durations and counts are logged and ignored.
func loadEnvConfig(getenv func(string) string, logger logrus.FieldLogger) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MDFILTER_CONFIG"),
		Pandoc:     getenv("MDFILTER_PANDOC"),
		Renderer:   getenv("MDFILTER_RENDERER"),
	}

	if timeout := getenv("MDFILTER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			logger.Warnf("ignoring MDFILTER_TIMEOUT=%q: must be a positive duration", timeout)
		}
	}

	if workers := getenv("MDFILTER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			logger.Warnf("ignoring MDFILTER_WORKERS=%q: must be a positive integer", workers)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDFILTER_* variables.
// Helps catch typos like MDFILTER_PANDOC_PATH instead of MDFILTER_PANDOC.
func warnUnknownEnvVars(environ []string, logger logrus.FieldLogger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warnf("unknown environment variable %s (typo?)", name)
		}
	}
}

// applyEnvConfig overlays environment values on the file config.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Pandoc != "" {
		cfg.Pandoc.Path = env.Pandoc
	}
	if env.Renderer != "" {
		cfg.HTML.Renderer = env.Renderer
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
