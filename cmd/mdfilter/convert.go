package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfilter"
	"github.com/alnah/go-mdfilter/internal/config"
	"github.com/alnah/go-mdfilter/internal/hints"
	"github.com/alnah/go-mdfilter/internal/render"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no markdown files found")
	ErrReadMarkdown       = errors.New("failed to read markdown input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidArgs        = errors.New("invalid --args value")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputNotDir       = errors.New("output must be a directory when converting several files")
	ErrStdinTerminal      = errors.New("no input files given and stdin is a terminal")
)

// stdioPath selects standard output for -o.
const stdioPath = "-"

// runConvertCmd parses flags, runs the conversion and reports errors with
// hints. Returns the process exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if err := runConvert(ctx, inputs, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, inputs []string, flags *convertFlags, env *Environment, logger logrus.FieldLogger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	target, err := mdfilter.ParseTarget(flags.to)
	if err != nil {
		return err
	}

	warnUnknownEnvVars(env.Environ(), logger)
	envCfg := loadEnvConfig(env.Getenv, logger)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	extraArgs, err := resolveExtraArgs(flags, cfg, target)
	if err != nil {
		return err
	}

	conv := newConverter(cfg, env, logger)
	outputDir := resolveOutputDir(flags.output, cfg)

	if len(inputs) == 0 {
		return convertStdin(ctx, conv, target, extraArgs, flags.output, env)
	}

	files, err := discoverFiles(inputs, outputDir, target.Extension())
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if outputDir == stdioPath && len(files) > 1 {
		return fmt.Errorf("%w: got %q for %d files", ErrOutputNotDir, stdioPath, len(files))
	}

	workers := resolveWorkers(cfg.Workers, len(files))
	logger.Debugf("converting %d file(s) to %s with %d worker(s)", len(files), target, workers)

	results := convertBatch(ctx, conv, workers, &batchJob{
		target:    target,
		extraArgs: extraArgs,
		files:     files,
		stdout:    env.Stdout,
	})

	failed, firstErr := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		if len(results) == 1 {
			return firstErr
		}
		return fmt.Errorf("%d of %d conversion(s) failed: %w", failed, len(results), firstErr)
	}
	return nil
}

// loadConfig loads the config named by the flag, or by MDFILTER_CONFIG.
// Without either, defaults are used.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.pandoc != "" {
		cfg.Pandoc.Path = flags.pandoc
	}
	if flags.from != "" {
		cfg.Pandoc.From = flags.from
	}
	if flags.renderer != "" {
		cfg.HTML.Renderer = flags.renderer
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// resolveTimeout returns the run timeout: flag > env > none.
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// resolveExtraArgs returns the pandoc arguments for target. --args replaces
// the config's pandoc.extraArgs entry, and an explicit empty --args clears
// it. In-process targets take no arguments.
func resolveExtraArgs(flags *convertFlags, cfg *config.Config, target mdfilter.Target) ([]string, error) {
	if flags.argsSet {
		args, err := shellquote.Split(flags.args)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
		}
		return args, nil
	}
	if !target.UsesPandoc() {
		return nil, nil
	}
	return cfg.ArgsFor(target.PandocWriter())
}

// resolveOutputDir returns the output location: -o flag > output.defaultDir.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// newConverter builds the library converter from the merged config.
func newConverter(cfg *config.Config, env *Environment, logger logrus.FieldLogger) *mdfilter.Converter {
	opts := []mdfilter.Option{
		mdfilter.WithPandocPath(cfg.Pandoc.Path),
		mdfilter.WithMarkdownFormat(cfg.Pandoc.From),
		mdfilter.WithLogger(logger),
		mdfilter.WithHTMLRenderer(cfg.HTML.Renderer),
		mdfilter.WithHighlightStyle(cfg.HTML.HighlightStyle),
		mdfilter.WithHardWraps(cfg.HTML.HardWraps),
		mdfilter.WithSafeHTML(cfg.HTML.Safe),
	}
	if env.Runner != nil {
		opts = append(opts, mdfilter.WithRunner(env.Runner))
	}
	return mdfilter.NewConverter(opts...)
}

// convertStdin converts standard input and writes to -o or standard output.
func convertStdin(ctx context.Context, conv Converter, target mdfilter.Target, extraArgs []string, output string, env *Environment) error {
	if isTerminal(env.Stdin) {
		return ErrStdinTerminal
	}

	source, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	out, err := conv.Convert(ctx, target, string(source), extraArgs...)
	if err != nil {
		return err
	}

	if output == "" || output == stdioPath {
		if _, err := io.WriteString(env.Stdout, out); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	return writeOutput(output, out)
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdfilter.ErrToolUnavailable):
		return hints.ForPandocNotFound()
	case errors.Is(err, mdfilter.ErrRendererUnavailable):
		return hints.ForRendererUnavailable(render.Available())
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
