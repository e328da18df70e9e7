package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdfilter"
	"github.com/alnah/go-mdfilter/internal/config"
)

// Exit codes for the mdfilter CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
	ExitPandoc  = 4 // pandoc missing or failed, renderer not compiled in
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Converter errors (exit 4)
	if errors.Is(err, mdfilter.ErrToolUnavailable) ||
		errors.Is(err, mdfilter.ErrConversionFailed) ||
		errors.Is(err, mdfilter.ErrRendererUnavailable) {
		return ExitPandoc
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidRenderer) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, mdfilter.ErrUnknownTarget) ||
		errors.Is(err, mdfilter.ErrInvalidUTF8) ||
		errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, ErrStdinTerminal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
