package pandoc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for pandoc invocations.
var (
	ErrToolUnavailable  = errors.New("pandoc not available")
	ErrConversionFailed = errors.New("pandoc conversion failed")
)

// ConversionError reports a pandoc run that exited with a non-zero status.
// Stderr holds pandoc's own diagnostics.
type ConversionError struct {
	From   string
	To     string
	Args   []string
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s (%s -> %s)", ErrConversionFailed, e.From, e.To)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both ErrConversionFailed and the exec error.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversionFailed}
	}
	return []error{ErrConversionFailed, e.Err}
}
