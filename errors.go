package mdfilter

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdfilter/internal/pandoc"
	"github.com/alnah/go-mdfilter/internal/render"
)

// Sentinel errors for library operations.
var (
	// ErrToolUnavailable means pandoc could not be found or started.
	ErrToolUnavailable = pandoc.ErrToolUnavailable
	// ErrConversionFailed means pandoc exited with a non-zero status.
	// The error is a *ConversionError carrying pandoc's stderr.
	ErrConversionFailed = pandoc.ErrConversionFailed
	// ErrRendererUnavailable means the in-process HTML renderer could not be
	// loaded. The error is a *RendererUnavailableError.
	ErrRendererUnavailable = errors.New("in-process markdown renderer unavailable")

	// ErrHTMLConversion means the in-process renderer failed on the input.
	ErrHTMLConversion = render.ErrRender

	ErrInvalidUTF8   = errors.New("markdown source is not valid UTF-8")
	ErrUnknownTarget = errors.New("unknown output format")
)

// ConversionError reports a pandoc run that exited with a non-zero status.
type ConversionError = pandoc.ConversionError

// RendererUnavailableError is returned by the in-process HTML filter when its
// renderer failed to load. Err is the load-time reason.
type RendererUnavailableError struct {
	Renderer string
	Err      error
}

func (e *RendererUnavailableError) Error() string {
	return fmt.Sprintf("markdown to HTML requires the %s renderer: %v", e.Renderer, e.Err)
}

// Unwrap lets errors.Is match ErrRendererUnavailable and the load-time reason.
func (e *RendererUnavailableError) Unwrap() []error {
	return []error{ErrRendererUnavailable, e.Err}
}
