package mdfilter

import (
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdfilter/internal/pandoc"
)

// CommandRunner executes the pandoc subprocess. Implement it to stub pandoc
// in tests or to run it remotely.
type CommandRunner = pandoc.Runner

// ExecRunner runs pandoc with os/exec. It is the default CommandRunner.
type ExecRunner = pandoc.ExecRunner

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	pandocPath     string
	markdownFormat string
	runner         CommandRunner
	renderer       string
	highlightStyle string
	hardWraps      bool
	safe           bool
}

// WithPandocPath sets the pandoc executable. Default: "pandoc" on PATH.
func WithPandocPath(path string) Option {
	return func(c *Converter) {
		c.cfg.pandocPath = path
	}
}

// WithMarkdownFormat sets the pandoc reader, e.g. "gfm" or
// "commonmark_x+footnotes". Default: MarkdownFormat. It applies to every
// pandoc filter; the in-process renderers ignore it.
func WithMarkdownFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.markdownFormat = format
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r CommandRunner) Option {
	return func(c *Converter) {
		c.cfg.runner = r
	}
}

// WithLogger sets the logger for pandoc invocations and version warnings.
// Default: discard.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithHTMLRenderer selects the in-process HTML renderer by name
// ("goldmark" or "blackfriday"). An unknown or excluded name does not fail
// here; MarkdownToHTMLNative reports it when called.
func WithHTMLRenderer(name string) Option {
	return func(c *Converter) {
		c.cfg.renderer = name
	}
}

// WithHighlightStyle sets the chroma style used for fenced code blocks by
// the goldmark renderer. Empty (default) emits CSS classes only.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithHardWraps renders soft line breaks as <br> in the in-process renderer.
func WithHardWraps(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.hardWraps = enabled
	}
}

// WithSafeHTML drops raw HTML from Markdown in the in-process renderer.
func WithSafeHTML(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.safe = enabled
	}
}
