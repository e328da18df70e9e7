package mdfilter

import (
	"context"
	"io"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdfilter/internal/pandoc"
	"github.com/alnah/go-mdfilter/internal/render"
)

// MarkdownFormat is the default pandoc reader of every pandoc-backed filter:
// pandoc markdown that also accepts lists without a preceding blank line.
// WithMarkdownFormat overrides it.
const MarkdownFormat = "markdown+lists_without_preceding_blankline"

// htmlFunc renders Markdown to HTML in-process.
type htmlFunc func(ctx context.Context, source string) (string, error)

// Converter holds the collaborators behind the filters.
// Create with NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	cfg    converterConfig
	logger logrus.FieldLogger
	pandoc *pandoc.Client
	html   htmlFunc
}

// NewConverter creates a Converter. It never fails: a renderer that cannot be
// loaded is reported by MarkdownToHTMLNative when it is called.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.logger = l
	}

	if c.cfg.markdownFormat == "" {
		c.cfg.markdownFormat = MarkdownFormat
	}

	c.pandoc = pandoc.NewClient(c.cfg.pandocPath, c.cfg.runner, c.logger)
	c.html = loadHTMLRenderer(c.cfg.renderer, render.Options{
		HighlightStyle: c.cfg.highlightStyle,
		HardWraps:      c.cfg.hardWraps,
		Safe:           c.cfg.safe,
	}, c.logger)

	return c
}

// PandocVersion returns the installed pandoc version, or "" when it cannot
// be determined.
func (c *Converter) PandocVersion(ctx context.Context) (string, error) {
	return c.pandoc.Version(ctx)
}

// MarkdownFormat returns the pandoc reader the pandoc filters use.
func (c *Converter) MarkdownFormat() string {
	return c.cfg.markdownFormat
}

// PandocPath returns the pandoc executable the converter invokes.
func (c *Converter) PandocPath() string {
	return c.pandoc.Binary()
}

// loadHTMLRenderer resolves the in-process renderer once. On failure it
// returns a function that reports the load error on every call, so that
// constructing a Converter never fails because the renderer is missing.
func loadHTMLRenderer(name string, opts render.Options, logger logrus.FieldLogger) htmlFunc {
	if name == "" {
		name = render.Default
	}

	r, err := render.Load(name, opts)
	if err != nil {
		logger.WithField("renderer", name).Debugf("in-process renderer unavailable: %v", err)
		loadErr := &RendererUnavailableError{Renderer: name, Err: err}
		return func(context.Context, string) (string, error) {
			return "", loadErr
		}
	}

	return r.Render
}

// convertPandoc validates source and runs it through pandoc with the
// configured reader.
func (c *Converter) convertPandoc(ctx context.Context, source, to string, extraArgs []string) (string, error) {
	if !utf8.ValidString(source) {
		return "", ErrInvalidUTF8
	}
	c.pandoc.CheckVersion(ctx)
	return c.pandoc.Convert(ctx, source, c.cfg.markdownFormat, to, extraArgs)
}
