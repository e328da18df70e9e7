//go:build !nogoldmark

package render

import (
	"bytes"
	"context"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

func init() {
	Register(Goldmark, newGoldmarkRenderer)
}

// goldmarkRenderer converts Markdown to HTML using goldmark (pure Go).
// goldmark.Markdown is safe for concurrent use, so one instance is shared.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

// newGoldmarkRenderer creates a goldmarkRenderer with GFM extensions and syntax highlighting.
func newGoldmarkRenderer(opts Options) (Renderer, error) {
	highlightOpts := []highlighting.Option{
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(opts.HighlightStyle == ""), // CSS classes unless a style is requested
		),
	}
	if opts.HighlightStyle != "" {
		highlightOpts = append(highlightOpts, highlighting.WithStyle(opts.HighlightStyle))
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.Safe {
		// Notebook markdown routinely embeds raw HTML.
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(highlightOpts...),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &goldmarkRenderer{md: md}, nil
}

// Render converts Markdown content to an HTML fragment.
func (r *goldmarkRenderer) Render(ctx context.Context, source string) (string, error) {
	return renderMarkdown(ctx, source, func(src []byte) ([]byte, error) {
		var buf bytes.Buffer
		if err := r.md.Convert(src, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}
