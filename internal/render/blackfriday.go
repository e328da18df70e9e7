//go:build !noblackfriday

package render

import (
	"context"

	"github.com/russross/blackfriday/v2"
)

func init() {
	Register(Blackfriday, newBlackfridayRenderer)
}

// blackfridayRenderer converts Markdown to HTML using blackfriday v2.
// blackfriday's HTML renderer keeps per-document state, so a fresh one is
// built for every call.
type blackfridayRenderer struct {
	extensions blackfriday.Extensions
	flags      blackfriday.HTMLFlags
}

func newBlackfridayRenderer(opts Options) (Renderer, error) {
	exts := blackfriday.CommonExtensions | blackfriday.Footnotes | blackfriday.AutoHeadingIDs
	if opts.HardWraps {
		exts |= blackfriday.HardLineBreak
	}

	flags := blackfriday.CommonHTMLFlags
	if opts.Safe {
		flags |= blackfriday.SkipHTML
	}

	return &blackfridayRenderer{extensions: exts, flags: flags}, nil
}

// Render converts Markdown content to an HTML fragment.
func (r *blackfridayRenderer) Render(ctx context.Context, source string) (string, error) {
	return renderMarkdown(ctx, source, func(src []byte) ([]byte, error) {
		htmlRenderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: r.flags})
		return blackfriday.Run(src,
			blackfriday.WithExtensions(r.extensions),
			blackfriday.WithRenderer(htmlRenderer),
		), nil
	})
}
