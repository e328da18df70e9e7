package mdfilter

import (
	"context"
	htmltemplate "html/template"
)

// FuncMap returns the filters as text/template functions under their
// notebook template names:
//
//	markdown2html          in-process HTML (default)
//	markdown2html_native   in-process HTML
//	markdown2html_pandoc   pandoc HTML
//	markdown2latex         pandoc LaTeX
//	markdown2rst           pandoc reStructuredText
//	markdown2asciidoc      pandoc AsciiDoc
//
// The pandoc functions accept extra arguments: {{ markdown2latex .Source "--wrap=none" }}.
// Every function returns a plain string, so html/template would escape the
// HTML filters; use HTMLFuncMap there. Filter errors abort template execution.
func (c *Converter) FuncMap() map[string]any {
	ctx := context.Background()

	return map[string]any{
		"markdown2html": func(source string) (string, error) {
			return c.MarkdownToHTML(ctx, source)
		},
		"markdown2html_native": func(source string) (string, error) {
			return c.MarkdownToHTMLNative(ctx, source)
		},
		"markdown2html_pandoc": func(source string, extraArgs ...string) (string, error) {
			return c.MarkdownToHTMLPandoc(ctx, source, extraArgs...)
		},
		"markdown2latex": func(source string, extraArgs ...string) (string, error) {
			return c.MarkdownToLaTeX(ctx, source, extraArgs...)
		},
		"markdown2rst": func(source string, extraArgs ...string) (string, error) {
			return c.MarkdownToRST(ctx, source, extraArgs...)
		},
		"markdown2asciidoc": func(source string, extraArgs ...string) (string, error) {
			return c.MarkdownToAsciiDoc(ctx, source, extraArgs...)
		},
	}
}

// HTMLFuncMap is FuncMap for html/template. The three markdown2html
// functions return template.HTML and are inserted unescaped; the LaTeX, RST
// and AsciiDoc functions still return strings and are escaped as text.
//
// The HTML is trusted as produced. Combine with WithSafeHTML when the
// Markdown comes from untrusted users.
func (c *Converter) HTMLFuncMap() htmltemplate.FuncMap {
	funcs := htmltemplate.FuncMap(c.FuncMap())

	for name, fn := range map[string]func(context.Context, string, ...string) (string, error){
		"markdown2html": func(ctx context.Context, source string, _ ...string) (string, error) {
			return c.MarkdownToHTML(ctx, source)
		},
		"markdown2html_native": func(ctx context.Context, source string, _ ...string) (string, error) {
			return c.MarkdownToHTMLNative(ctx, source)
		},
		"markdown2html_pandoc": c.MarkdownToHTMLPandoc,
	} {
		funcs[name] = trustedHTML(fn)
	}
	return funcs
}

// trustedHTML adapts an HTML filter to return template.HTML.
func trustedHTML(fn func(context.Context, string, ...string) (string, error)) func(string, ...string) (htmltemplate.HTML, error) {
	return func(source string, extraArgs ...string) (htmltemplate.HTML, error) {
		out, err := fn(context.Background(), source, extraArgs...)
		if err != nil {
			return "", err
		}
		return htmltemplate.HTML(out), nil // #nosec G203 -- output of the configured Markdown renderer
	}
}
