// Package mdfilter converts Markdown to other markup formats for use as
// template filters.
//
// # Quick Start
//
// The package-level functions use a shared default Converter:
//
//	latex, err := mdfilter.MarkdownToLaTeX("# Title\n\nSome *text*.")
//	html, err := mdfilter.MarkdownToHTML("# Title")
//
// Build a Converter to choose the pandoc binary, logger or renderer, and to
// pass a context:
//
//	conv := mdfilter.NewConverter(
//	    mdfilter.WithPandocPath("/opt/pandoc/bin/pandoc"),
//	    mdfilter.WithHTMLRenderer("blackfriday"),
//	)
//	rst, err := conv.MarkdownToRST(ctx, source, "--wrap=none")
//
// # Filters
//
//   - MarkdownToHTML: in-process renderer (goldmark by default)
//   - MarkdownToHTMLPandoc: pandoc, --mathjax unless extra args are given
//   - MarkdownToLaTeX, MarkdownToRST: pandoc, extra args passed through
//   - MarkdownToAsciiDoc: pandoc, heading flag picked from the pandoc
//     version, output cleaned by FixAsciiDocEmphasis
//
// Every pandoc filter reads MarkdownFormat (see WithMarkdownFormat) and runs
// one pandoc process per call. No timeout is imposed; cancel the context to stop a conversion.
//
// # Templates
//
// FuncMap exposes the filters to text/template, HTMLFuncMap to
// html/template, where the HTML filters return template.HTML:
//
//	tmpl := template.New("page").Funcs(conv.FuncMap())
//	// {{ markdown2latex .Body }}
//
// # Errors
//
// Missing pandoc yields ErrToolUnavailable. A failed pandoc run yields a
// *ConversionError (ErrConversionFailed) carrying pandoc's stderr. A renderer
// excluded at build time (tags nogoldmark, noblackfriday) yields a
// *RendererUnavailableError (ErrRendererUnavailable), but only when HTML is
// requested; constructing a Converter never fails.
package mdfilter
