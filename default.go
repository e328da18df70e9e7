package mdfilter

import (
	"context"
	"sync"
)

var (
	defaultOnce      sync.Once
	defaultConverter *Converter
)

// Default returns the package-level Converter used by the top-level filter
// functions. It is built on first use with pandoc from PATH and the default
// in-process renderer.
func Default() *Converter {
	defaultOnce.Do(func() {
		defaultConverter = NewConverter()
	})
	return defaultConverter
}

// MarkdownToLaTeX converts Markdown to LaTeX via pandoc using Default().
func MarkdownToLaTeX(source string, extraArgs ...string) (string, error) {
	return Default().MarkdownToLaTeX(context.Background(), source, extraArgs...)
}

// MarkdownToRST converts Markdown to reStructuredText via pandoc using Default().
func MarkdownToRST(source string, extraArgs ...string) (string, error) {
	return Default().MarkdownToRST(context.Background(), source, extraArgs...)
}

// MarkdownToHTMLPandoc converts Markdown to HTML via pandoc using Default().
func MarkdownToHTMLPandoc(source string, extraArgs ...string) (string, error) {
	return Default().MarkdownToHTMLPandoc(context.Background(), source, extraArgs...)
}

// MarkdownToAsciiDoc converts Markdown to AsciiDoc via pandoc using Default().
func MarkdownToAsciiDoc(source string, extraArgs ...string) (string, error) {
	return Default().MarkdownToAsciiDoc(context.Background(), source, extraArgs...)
}

// MarkdownToHTMLNative converts Markdown to HTML in-process using Default().
func MarkdownToHTMLNative(source string) (string, error) {
	return Default().MarkdownToHTMLNative(context.Background(), source)
}

// MarkdownToHTML is the default HTML filter: the in-process renderer.
var MarkdownToHTML = MarkdownToHTMLNative
