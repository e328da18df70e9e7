package mdfilter

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/alnah/go-mdfilter/internal/pandoc"
)

// Heading flags for the AsciiDoc writer. pandoc 3.0 renamed the option.
var (
	legacyHeadingArgs = []string{"--atx-headers"}
	headingArgs       = []string{"--markdown-headings=atx"}
)

// defaultPandocHTMLArgs requests MathJax math output from pandoc.
var defaultPandocHTMLArgs = []string{"--mathjax"}

// MarkdownToLaTeX converts Markdown to LaTeX via pandoc.
// extraArgs are passed to pandoc unchanged.
func (c *Converter) MarkdownToLaTeX(ctx context.Context, source string, extraArgs ...string) (string, error) {
	return c.convertPandoc(ctx, source, "latex", extraArgs)
}

// MarkdownToRST converts Markdown to reStructuredText via pandoc.
// extraArgs are passed to pandoc unchanged.
func (c *Converter) MarkdownToRST(ctx context.Context, source string, extraArgs ...string) (string, error) {
	return c.convertPandoc(ctx, source, "rst", extraArgs)
}

// MarkdownToHTMLPandoc converts Markdown to HTML via pandoc.
// Without extraArgs, pandoc is asked for MathJax math (--mathjax); explicit
// extraArgs replace that default entirely.
func (c *Converter) MarkdownToHTMLPandoc(ctx context.Context, source string, extraArgs ...string) (string, error) {
	if len(extraArgs) == 0 {
		extraArgs = defaultPandocHTMLArgs
	}
	return c.convertPandoc(ctx, source, "html", extraArgs)
}

// MarkdownToAsciiDoc converts Markdown to AsciiDoc via pandoc.
//
// Without extraArgs, ATX-style headings are requested with the flag the
// installed pandoc understands: --atx-headers before 3.0 (or when the version
// cannot be determined), --markdown-headings=atx from 3.0 on. The output is
// passed through FixAsciiDocEmphasis.
func (c *Converter) MarkdownToAsciiDoc(ctx context.Context, source string, extraArgs ...string) (string, error) {
	if !utf8.ValidString(source) {
		return "", ErrInvalidUTF8
	}

	if len(extraArgs) == 0 {
		args, err := c.asciiDocHeadingArgs(ctx)
		if err != nil {
			return "", err
		}
		extraArgs = args
	}

	out, err := c.convertPandoc(ctx, source, "asciidoc", extraArgs)
	if err != nil {
		return "", err
	}
	return FixAsciiDocEmphasis(out), nil
}

// asciiDocHeadingArgs picks the ATX heading flag for the installed pandoc.
func (c *Converter) asciiDocHeadingArgs(ctx context.Context) ([]string, error) {
	v, err := c.pandoc.Version(ctx)
	if err != nil {
		if errors.Is(err, ErrToolUnavailable) {
			return nil, err
		}
		c.logger.Debugf("pandoc version undetectable, using %s: %v", legacyHeadingArgs[0], err)
		return legacyHeadingArgs, nil
	}
	if v != "" && pandoc.AtLeast(v, pandoc.HeadingFlagVersion) {
		return headingArgs, nil
	}
	return legacyHeadingArgs, nil
}

// MarkdownToHTMLNative converts Markdown to an HTML fragment with the
// in-process renderer. If the renderer could not be loaded, every call
// returns a *RendererUnavailableError.
func (c *Converter) MarkdownToHTMLNative(ctx context.Context, source string) (string, error) {
	if !utf8.ValidString(source) {
		return "", ErrInvalidUTF8
	}
	return c.html(ctx, source)
}

// MarkdownToHTML is the default HTML filter. It uses the in-process
// renderer; call MarkdownToHTMLPandoc to go through pandoc instead.
func (c *Converter) MarkdownToHTML(ctx context.Context, source string) (string, error) {
	return c.MarkdownToHTMLNative(ctx, source)
}
