package mdfilter

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Target names an output format.
type Target string

// Supported targets.
const (
	TargetHTML       Target = "html"        // in-process renderer (default HTML)
	TargetHTMLNative Target = "html-native" // in-process renderer, explicit
	TargetHTMLPandoc Target = "html-pandoc" // pandoc HTML writer
	TargetLaTeX      Target = "latex"
	TargetRST        Target = "rst"
	TargetAsciiDoc   Target = "asciidoc"
)

// targetInfo describes how a Target is produced.
type targetInfo struct {
	extension    string
	pandocWriter string // empty for in-process targets
}

var targets = map[Target]targetInfo{
	TargetHTML:       {extension: ".html"},
	TargetHTMLNative: {extension: ".html"},
	TargetHTMLPandoc: {extension: ".html", pandocWriter: "html"},
	TargetLaTeX:      {extension: ".tex", pandocWriter: "latex"},
	TargetRST:        {extension: ".rst", pandocWriter: "rst"},
	TargetAsciiDoc:   {extension: ".adoc", pandocWriter: "asciidoc"},
}

// ParseTarget parses a target name case-insensitively. "tex" and "adoc" are
// accepted as aliases.
func ParseTarget(s string) (Target, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "tex":
		name = string(TargetLaTeX)
	case "adoc":
		name = string(TargetAsciiDoc)
	case "rest":
		name = string(TargetRST)
	}
	t := Target(name)
	if _, ok := targets[t]; !ok {
		return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownTarget, s, strings.Join(TargetNames(), ", "))
	}
	return t, nil
}

// TargetNames returns the supported target names, sorted.
func TargetNames() []string {
	names := make([]string, 0, len(targets))
	for t := range targets {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// Extension returns the conventional file extension for t, including the dot.
func (t Target) Extension() string {
	return targets[t].extension
}

// PandocWriter returns the pandoc writer format for t, or "" when t is
// rendered in-process.
func (t Target) PandocWriter() string {
	return targets[t].pandocWriter
}

// UsesPandoc reports whether t is produced by pandoc.
func (t Target) UsesPandoc() bool {
	return t.PandocWriter() != ""
}

// Convert dispatches source to the filter for t. extraArgs are ignored by
// in-process targets.
func (c *Converter) Convert(ctx context.Context, t Target, source string, extraArgs ...string) (string, error) {
	switch t {
	case TargetHTML, TargetHTMLNative:
		if len(extraArgs) > 0 {
			c.logger.Debugf("ignoring pandoc arguments for in-process target %s", t)
		}
		return c.MarkdownToHTMLNative(ctx, source)
	case TargetHTMLPandoc:
		return c.MarkdownToHTMLPandoc(ctx, source, extraArgs...)
	case TargetLaTeX:
		return c.MarkdownToLaTeX(ctx, source, extraArgs...)
	case TargetRST:
		return c.MarkdownToRST(ctx, source, extraArgs...)
	case TargetAsciiDoc:
		return c.MarkdownToAsciiDoc(ctx, source, extraArgs...)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTarget, string(t))
	}
}
