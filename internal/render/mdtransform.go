package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters. They pass
// through both Markdown libraries unchanged and never occur in real text.
const (
	mathStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	mathEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Code is matched first so that dollars inside it are left alone.
	mathPattern = regexp.MustCompile(`(?ms)` + strings.Join([]string{
		"^```.*?^```",
		`^~~~.*?^~~~`,
		"`[^`\n]+`",
		`\$\$.+?\$\$`,
		`\\\[.+?\\\]`,
		`\\\(.+?\\\)`,
		`\$[^\s$](?:[^$\n]*[^\s$])?\$`,
	}, "|"))

	placeholderPattern = regexp.MustCompile(mathStartPlaceholder + `(\d+)` + mathEndPlaceholder)
)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// protectMath replaces math spans with numbered placeholders and returns the
// original spans in placeholder order.
func protectMath(content string) (string, []string) {
	if !strings.ContainsAny(content, `$\`) {
		return content, nil
	}

	var spans []string
	out := mathPattern.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "`") || strings.HasPrefix(m, "~~~") {
			return m
		}
		spans = append(spans, m)
		return mathStartPlaceholder + strconv.Itoa(len(spans)-1) + mathEndPlaceholder
	})
	return out, spans
}

// restoreMath puts the math spans back, HTML-escaped, in place of their
// placeholders.
func restoreMath(content string, spans []string) string {
	if len(spans) == 0 {
		return content
	}
	return placeholderPattern.ReplaceAllStringFunc(content, func(m string) string {
		idx, err := strconv.Atoi(strings.Trim(m, mathStartPlaceholder+mathEndPlaceholder))
		if err != nil || idx >= len(spans) {
			return m
		}
		return html.EscapeString(spans[idx])
	})
}
