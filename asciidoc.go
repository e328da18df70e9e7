package mdfilter

import (
	"regexp"
	"strings"
)

// pandoc's AsciiDoc writer sometimes emits constrained emphasis with double
// underscores (__text__), which AsciiDoc then renders literally.
// See https://github.com/jgm/pandoc/issues/3068.
var (
	// __words__ at a word start, followed by punctuation, space or newline.
	// Group 1 is the preceding character (or empty at input start), so two
	// matches separated by a single character need a second pass.
	doubleUnderscoreWords = regexp.MustCompile(`(^|[^\p{L}\p{N}_])__([\p{L}\p{N}_ \n-]+?)__([ :,.\n)])`)

	// (__path__) for link targets and file paths.
	doubleUnderscorePath = regexp.MustCompile(`\(__([\p{L}\p{N}_/:.\-]+?)__\)`)
)

// FixAsciiDocEmphasis rewrites pandoc's double-underscore emphasis to single
// underscores. Input without "__" is returned unchanged.
//
//	"__Example Text__."   -> "_Example Text_."
//	"(__some/path-1__)"   -> "(_some/path-1_)"
func FixAsciiDocEmphasis(asciidoc string) string {
	if !strings.Contains(asciidoc, "__") {
		return asciidoc
	}
	for {
		fixed := doubleUnderscoreWords.ReplaceAllString(asciidoc, "${1}_${2}_${3}")
		if fixed == asciidoc {
			break
		}
		asciidoc = fixed
	}
	asciidoc = doubleUnderscorePath.ReplaceAllString(asciidoc, "(_${1}_)")
	return asciidoc
}
