package pandoc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/mod/semver"
)

// Supported pandoc window. Versions outside it still run, but get a warning.
const (
	MinimumVersion = "2.14.2"
	MaximumVersion = "4.0.0" // exclusive
)

// HeadingFlagVersion is the first pandoc release that replaced --atx-headers
// with --markdown-headings=atx.
const HeadingFlagVersion = "3.0"

// CompareVersions compares two dotted pandoc versions numerically.
// It returns -1, 0 or +1. Pandoc versions may carry four components
// (3.1.11.1); the first three are compared as semver and any remaining ones
// break ties. An unparseable or empty version sorts before every valid one.
func CompareVersions(a, b string) int {
	ca, restA := canonical(a)
	cb, restB := canonical(b)

	if c := semver.Compare(ca, cb); c != 0 {
		return c
	}

	for i := 0; i < len(restA) || i < len(restB); i++ {
		var x, y int
		if i < len(restA) {
			x = restA[i]
		}
		if i < len(restB) {
			y = restB[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether version v is greater than or equal to minimum.
func AtLeast(v, minimum string) bool {
	return CompareVersions(v, minimum) >= 0
}

// InSupportedRange reports whether v lies in [MinimumVersion, MaximumVersion).
func InSupportedRange(v string) bool {
	return AtLeast(v, MinimumVersion) && CompareVersions(v, MaximumVersion) < 0
}

// canonical turns "3.1.11.1" into ("v3.1.11", [1]). Each component keeps only
// its leading digits, so "3.0-rc1" reads as 3.0. Returns "" when v has no
// leading numeric component.
func canonical(v string) (string, []int) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return "", nil
	}

	var nums []int
	for _, part := range strings.Split(v, ".") {
		end := strings.IndexFunc(part, func(r rune) bool { return !unicode.IsDigit(r) })
		if end == -1 {
			end = len(part)
		}
		if end == 0 {
			break
		}
		n, err := strconv.Atoi(part[:end])
		if err != nil {
			break
		}
		nums = append(nums, n)
		if end < len(part) {
			break
		}
	}
	if len(nums) == 0 {
		return "", nil
	}

	for len(nums) < 3 {
		nums = append(nums, 0)
	}
	c := fmt.Sprintf("v%d.%d.%d", nums[0], nums[1], nums[2])
	if !semver.IsValid(c) {
		return "", nil
	}
	return c, nums[3:]
}

// parseVersion extracts the version from `pandoc --version` output: the first
// token of the first line that starts with a digit ("pandoc 3.1.11.1").
func parseVersion(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	for _, tok := range strings.Fields(line) {
		if tok != "" && unicode.IsDigit(rune(tok[0])) {
			return tok
		}
	}
	return ""
}
