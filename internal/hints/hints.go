// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-mdfilter/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints for a missing pandoc binary.
func ForPandocNotFound() string {
	hints := []string{"install pandoc from https://pandoc.org/installing.html"}
	if IsInContainer() {
		hints = append(hints, "in Debian-based images: apt-get install -y pandoc")
	}
	hints = append(hints, "or set MDFILTER_PANDOC to the binary path")
	return formatHints(hints)
}

// ForPandocVersion returns a hint when pandoc is outside the supported window.
func ForPandocVersion(minimum, maximum string) string {
	return format("supported pandoc versions: >= " + minimum + ", < " + maximum)
}

// ForRendererUnavailable returns hints for an in-process renderer that was
// not compiled in.
func ForRendererUnavailable(available []string) string {
	if len(available) == 0 {
		return format("binary built without renderers; use --to html-pandoc")
	}
	return format("available renderers: " + strings.Join(available, ", ") + "; or use --to html-pandoc")
}

// ForTimeout returns a hint about increasing timeout for slow conversions.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config dir.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "mdfilter/") || strings.Contains(p, `mdfilter\`) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
