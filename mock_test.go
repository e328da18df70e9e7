package mdfilter

import (
	"context"
	"sync"
)

// runnerCall records one CommandRunner invocation.
type runnerCall struct {
	Stdin string
	Name  string
	Args  []string
}

// mockRunner stands in for pandoc. `--version` queries and conversions are
// answered separately; every call is recorded.
type mockRunner struct {
	mu sync.Mutex

	VersionOut string
	VersionErr error

	Stdout string
	Stderr string
	Err    error

	Calls []runnerCall
}

func (m *mockRunner) Run(_ context.Context, stdin string, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, runnerCall{Stdin: stdin, Name: name, Args: append([]string(nil), args...)})
	if isVersionQuery(args) {
		return m.VersionOut, "", m.VersionErr
	}
	return m.Stdout, m.Stderr, m.Err
}

// conversions returns the recorded calls that were not version queries.
func (m *mockRunner) conversions() []runnerCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []runnerCall
	for _, c := range m.Calls {
		if !isVersionQuery(c.Args) {
			out = append(out, c)
		}
	}
	return out
}

func isVersionQuery(args []string) bool {
	return len(args) == 1 && args[0] == "--version"
}
