package pandoc

import (
	"context"
	"sync"
)

// call records one Runner invocation.
type call struct {
	Stdin string
	Name  string
	Args  []string
}

// mockRunner answers `--version` queries and conversions separately and
// records every call.
type mockRunner struct {
	mu sync.Mutex

	VersionOut string
	VersionErr error

	Stdout string
	Stderr string
	Err    error

	Calls []call
}

func (m *mockRunner) Run(_ context.Context, stdin string, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, call{Stdin: stdin, Name: name, Args: append([]string(nil), args...)})
	if len(args) == 1 && args[0] == "--version" {
		return m.VersionOut, "", m.VersionErr
	}
	return m.Stdout, m.Stderr, m.Err
}

func (m *mockRunner) versionCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if len(c.Args) == 1 && c.Args[0] == "--version" {
			n++
		}
	}
	return n
}
