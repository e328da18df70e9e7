package main

// Notes:
// - Test infrastructure shared across command tests: an isolated Environment
//   and a pandoc stand-in that records calls.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdfilter/internal/render"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv wraps an Environment whose I/O and process environment are local
// to the test, so tests can run in parallel.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	runner *fakePandoc
}

func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
		runner: &fakePandoc{version: "pandoc 3.1.11\n"},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		LookPath: func(name string) (string, error) {
			return "/usr/bin/" + filepath.Base(name), nil
		},
		Runner: te.runner,
	}
	return te
}

// ---------------------------------------------------------------------------
// Fake pandoc
// ---------------------------------------------------------------------------

// fakeCall records one pandoc invocation.
type fakeCall struct {
	Binary string
	Args   []string
	Stdin  string
}

// fakePandoc answers --version with version and echoes conversions as
// "<writer>:<stdin>". A missing binary is simulated with notFound, any other
// start failure with startErr.
type fakePandoc struct {
	mu       sync.Mutex
	version  string
	notFound bool
	startErr error  // cause of a start failure other than a missing binary
	fail     string // stderr of a failing conversion
	calls    []fakeCall
}

func (f *fakePandoc) Run(_ context.Context, stdin, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fakeCall{Binary: name, Args: append([]string(nil), args...), Stdin: stdin})

	if f.notFound {
		return "", "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	if f.startErr != nil {
		return "", "", &fs.PathError{Op: "fork/exec", Path: name, Err: f.startErr}
	}
	if len(args) == 1 && args[0] == "--version" {
		return f.version, "", nil
	}
	if f.fail != "" {
		return "", f.fail, &exec.ExitError{}
	}
	return fmt.Sprintf("%s:%s", writerOf(args), stdin), "", nil
}

// conversions returns the non-version calls.
func (f *fakePandoc) conversions() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []fakeCall
	for _, c := range f.calls {
		if len(c.Args) == 1 && c.Args[0] == "--version" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func writerOf(args []string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "-t" {
			return args[i+1]
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// File helpers
// ---------------------------------------------------------------------------

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// rendererCompiled reports whether the named in-process renderer survived
// the nogoldmark/noblackfriday build tags.
func rendererCompiled(name string) bool {
	for _, n := range render.Available() {
		if n == name {
			return true
		}
	}
	return false
}

// requireRenderer skips the test when the named renderer is not compiled in.
func requireRenderer(t *testing.T, name string) {
	t.Helper()

	if !rendererCompiled(name) {
		t.Skipf("%s renderer not compiled in", name)
	}
}
