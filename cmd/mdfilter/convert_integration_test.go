//go:build integration

package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdfilter/internal/render"
)

// integrationEnv is a testEnv that runs the real pandoc.
func integrationEnv(stdin string) *testEnv {
	env := newTestEnv(stdin)
	env.Runner = nil
	env.LookPath = DefaultEnv().LookPath
	env.Getenv = DefaultEnv().Getenv
	return env
}

func TestConvert_AllFormats_Integration(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	writeTestFile(t, src, "# Title\n\nSome *emphasis* and $x^2$.\n- a\n- b\n")

	tests := []struct {
		to       string
		file     string
		contains string
	}{
		{"html", "doc.html", "<h1"},
		{"html-pandoc", "doc.html", "math inline"},
		{"latex", "doc.tex", `\emph{emphasis}`},
		{"rst", "doc.rst", "*emphasis*"},
		{"asciidoc", "doc.adoc", "= Title"},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			if tt.to == "html" {
				requireRenderer(t, render.Default)
			}
			out := filepath.Join(t.TempDir(), tt.file)
			env := integrationEnv("")

			code := runConvertCmd(context.Background(), []string{"--to", tt.to, "-o", out, src}, env.Environment)
			if code != ExitSuccess {
				t.Fatalf("exit code = %d, stderr: %s", code, env.stderr.String())
			}
			if got := readTestFile(t, out); !strings.Contains(got, tt.contains) {
				t.Errorf("output missing %q:\n%s", tt.contains, got)
			}
		})
	}
}

func TestDoctor_Integration(t *testing.T) {
	env := integrationEnv("")

	if code := runDoctorCmd(context.Background(), nil, env.Environment); code != ExitSuccess {
		t.Fatalf("exit code = %d, output: %s", code, env.stdout.String())
	}
	if !strings.Contains(env.stdout.String(), "Found at") {
		t.Errorf("output = %s", env.stdout.String())
	}
}

func TestConvert_MissingPandoc_Integration(t *testing.T) {
	env := integrationEnv("# x")

	code := runConvertCmd(context.Background(),
		[]string{"--to", "latex", "--pandoc", "pandoc-that-does-not-exist-12345"}, env.Environment)
	if code != ExitPandoc {
		t.Errorf("exit code = %d, want %d", code, ExitPandoc)
	}
	if !strings.Contains(env.stderr.String(), "hint: install pandoc") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}
