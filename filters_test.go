package mdfilter

// Notes:
// - pandoc is replaced by mockRunner; real pandoc output is covered by
//   filters_integration_test.go (build tag: integration).
// - The supported-range version warning is tested in internal/pandoc.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"testing"
)

const modernPandoc = "pandoc 3.1.11.1\n"

// ---------------------------------------------------------------------------
// LaTeX / RST - reader fixed, writer per filter, args passed through
// ---------------------------------------------------------------------------

func TestPassThroughFilters(t *testing.T) {
	t.Parallel()

	filters := []struct {
		name   string
		writer string
		call   func(c *Converter, src string, args ...string) (string, error)
	}{
		{
			name:   "latex",
			writer: "latex",
			call: func(c *Converter, src string, args ...string) (string, error) {
				return c.MarkdownToLaTeX(context.Background(), src, args...)
			},
		},
		{
			name:   "rst",
			writer: "rst",
			call: func(c *Converter, src string, args ...string) (string, error) {
				return c.MarkdownToRST(context.Background(), src, args...)
			},
		},
	}

	argSets := []struct {
		name string
		args []string
	}{
		{name: "no extra args", args: nil},
		{name: "extra args unchanged", args: []string{"--wrap=none", "--columns", "72"}},
	}

	for _, f := range filters {
		for _, a := range argSets {
			t.Run(f.name+"/"+a.name, func(t *testing.T) {
				t.Parallel()

				mock := &mockRunner{VersionOut: modernPandoc, Stdout: "converted"}
				conv := NewConverter(WithRunner(mock))

				got, err := f.call(conv, "# Title\n- item", a.args...)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != "converted" {
					t.Errorf("output = %q, want %q", got, "converted")
				}

				calls := mock.conversions()
				if len(calls) != 1 {
					t.Fatalf("expected 1 conversion call, got %d", len(calls))
				}
				want := append([]string{"-f", MarkdownFormat, "-t", f.writer}, a.args...)
				if strings.Join(calls[0].Args, "\x00") != strings.Join(want, "\x00") {
					t.Errorf("args = %q, want %q", calls[0].Args, want)
				}
				if calls[0].Stdin != "# Title\n- item" {
					t.Errorf("stdin = %q", calls[0].Stdin)
				}
				if calls[0].Name != "pandoc" {
					t.Errorf("binary = %q, want pandoc", calls[0].Name)
				}
			})
		}
	}
}

// ---------------------------------------------------------------------------
// HTML via pandoc - --mathjax default, never merged
// ---------------------------------------------------------------------------

func TestMarkdownToHTMLPandoc_Args(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantArgs []string
	}{
		{
			name:     "defaults to mathjax",
			args:     nil,
			wantArgs: []string{"--mathjax"},
		},
		{
			name:     "explicit args replace default",
			args:     []string{"--katex"},
			wantArgs: []string{"--katex"},
		},
		{
			name:     "explicit args are not merged",
			args:     []string{"--standalone", "--toc"},
			wantArgs: []string{"--standalone", "--toc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionOut: modernPandoc, Stdout: "<p>x</p>"}
			conv := NewConverter(WithRunner(mock))

			if _, err := conv.MarkdownToHTMLPandoc(context.Background(), "x", tt.args...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			calls := mock.conversions()
			if len(calls) != 1 {
				t.Fatalf("expected 1 conversion call, got %d", len(calls))
			}
			want := append([]string{"-f", MarkdownFormat, "-t", "html"}, tt.wantArgs...)
			if strings.Join(calls[0].Args, " ") != strings.Join(want, " ") {
				t.Errorf("args = %q, want %q", calls[0].Args, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// AsciiDoc - version negotiation and fixup
// ---------------------------------------------------------------------------

func TestMarkdownToAsciiDoc_HeadingFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		versionOut string
		versionErr error
		args       []string
		wantArgs   []string
	}{
		{
			name:       "pandoc 2.9 uses legacy flag",
			versionOut: "pandoc 2.9\n",
			wantArgs:   []string{"--atx-headers"},
		},
		{
			name:       "pandoc 2.19.2 uses legacy flag",
			versionOut: "pandoc 2.19.2\n",
			wantArgs:   []string{"--atx-headers"},
		},
		{
			name:       "pandoc 3.0 uses new flag",
			versionOut: "pandoc 3.0\n",
			wantArgs:   []string{"--markdown-headings=atx"},
		},
		{
			name:       "pandoc 3.1.11.1 uses new flag",
			versionOut: modernPandoc,
			wantArgs:   []string{"--markdown-headings=atx"},
		},
		{
			name:       "pandoc 10.0 uses new flag",
			versionOut: "pandoc 10.0\n",
			wantArgs:   []string{"--markdown-headings=atx"},
		},
		{
			name:       "undetectable version uses legacy flag",
			versionOut: "who knows\n",
			wantArgs:   []string{"--atx-headers"},
		},
		{
			name:       "failing version query uses legacy flag",
			versionErr: &exec.ExitError{},
			wantArgs:   []string{"--atx-headers"},
		},
		{
			name:       "explicit args replace heading flag",
			versionOut: modernPandoc,
			args:       []string{"--wrap=none"},
			wantArgs:   []string{"--wrap=none"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionOut: tt.versionOut, VersionErr: tt.versionErr, Stdout: "= Title\n"}
			conv := NewConverter(WithRunner(mock))

			got, err := conv.MarkdownToAsciiDoc(context.Background(), "# Title", tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "= Title\n" {
				t.Errorf("output = %q", got)
			}

			calls := mock.conversions()
			if len(calls) != 1 {
				t.Fatalf("expected 1 conversion call, got %d", len(calls))
			}
			want := append([]string{"-f", MarkdownFormat, "-t", "asciidoc"}, tt.wantArgs...)
			if strings.Join(calls[0].Args, " ") != strings.Join(want, " ") {
				t.Errorf("args = %q, want %q", calls[0].Args, want)
			}
		})
	}
}

func TestMarkdownToAsciiDoc_AppliesFixup(t *testing.T) {
	t.Parallel()

	mock := &mockRunner{
		VersionOut: modernPandoc,
		Stdout:     "See __Example Text__.\nLink (__docs/intro-1__)\n",
	}
	conv := NewConverter(WithRunner(mock))

	got, err := conv.MarkdownToAsciiDoc(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "See _Example Text_.\nLink (_docs/intro-1_)\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// Errors - missing pandoc, failed pandoc, invalid input
// ---------------------------------------------------------------------------

func TestPandocFilters_ToolUnavailable(t *testing.T) {
	t.Parallel()

	notFound := &exec.Error{Name: "pandoc", Err: exec.ErrNotFound}

	for _, target := range []Target{TargetHTMLPandoc, TargetLaTeX, TargetRST, TargetAsciiDoc} {
		t.Run(string(target), func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionErr: notFound, Err: notFound, Stdout: "should not be returned"}
			conv := NewConverter(WithRunner(mock))

			got, err := conv.Convert(context.Background(), target, "# x")
			if !errors.Is(err, ErrToolUnavailable) {
				t.Fatalf("expected ErrToolUnavailable, got %v", err)
			}
			if got != "" {
				t.Errorf("expected empty output on error, got %q", got)
			}
		})
	}
}

func TestPandocFilters_NotExecutable(t *testing.T) {
	t.Parallel()

	denied := &fs.PathError{Op: "fork/exec", Path: "/opt/pandoc", Err: fs.ErrPermission}

	for _, target := range []Target{TargetHTMLPandoc, TargetLaTeX, TargetRST, TargetAsciiDoc} {
		t.Run(string(target), func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionErr: denied, Err: denied}
			conv := NewConverter(WithRunner(mock), WithPandocPath("/opt/pandoc"))

			_, err := conv.Convert(context.Background(), target, "# x")
			if !errors.Is(err, ErrToolUnavailable) {
				t.Fatalf("expected ErrToolUnavailable, got %v", err)
			}
			if errors.Is(err, ErrConversionFailed) {
				t.Errorf("start failure reported as conversion failure: %v", err)
			}
		})
	}
}

func TestPandocFilters_ConversionFailed(t *testing.T) {
	t.Parallel()

	mock := &mockRunner{
		VersionOut: modernPandoc,
		Stderr:     "pandoc: Unknown option --nope",
		Err:        &exec.ExitError{},
	}
	conv := NewConverter(WithRunner(mock))

	_, err := conv.MarkdownToLaTeX(context.Background(), "x", "--nope")
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected *ConversionError, got %T", err)
	}
	if convErr.Stderr != "pandoc: Unknown option --nope" {
		t.Errorf("Stderr = %q", convErr.Stderr)
	}
	if convErr.To != "latex" || convErr.From != MarkdownFormat {
		t.Errorf("From/To = %q/%q", convErr.From, convErr.To)
	}
}

func TestFilters_InvalidUTF8(t *testing.T) {
	t.Parallel()

	invalid := "# bad \xff\xfe"

	for _, target := range []Target{TargetHTML, TargetHTMLPandoc, TargetLaTeX, TargetRST, TargetAsciiDoc} {
		t.Run(string(target), func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionOut: modernPandoc}
			conv := NewConverter(WithRunner(mock))

			if _, err := conv.Convert(context.Background(), target, invalid); !errors.Is(err, ErrInvalidUTF8) {
				t.Fatalf("expected ErrInvalidUTF8, got %v", err)
			}
			if len(mock.Calls) != 0 {
				t.Errorf("pandoc should not be invoked, got %d calls", len(mock.Calls))
			}
		})
	}
}

func TestConverter_PandocPath(t *testing.T) {
	t.Parallel()

	mock := &mockRunner{VersionOut: modernPandoc, Stdout: "ok"}
	conv := NewConverter(WithRunner(mock), WithPandocPath("/opt/pandoc"))

	if conv.PandocPath() != "/opt/pandoc" {
		t.Errorf("PandocPath() = %q", conv.PandocPath())
	}
	if _, err := conv.MarkdownToRST(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range mock.Calls {
		if c.Name != "/opt/pandoc" {
			t.Errorf("binary = %q, want /opt/pandoc", c.Name)
		}
	}

	v, err := conv.PandocVersion(context.Background())
	if err != nil || v != "3.1.11.1" {
		t.Errorf("PandocVersion() = %q, %v", v, err)
	}
}

func TestWithMarkdownFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   []Option
		reader string
	}{
		{name: "default reader", opts: nil, reader: MarkdownFormat},
		{name: "empty keeps default", opts: []Option{WithMarkdownFormat("")}, reader: MarkdownFormat},
		{name: "custom reader", opts: []Option{WithMarkdownFormat("gfm")}, reader: "gfm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockRunner{VersionOut: modernPandoc, Stdout: "ok"}
			conv := NewConverter(append(tt.opts, WithRunner(mock))...)

			if conv.MarkdownFormat() != tt.reader {
				t.Errorf("MarkdownFormat() = %q, want %q", conv.MarkdownFormat(), tt.reader)
			}

			ctx := context.Background()
			for _, call := range []func() (string, error){
				func() (string, error) { return conv.MarkdownToHTMLPandoc(ctx, "x") },
				func() (string, error) { return conv.MarkdownToLaTeX(ctx, "x") },
				func() (string, error) { return conv.MarkdownToRST(ctx, "x") },
				func() (string, error) { return conv.MarkdownToAsciiDoc(ctx, "x") },
			} {
				if _, err := call(); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			calls := mock.conversions()
			if len(calls) != 4 {
				t.Fatalf("expected 4 conversion calls, got %d", len(calls))
			}
			for _, c := range calls {
				if len(c.Args) < 2 || c.Args[0] != "-f" || c.Args[1] != tt.reader {
					t.Errorf("args = %q, want reader %q", c.Args, tt.reader)
				}
			}
		})
	}
}

func TestWithMarkdownFormat_ConversionError(t *testing.T) {
	t.Parallel()

	mock := &mockRunner{VersionOut: modernPandoc, Err: &exec.ExitError{}}
	conv := NewConverter(WithRunner(mock), WithMarkdownFormat("commonmark_x"))

	_, err := conv.MarkdownToLaTeX(context.Background(), "x")

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected *ConversionError, got %v", err)
	}
	if convErr.From != "commonmark_x" {
		t.Errorf("From = %q, want commonmark_x", convErr.From)
	}
}
