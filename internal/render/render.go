package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Renderer names.
const (
	Goldmark    = "goldmark"
	Blackfriday = "blackfriday"

	// Default is the renderer used when none is configured.
	Default = Goldmark
)

// Sentinel errors for renderer lookup and rendering.
var (
	ErrNotRegistered = errors.New("renderer not compiled in")
	ErrRender        = errors.New("markdown rendering failed")
)

// Renderer converts a Markdown document to an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, source string) (string, error)
}

// Options tune the in-process renderers.
type Options struct {
	// HighlightStyle names the chroma style for fenced code (goldmark only).
	// Empty keeps CSS classes without inline colours.
	HighlightStyle string
	// HardWraps renders soft line breaks as <br>.
	HardWraps bool
	// Safe drops raw HTML from the Markdown source.
	Safe bool
}

// Factory builds a Renderer from options.
type Factory func(opts Options) (Renderer, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a renderer available by name.
// It panics if called twice with the same name or with a nil factory.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("render: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("render: Register called twice for renderer " + name)
	}
	registry[name] = factory
}

// Load builds the named renderer. Empty name means Default.
func Load(name string, opts Options) (Renderer, error) {
	if name == "" {
		name = Default
	}

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		available := Available()
		if len(available) == 0 {
			return nil, fmt.Errorf("%w: %q (no renderers available)", ErrNotRegistered, name)
		}
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrNotRegistered, name, strings.Join(available, ", "))
	}

	r, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("building %s renderer: %w", name, err)
	}
	return r, nil
}

// Available returns the registered renderer names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// convertFunc is the library-specific Markdown to HTML step.
type convertFunc func(source []byte) ([]byte, error)

// renderMarkdown runs the shared pipeline around convert.
// Supports context cancellation via goroutine + select pattern since
// neither library supports context natively.
func renderMarkdown(ctx context.Context, source string, convert convertFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		protected, spans := protectMath(normalizeLineEndings(source))
		out, err := convert([]byte(protected))
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRender, err)}
			return
		}
		done <- result{html: restoreMath(string(out), spans)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
