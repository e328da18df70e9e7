// Package pandoc dispatches conversions to the pandoc command-line tool and
// negotiates version-dependent flags.
package pandoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"sync"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

// DefaultBinary is looked up on PATH when no explicit binary is configured.
const DefaultBinary = "pandoc"

// Client runs pandoc. It is safe for concurrent use: every conversion spawns
// its own process and only the detected version is shared.
type Client struct {
	binary string
	runner Runner
	logger logrus.FieldLogger

	mu      sync.Mutex
	version string

	checkOnce sync.Once
}

// NewClient creates a Client. Empty binary means DefaultBinary, nil runner
// means ExecRunner, nil logger discards everything.
func NewClient(binary string, runner Runner, logger logrus.FieldLogger) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = &ExecRunner{}
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Client{binary: binary, runner: runner, logger: logger}
}

// Binary returns the configured pandoc executable.
func (c *Client) Binary() string {
	return c.binary
}

// Convert pipes source through `pandoc -f from -t to extraArgs...` and returns
// pandoc's standard output.
func (c *Client) Convert(ctx context.Context, source, from, to string, extraArgs []string) (string, error) {
	args := make([]string, 0, 4+len(extraArgs))
	args = append(args, "-f", from, "-t", to)
	args = append(args, extraArgs...)

	c.logger.WithFields(logrus.Fields{"from": from, "to": to}).
		Debugf("running %s", shellquote.Join(append([]string{c.binary}, args...)...))

	stdout, stderr, err := c.runner.Run(ctx, source, c.binary, args...)
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case isNotFound(err):
			return "", c.unavailable(err)
		case ctx.Err() != nil:
			return "", fmt.Errorf("pandoc %s -> %s: %w", from, to, ctx.Err())
		case errors.As(err, &exitErr):
			return "", &ConversionError{From: from, To: to, Args: extraArgs, Stderr: stderr, Err: err}
		default:
			// pandoc never ran, e.g. the path is not executable.
			return "", c.unavailable(err)
		}
	}

	if stderr != "" {
		c.logger.WithFields(logrus.Fields{"from": from, "to": to}).Warn(stderr)
	}
	return stdout, nil
}

// Version returns the installed pandoc version, e.g. "3.1.11.1".
// It returns "" and a nil error when `pandoc --version` runs but prints
// nothing recognisable, and ErrToolUnavailable when pandoc cannot be started.
// A detected version is cached for the life of the client.
func (c *Client) Version(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.version
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	stdout, stderr, err := c.runner.Run(ctx, "", c.binary, "--version")
	if err != nil {
		var exitErr *exec.ExitError
		if isNotFound(err) || (ctx.Err() == nil && !errors.As(err, &exitErr)) {
			return "", c.unavailable(err)
		}
		return "", fmt.Errorf("querying pandoc version: %s: %w", stderr, err)
	}

	v := parseVersion(stdout)
	if v != "" {
		c.mu.Lock()
		c.version = v
		c.mu.Unlock()
	}
	return v, nil
}

// CheckVersion logs a warning, once per client, when the installed pandoc is
// outside the supported window. Detection failures are left for Convert to
// report.
func (c *Client) CheckVersion(ctx context.Context) {
	c.checkOnce.Do(func() {
		v, err := c.Version(ctx)
		if err != nil || v == "" {
			return
		}
		if !InSupportedRange(v) {
			c.logger.Warnf("pandoc %s is outside the supported range [%s, %s); output may differ",
				v, MinimumVersion, MaximumVersion)
		}
	})
}

// unavailable wraps a failure to start the pandoc binary.
func (c *Client) unavailable(err error) error {
	return fmt.Errorf("%w: %s: %v", ErrToolUnavailable, c.binary, err)
}

// isNotFound reports whether err means the binary could not be executed at all.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
