package pandoc

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/alnah/go-mdfilter/internal/process"
)

// Runner abstracts command execution to enable testing without real subprocesses.
// stdin is fed to the process; stdout and stderr are captured separately.
type Runner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// Run starts name in its own process group, pipes stdin into it and waits for
// it to exit. The returned error is the one from exec, so callers can tell a
// missing binary (exec.ErrNotFound, fs.ErrNotExist) from a non-zero exit
// (*exec.ExitError).
func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary and args are supplied by the caller
	process.Configure(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
