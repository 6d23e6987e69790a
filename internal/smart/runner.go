package smart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

var (
	// ErrLaunch means the smartctl executable could not be started.
	ErrLaunch = errors.New("smartctl could not be launched")
	// ErrExit means smartctl ran but exited with a non-zero status.
	ErrExit = errors.New("smartctl exited with an error")
	// ErrTimeout means smartctl did not finish within the runner timeout.
	ErrTimeout = errors.New("smartctl timed out")
)

// DefaultTimeout bounds a single smartctl invocation.
const DefaultTimeout = 15 * time.Second

// Runner invokes smartctl for one device or partition at a time.
type Runner struct {
	Path    string
	Timeout time.Duration
}

// NewRunner returns a Runner for the given executable. An empty path uses
// the platform default.
func NewRunner(path string, timeout time.Duration) *Runner {
	if path == "" {
		path = DefaultPath()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{Path: path, Timeout: timeout}
}

// Run executes `smartctl -A <target> --device=auto` and returns its stdout.
func (r *Runner) Run(ctx context.Context, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, "-A", target, "--device=auto")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrLaunch, r.Path, err)
	}
	err := cmd.Wait()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w after %s on %s", ErrTimeout, r.Timeout, target)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s on %s (status %d): %s",
				ErrExit, r.Path, target, exitErr.ExitCode(), bytes.TrimSpace(stderr.Bytes()))
		}
		return "", fmt.Errorf("failed to run smartctl on %s: %w", target, err)
	}
	return stdout.String(), nil
}
