// Package sandbox executes candidate Python code under a fixed wall-clock
// timeout and compares its stdout against an expected value. It is a
// collaborator of the chat pipeline, never fatal to the enclosing request:
// every outcome is reported as a pass/fail/error string.
package sandbox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Runner executes candidate code with a configured interpreter and timeout.
type Runner struct {
	Interpreter string
	Timeout     time.Duration
}

// New creates a runner. Zero values fall back to python3 and 10 seconds.
func New(interpreter string, timeout time.Duration) *Runner {
	if interpreter == "" {
		interpreter = "python3"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{Interpreter: interpreter, Timeout: timeout}
}

// runCommand is injectable in tests.
var runCommand = func(ctx context.Context, interpreter, path string) (string, error) {
	cmd := exec.CommandContext(ctx, interpreter, path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Run writes code to a temporary file, executes it under the timeout and
// checks stdout against expectedStdout (skipped when empty). The temporary
// file is removed on every exit path.
func (r *Runner) Run(ctx context.Context, code, expectedStdout string) string {
	tmp, err := os.CreateTemp("", "torchlint-*.py")
	if err != nil {
		return "ERROR: " + err.Error()
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(code); err != nil {
		tmp.Close()
		return "ERROR: " + err.Error()
	}
	if err := tmp.Close(); err != nil {
		return "ERROR: " + err.Error()
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out, err := runCommand(ctx, r.Interpreter, path)
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Sprintf("ERROR: execution exceeded %s", r.Timeout)
	}
	if err != nil {
		return "ERROR: " + err.Error()
	}

	got := strings.TrimSpace(out)
	want := strings.TrimSpace(expectedStdout)
	if want != "" && got != want {
		return fmt.Sprintf("FAIL: stdout %q does not match expected %q", got, want)
	}
	return "PASS"
}
