package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result holds the outcome of one external command invocation.
// Stdout and Stderr are captured verbatim and never interleaved.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// LaunchError reports that a command could not be started at all,
// as opposed to running and exiting with a non-zero status.
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Runner runs external commands. All subprocess call sites go through
// this interface so they share one error-handling path and so tests can
// substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner runs commands with os/exec, blocking until the process
// exits. A non-zero exit status is not an error: the command ran, and
// the status is recorded in the Result.
type ExecRunner struct{}

// Run executes name with args and captures stdout and stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		// A context kill also surfaces as an ExitError; report it as
		// a failed run, not a completed one.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &LaunchError{Tool: name, Err: ctxErr}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, &LaunchError{Tool: name, Err: err}
	}
	return res, nil
}
