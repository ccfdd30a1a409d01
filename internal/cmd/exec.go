package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/agentkit/internal/log"
)

// Result is the captured outcome of one process run.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner starts an external command in dir (empty = current directory)
// and waits for it to finish.
//
// A non-zero exit is returned as *ExitError alongside the populated Result.
// Failure to start the process returns a wrapped error and ExitCode -1.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExitError reports a command that ran and exited non-zero.
type ExitError struct {
	Name   string
	Args   []string
	Code   int
	Stderr string
}

// Error returns the trimmed stderr of the command, or a generic message
// when the command wrote nothing to stderr.
func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s %s: exit status %d", e.Name, strings.Join(e.Args, " "), e.Code)
}

// ExitCode returns the exit code carried by err, 0 for nil and 1 for any
// error that is not an *ExitError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// ExecRunner runs commands with os/exec, logging each one through the
// context logger.
type ExecRunner struct{}

// Default is the runner used by the CLIs.
var Default Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, ctxErr
	}
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, &ExitError{
				Name:   name,
				Args:   args,
				Code:   res.ExitCode,
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		res.ExitCode = -1
		return res, fmt.Errorf("run %s: %w", name, err)
	}
	return res, nil
}
