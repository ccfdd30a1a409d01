package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/raphi011/agentkit/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestExecRunner_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dir        string
		args       []string
		wantStdout string
		wantErr    string
	}{
		{"success", "", []string{"echo", "hello"}, "hello\n", ""},
		{"runs in dir", "/tmp", []string{"pwd"}, "/tmp\n", ""},
		{"failure without stderr", "", []string{"sh", "-c", "exit 1"}, "", "sh -c exit 1: exit status 1"},
		{"stderr becomes the message", "", []string{"sh", "-c", "echo 'bad thing' >&2; exit 1"}, "", "bad thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := ExecRunner{}.Run(logCtx(), tt.dir, tt.args[0], tt.args[1:]...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Run(%v) = %v, want nil", tt.args, err)
				}
			} else if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Run(%v) error = %v, want %q", tt.args, err, tt.wantErr)
			}
			if got := string(res.Stdout); got != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", got, tt.wantStdout)
			}
		})
	}
}

func TestExecRunner_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	res, err := ExecRunner{}.Run(ctx, "", "sleep", "10")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	t.Parallel()
	res, err := ExecRunner{}.Run(logCtx(), "", "sh", "-c", "echo out; echo 'rejected' >&2; exit 3")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || res.ExitCode != 3 {
		t.Errorf("exit code = %d (result %d), want 3", exitErr.Code, res.ExitCode)
	}
	if exitErr.Stderr != "rejected" {
		t.Errorf("Stderr = %q, want %q", exitErr.Stderr, "rejected")
	}
	if got := string(res.Stdout); got != "out\n" {
		t.Errorf("Stdout = %q, want %q", got, "out\n")
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	t.Parallel()
	res, err := ExecRunner{}.Run(logCtx(), "", "agentkit-no-such-binary")
	if err == nil {
		t.Fatal("Run(missing binary) = nil, want error")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("Run(missing binary) returned *ExitError, want start error")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestExecRunner_LogsCommand(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if _, err := (ExecRunner{}).Run(ctx, "/tmp", "echo", "hi"); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "[/tmp] $ echo hi") {
		t.Errorf("log = %q, want command line", got)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"exit error", &ExitError{Name: "git", Code: 128}, 128},
		{"wrapped exit error", fmt.Errorf("push: %w", &ExitError{Name: "git", Code: 2}), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitError_Message(t *testing.T) {
	t.Parallel()
	err := &ExitError{Name: "git", Args: []string{"push", "origin"}, Code: 1}
	if got, want := err.Error(), "git push origin: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
