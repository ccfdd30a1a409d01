package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/cmd/cmdtest"
	"github.com/raphi011/agentkit/internal/git"
)

func scriptedRepo() *cmdtest.Runner {
	return cmdtest.New().On("git branch --show-current", cmdtest.Response{Stdout: "main\n"})
}

func TestSync_PullFailureStopsEverything(t *testing.T) {
	t.Parallel()
	r := scriptedRepo().
		On("git pull", cmdtest.Response{Stderr: "fatal: couldn't find remote ref main", Code: 1}).
		On("git status --porcelain", cmdtest.Response{Stdout: " M file.go\n"})

	report, err := Sync(context.Background(), git.New(r, "", ""), SyncOptions{})

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StagePull {
		t.Fatalf("Sync() error = %v, want StageError at pull", err)
	}
	if cmd.ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", cmd.ExitCode(err))
	}
	if r.Ran("git commit") || r.Ran("git add") || r.Ran("git push") {
		t.Errorf("commit or push ran after failed pull:\n%s", r)
	}
	if report.Ran(StageCommit) || report.Ran(StagePush) || report.Committed {
		t.Errorf("report = %+v", report)
	}
}

func TestSync_PushFailureStillReportsCommit(t *testing.T) {
	t.Parallel()
	r := scriptedRepo().
		On("git status --porcelain", cmdtest.Response{Stdout: " M file.go\n"}).
		On("git commit", cmdtest.Response{Stdout: "[main abc123] wip\n"}).
		On("git push", cmdtest.Response{Stderr: "remote: Permission denied", Code: 128})

	report, err := Sync(context.Background(), git.New(r, "", ""), SyncOptions{Message: "wip"})

	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StagePush {
		t.Fatalf("Sync() error = %v, want StageError at push", err)
	}
	if cmd.ExitCode(err) != 128 {
		t.Errorf("ExitCode = %d, want 128", cmd.ExitCode(err))
	}
	if !report.Committed {
		t.Error("Committed = false, want true after successful commit")
	}
	if r.Ran("git reset") || r.Ran("git revert") {
		t.Errorf("commit was rolled back:\n%s", r)
	}
}

func TestSync_FullRun(t *testing.T) {
	t.Parallel()
	r := scriptedRepo().On("git status --porcelain", cmdtest.Response{Stdout: "?? new.txt\n"})

	report, err := Sync(context.Background(), git.New(r, "", ""), SyncOptions{})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	want := []string{
		"git branch --show-current",
		"git pull origin main",
		"git status --porcelain",
		"git add .",
		"git commit -m Sync changes",
		"git branch --show-current",
		"git push origin main",
	}
	if diff := cmp.Diff(want, r.Lines()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if !report.Committed || len(report.Stages) != 3 {
		t.Errorf("report = %+v", report)
	}
}

func TestSync_CleanTreeSkipsCommit(t *testing.T) {
	t.Parallel()
	r := scriptedRepo()

	report, err := Sync(context.Background(), git.New(r, "", ""), SyncOptions{Branch: "dev"})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if r.Ran("git commit") || report.Committed {
		t.Errorf("commit ran on clean tree:\n%s", r)
	}
	if diff := cmp.Diff([]string{StageCommit}, report.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}
	if !r.Ran("git push origin dev") {
		t.Errorf("push not run for dev:\n%s", r)
	}
}

func TestStageError_Unwrap(t *testing.T) {
	t.Parallel()
	inner := errors.New("boom")
	err := error(&StageError{Stage: StagePush, Err: inner})
	if !errors.Is(err, inner) {
		t.Error("StageError does not unwrap to its cause")
	}
	if err.Error() != "sync failed at push: boom" {
		t.Errorf("Error() = %q", err)
	}
}
