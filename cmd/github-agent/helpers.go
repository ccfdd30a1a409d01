package main

import (
	"context"
	"errors"

	proc "github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
	"github.com/raphi011/agentkit/internal/ui/progress"
)

var errNotRepo = errors.New("not a git repository")

// newGit returns a git client for the working directory and configured remote.
func newGit(ctx context.Context) *git.Client {
	cfg := config.FromContext(ctx)
	return git.New(runner, config.WorkDirFromContext(ctx), cfg.GitHub.Remote)
}

// newGH returns a gh client for the working directory and configured host.
func newGH(ctx context.Context) *github.Client {
	cfg := config.FromContext(ctx)
	return github.New(runner, config.WorkDirFromContext(ctx), cfg.GitHub.Host)
}

// requireRepo fails with a logged error outside a git work tree.
func requireRepo(ctx context.Context, repo *git.Client) error {
	if repo.IsRepo(ctx) {
		return nil
	}
	log.FromContext(ctx).Error("Not a git repository")
	return &reportedError{errNotRepo}
}

// relay writes a command's captured stdout to the printer and its stderr
// to the log writer. Stderr of a successful command is dropped in quiet mode.
func relay(ctx context.Context, res proc.Result, failed bool) {
	output.FromContext(ctx).Relay(res.Stdout)
	l := log.FromContext(ctx)
	if len(res.Stderr) == 0 || (l.IsQuiet() && !failed) {
		return
	}
	output.New(l.Writer()).Relay(res.Stderr)
}

// finish relays res and returns err, marked as reported when the failing
// command's stderr was already shown.
func finish(ctx context.Context, res proc.Result, err error) error {
	relay(ctx, res, err != nil)
	if err == nil {
		return nil
	}
	var exitErr *proc.ExitError
	if errors.As(err, &exitErr) && len(res.Stderr) > 0 {
		return &reportedError{err}
	}
	return err
}

// spin runs fn while a spinner shows message on stderr. The spinner stays
// off in verbose and quiet mode and when stderr is not a terminal.
//
// Only wrap calls that never prompt: git asks for credentials on the
// terminal during pull and push, and the spinner would draw over it.
func spin[T any](ctx context.Context, message string, fn func() (T, error)) (T, error) {
	l := log.FromContext(ctx)
	if l.IsVerbose() || l.IsQuiet() || !progress.Enabled() {
		return fn()
	}
	sp := progress.NewSpinner(message)
	sp.Start()
	defer sp.Stop()
	return fn()
}
