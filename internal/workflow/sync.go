package workflow

import (
	"context"

	"github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/log"
)

// DefaultSyncMessage is the commit message used when none is given.
const DefaultSyncMessage = "Sync changes"

// SyncOptions configures Sync.
type SyncOptions struct {
	Branch  string // empty = current branch
	Message string // empty = DefaultSyncMessage
}

// StageResult is the captured output of one sync stage.
type StageResult struct {
	Stage  string
	Result cmd.Result
}

// SyncReport records what Sync did. It is populated even when Sync fails.
type SyncReport struct {
	Stages    []StageResult // stages that ran, in order
	Committed bool          // a commit was created
	Skipped   []string      // stages skipped because there was nothing to do
}

// Ran reports whether stage ran.
func (r *SyncReport) Ran(stage string) bool {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return true
		}
	}
	return false
}

// Sync pulls, commits all changes and pushes. The first failing stage
// aborts the rest and is returned as *StageError. A push failure after a
// commit leaves the commit in place and Committed set.
func Sync(ctx context.Context, repo *git.Client, opts SyncOptions) (*SyncReport, error) {
	l := log.FromContext(ctx)
	report := &SyncReport{}
	message := opts.Message
	if message == "" {
		message = DefaultSyncMessage
	}

	l.Info("Pulling latest changes...")
	res, err := repo.Pull(ctx, opts.Branch)
	report.Stages = append(report.Stages, StageResult{StagePull, res})
	if err != nil {
		return report, &StageError{Stage: StagePull, Err: err}
	}

	changed, err := repo.HasChanges(ctx)
	if err != nil {
		return report, &StageError{Stage: StageCommit, Err: err}
	}
	if changed {
		l.Info("Committing changes...")
		if err := repo.AddAll(ctx); err != nil {
			return report, &StageError{Stage: StageCommit, Err: err}
		}
		res, err := repo.Commit(ctx, message)
		report.Stages = append(report.Stages, StageResult{StageCommit, res})
		if err != nil {
			return report, &StageError{Stage: StageCommit, Err: err}
		}
		report.Committed = true
	} else {
		l.Debug("nothing to commit, skipping commit stage")
		report.Skipped = append(report.Skipped, StageCommit)
	}

	l.Info("Pushing changes...")
	res, err = repo.Push(ctx, opts.Branch, false)
	report.Stages = append(report.Stages, StageResult{StagePush, res})
	if err != nil {
		return report, &StageError{Stage: StagePush, Err: err}
	}
	return report, nil
}
