package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/workflow"
)

func newSyncCmd() *cobra.Command {
	var (
		message string
		branch  string
	)

	cmd := &cobra.Command{
		Use:         "sync",
		Short:       "Pull, commit all changes and push",
		GroupID:     GroupGit,
		Args:        cobra.NoArgs,
		Annotations: requires("git"),
		Long: `Pull, commit all changes and push, in that order.

The commit is skipped when the working tree is clean. The first failing
step stops the sync; a commit made before a failed push is kept.`,
		Example: `  github-agent sync                        # Sync with "Sync changes"
  github-agent sync --message "WIP: parser"  # Custom commit message`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			repo := newGit(ctx)

			if err := requireRepo(ctx, repo); err != nil {
				return err
			}

			l.Info("Syncing repository...")
			report, err := workflow.Sync(ctx, repo, workflow.SyncOptions{Branch: branch, Message: message})
			for i, stage := range report.Stages {
				last := i == len(report.Stages)-1
				relay(ctx, stage.Result, err != nil && last)
			}
			if err != nil {
				var stageErr *workflow.StageError
				if errors.As(err, &stageErr) {
					l.Error("%v", stageErr)
					if report.Committed {
						l.Warn("The commit was created locally and not pushed")
					}
					return &reportedError{err}
				}
				return err
			}
			l.Success("Sync complete!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", workflow.DefaultSyncMessage, "Commit message")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to sync (default: current)")

	return cmd
}
