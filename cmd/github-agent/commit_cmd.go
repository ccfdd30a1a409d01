package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/log"
)

func newCommitCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:         "commit <message>",
		Short:       "Commit changes",
		GroupID:     GroupGit,
		Args:        cobra.ExactArgs(1),
		Annotations: requires("git"),
		Example: `  github-agent commit "Fix typo"       # Commit staged changes
  github-agent commit -a "Update docs"  # Stage everything, then commit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			repo := newGit(ctx)
			message := args[0]

			if err := requireRepo(ctx, repo); err != nil {
				return err
			}

			if all {
				l.Info("Staging all changes...")
				if err := repo.AddAll(ctx); err != nil {
					return err
				}
			}

			res, err := repo.Commit(ctx, message)
			if errors.Is(err, git.ErrNoChanges) {
				l.Warn("No changes to commit")
				return &reportedError{err}
			}
			if err := finish(ctx, res, err); err != nil {
				l.Error("Commit failed")
				return err
			}
			l.Success("Committed: %s", message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Stage all changes before committing")

	return cmd
}
