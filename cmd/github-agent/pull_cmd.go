package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/log"
)

func newPullCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:         "pull",
		Short:       "Pull from the remote",
		GroupID:     GroupGit,
		Args:        cobra.NoArgs,
		Annotations: requires("git"),
		Example: `  github-agent pull                 # Pull the current branch
  github-agent pull --branch main   # Pull main into the current branch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			repo := newGit(ctx)

			if err := requireRepo(ctx, repo); err != nil {
				return err
			}
			if branch == "" {
				current, err := repo.CurrentBranch(ctx)
				if err != nil {
					return err
				}
				branch = current
			}

			l.Info("Pulling from %s/%s...", repo.Remote(), branch)
			res, err := repo.Pull(ctx, branch)
			if err := finish(ctx, res, err); err != nil {
				l.Error("Pull failed")
				return err
			}
			l.Success("Pull successful")
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to pull (default: current)")

	return cmd
}
