package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/ui/prompt"
)

var errForcePushAborted = errors.New("force push aborted")

func newPushCmd() *cobra.Command {
	var (
		branch string
		force  bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:         "push",
		Short:       "Push to the remote",
		GroupID:     GroupGit,
		Args:        cobra.NoArgs,
		Annotations: requires("git"),
		Long: `Push a branch to the remote.

--force asks for confirmation when run in a terminal; pass --yes to skip it.
If the push is rejected for authentication reasons, run 'github-agent fix-creds'.`,
		Example: `  github-agent push                  # Push the current branch
  github-agent push --branch feature  # Push another branch
  github-agent push --force --yes    # Force push without asking`,
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

			if force {
				l.Warn("Warning: Force pushing...")
				ok, err := prompt.Allow(fmt.Sprintf("Force push %s to %s?", branch, repo.Remote()), yes)
				if err != nil {
					return err
				}
				if !ok {
					return errForcePushAborted
				}
			}

			l.Info("Pushing to %s/%s...", repo.Remote(), branch)
			res, err := repo.Push(ctx, branch, force)
			if err := finish(ctx, res, err); err != nil {
				l.Error("Push failed")
				l.Warn("Tip: Run 'github-agent fix-creds' if you have authentication issues")
				return err
			}
			l.Success("Push successful")
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to push (default: current)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force push")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the force push confirmation")

	return cmd
}
