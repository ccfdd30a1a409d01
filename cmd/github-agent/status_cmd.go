package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "status",
		Short:       "Show branch, remote and working tree changes",
		Aliases:     []string{"st"},
		GroupID:     GroupGit,
		Args:        cobra.NoArgs,
		Annotations: requires("git"),
		Long: `Show the current branch, the remote URL and uncommitted changes.

With -v, the five most recent commits are listed as well.`,
		Example: `  github-agent status     # Branch, remote and changes
  github-agent status -v  # Include recent commits`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			repo := newGit(ctx)

			if err := requireRepo(ctx, repo); err != nil {
				return err
			}

			branch, err := repo.CurrentBranch(ctx)
			switch {
			case errors.Is(err, git.ErrDetachedHead):
				branch = "(detached HEAD)"
			case err != nil:
				return err
			}

			out.Println("Git Status")
			out.Printf("Branch: %s\n", branch)
			if remote, err := repo.RemoteURL(ctx); err == nil && remote != "" {
				out.Printf("Remote: %s\n", remote)
			}

			changes, err := repo.StatusShort(ctx)
			if err != nil {
				return err
			}
			if changes != "" {
				out.Println("\nChanges:")
				out.Println(changes)
			} else {
				out.Println("\nWorking tree clean")
			}

			if l.IsVerbose() {
				commits, err := repo.RecentCommits(ctx, 5)
				if err != nil {
					// A repository without commits has no log.
					l.Debug("no recent commits", "err", err)
					return nil
				}
				out.Println("\nRecent commits:")
				out.Println(commits)
			}
			return nil
		},
	}

	return cmd
}
