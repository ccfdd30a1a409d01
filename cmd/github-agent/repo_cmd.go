package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
)

func newCreateRepoCmd() *cobra.Command {
	var (
		description string
		private     bool
		push        bool
	)

	cmd := &cobra.Command{
		Use:         "create-repo <name>",
		Short:       "Create a GitHub repository from the current directory",
		GroupID:     GroupGitHub,
		Args:        cobra.ExactArgs(1),
		Annotations: requires("git", "gh"),
		Long: `Create a GitHub repository with the current directory as its source.

Without --push, a directory that is not yet a git repository is initialized
first. --push requires an existing repository with at least one commit.`,
		Example: `  github-agent create-repo my-tool                      # Public repository
  github-agent create-repo my-tool --private --push       # Private, push the current branch
  github-agent create-repo my-org/my-tool --description "CLI helpers"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			gh := newGH(ctx)
			name := args[0]

			visibility := "public"
			if private {
				visibility = "private"
			}
			l.Info("Creating %s repository: %s...", visibility, name)

			create := func() (github.CreateRepoResult, error) {
				return gh.CreateRepo(ctx, newGit(ctx), github.CreateRepoOptions{
					Name:        name,
					Description: description,
					Private:     private,
					Push:        push,
				})
			}
			var (
				result github.CreateRepoResult
				err    error
			)
			if push {
				result, err = create()
			} else {
				result, err = spin(ctx, "Creating repository...", create)
			}
			if err := finish(ctx, result.Result, err); err != nil {
				l.Error("Failed to create repository")
				return err
			}
			l.Success("Repository created successfully")

			if owner, repoName, ok := strings.Cut(name, "/"); ok {
				out.Println(gh.RepoURL(owner, repoName))
				return nil
			}
			user, err := gh.AuthUser(ctx)
			if err != nil {
				l.Debug("could not resolve repository owner", "err", err)
				return nil
			}
			out.Println(gh.RepoURL(user, name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Repository description")
	cmd.Flags().BoolVar(&private, "private", false, "Make the repository private")
	cmd.Flags().BoolVar(&push, "push", false, "Push the current branch after creating")

	return cmd
}
