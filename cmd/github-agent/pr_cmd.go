package main

import (
	"github.com/spf13/cobra"

	proc "github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/ui/static"
)

func newCreatePRCmd() *cobra.Command {
	var (
		body string
		base string
	)

	cmd := &cobra.Command{
		Use:         "create-pr <title>",
		Short:       "Create a pull request for the current branch",
		Aliases:     []string{"pr"},
		GroupID:     GroupGitHub,
		Args:        cobra.ExactArgs(1),
		Annotations: requires("gh"),
		Long: `Create a pull request from the current branch.

The base branch defaults to github.default_base from the config ("main").`,
		Example: `  github-agent create-pr "Add retry flag"
  github-agent create-pr "Hotfix" --base release --body "Fixes #12"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			gh := newGH(ctx)

			if base == "" {
				base = config.FromContext(ctx).GitHub.DefaultBase
			}

			l.Info("Creating pull request: %s", args[0])
			res, err := spin(ctx, "Creating pull request...", func() (proc.Result, error) {
				return gh.CreatePR(ctx, github.CreatePROptions{
					Title: args[0],
					Body:  body,
					Base:  base,
				})
			})
			if err := finish(ctx, res, err); err != nil {
				l.Error("Failed to create pull request")
				return err
			}
			l.Success("Pull request created successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Pull request body")
	cmd.Flags().StringVar(&base, "base", "", "Base branch (default: github.default_base)")

	return cmd
}

func newListPRsCmd() *cobra.Command {
	var (
		state      string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:         "list-prs",
		Short:       "List pull requests",
		Aliases:     []string{"prs"},
		GroupID:     GroupGitHub,
		Args:        cobra.NoArgs,
		Annotations: requires("gh"),
		Example: `  github-agent list-prs                  # Ten most recent open pull requests
  github-agent list-prs --state merged   # Merged pull requests
  github-agent list-prs --json           # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gh := newGH(ctx)

			if err := validateListFlags(state, limit, github.PRStates); err != nil {
				return err
			}

			prs, err := spin(ctx, "Fetching pull requests...", func() ([]github.PullRequest, error) {
				return gh.ListPRs(ctx, state, limit)
			})
			if err != nil {
				return err
			}
			if prs == nil {
				prs = []github.PullRequest{}
			}
			return printListing(ctx, state, "pull requests", jsonOutput, prs,
				static.PRHeaders, static.PRRows(prs))
		},
	}

	addListFlags(cmd, &state, &limit, &jsonOutput, github.PRStates)

	return cmd
}
