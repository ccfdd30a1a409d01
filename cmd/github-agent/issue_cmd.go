package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	proc "github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
	"github.com/raphi011/agentkit/internal/ui/static"
)

const defaultListLimit = 10

func newCreateIssueCmd() *cobra.Command {
	var (
		body   string
		labels []string
	)

	cmd := &cobra.Command{
		Use:         "create-issue <title>",
		Short:       "Create a GitHub issue",
		GroupID:     GroupGitHub,
		Args:        cobra.ExactArgs(1),
		Annotations: requires("gh"),
		Example: `  github-agent create-issue "Crash on empty input"
  github-agent create-issue "Add --json" --body "For scripting" --labels enhancement,cli`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			gh := newGH(ctx)

			l.Info("Creating issue: %s", args[0])
			res, err := spin(ctx, "Creating issue...", func() (proc.Result, error) {
				return gh.CreateIssue(ctx, github.CreateIssueOptions{
					Title:  args[0],
					Body:   body,
					Labels: labels,
				})
			})
			if err := finish(ctx, res, err); err != nil {
				l.Error("Failed to create issue")
				return err
			}
			l.Success("Issue created successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "Issue body")
	cmd.Flags().StringSliceVarP(&labels, "labels", "l", nil, "Issue labels (comma-separated or repeated)")

	return cmd
}

func newListIssuesCmd() *cobra.Command {
	var (
		state      string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:         "list-issues",
		Short:       "List GitHub issues",
		Aliases:     []string{"issues"},
		GroupID:     GroupGitHub,
		Args:        cobra.NoArgs,
		Annotations: requires("gh"),
		Example: `  github-agent list-issues                    # Ten most recent open issues
  github-agent list-issues --state all -n 50  # Up to 50 issues in any state
  github-agent list-issues --json             # Machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gh := newGH(ctx)

			if err := validateListFlags(state, limit, github.IssueStates); err != nil {
				return err
			}

			issues, err := spin(ctx, "Fetching issues...", func() ([]github.Issue, error) {
				return gh.ListIssues(ctx, state, limit)
			})
			if err != nil {
				return err
			}
			if issues == nil {
				issues = []github.Issue{}
			}
			return printListing(ctx, state, "issues", jsonOutput, issues,
				static.IssueHeaders, static.IssueRows(issues))
		},
	}

	addListFlags(cmd, &state, &limit, &jsonOutput, github.IssueStates)

	return cmd
}

// addListFlags registers the flags shared by list-issues and list-prs.
func addListFlags(cmd *cobra.Command, state *string, limit *int, jsonOutput *bool, states []string) {
	cmd.Flags().StringVarP(state, "state", "s", "open", "Filter by state: "+config.FormatOptions(states))
	cmd.Flags().IntVarP(limit, "limit", "n", defaultListLimit, "Maximum number of entries")
	cmd.Flags().BoolVar(jsonOutput, "json", false, "Output as JSON")
	cmd.RegisterFlagCompletionFunc("state", cobra.FixedCompletions(states, cobra.ShellCompDirectiveNoFileComp))
}

func validateListFlags(state string, limit int, states []string) error {
	if state == "" {
		return fmt.Errorf("--state must not be empty: must be %s", config.FormatOptions(states))
	}
	if err := config.ValidateChoice(state, "--state", states); err != nil {
		return err
	}
	if limit < 1 {
		return fmt.Errorf("invalid --limit %d: must be at least 1", limit)
	}
	return nil
}

// printListing prints records as JSON or as a titled table. An empty
// listing prints a notice instead of a table.
func printListing[T any](ctx context.Context, state, noun string, jsonOutput bool, records []T, headers []string, rows [][]string) error {
	out := output.FromContext(ctx)
	if jsonOutput {
		return out.JSON(records)
	}
	if len(records) == 0 {
		log.FromContext(ctx).Warn("No %s %s found", state, noun)
		return nil
	}
	out.Print(static.RenderListing(static.Title(state, noun), headers, rows))
	return nil
}
