package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/raphi011/agentkit/internal/cmd"
)

// PRStates are the values accepted by `gh pr list --state`.
var PRStates = []string{"open", "closed", "merged", "all"}

// PullRequest is one entry of `gh pr list --json number,title,state,headRefName,createdAt`.
type PullRequest struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	State       string    `json:"state"` // OPEN, MERGED, CLOSED
	HeadRefName string    `json:"headRefName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreatePROptions configures `gh pr create`.
type CreatePROptions struct {
	Title string
	Body  string
	Base  string
}

// CreatePR runs `gh pr create --title T --base B --body B`. --body is
// always passed for the same reason as in CreateIssue.
func (c *Client) CreatePR(ctx context.Context, opts CreatePROptions) (cmd.Result, error) {
	if opts.Base == "" {
		return cmd.Result{ExitCode: 1}, fmt.Errorf("base branch is required")
	}
	return c.run(ctx, "pr", "create", "--title", opts.Title, "--base", opts.Base, "--body", opts.Body)
}

// ListPRs returns up to limit pull requests in state.
func (c *Client) ListPRs(ctx context.Context, state string, limit int) ([]PullRequest, error) {
	res, err := c.run(ctx, "pr", "list",
		"--state", state,
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,state,headRefName,createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	var prs []PullRequest
	if err := json.Unmarshal(res.Stdout, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return prs, nil
}
