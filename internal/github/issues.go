package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/raphi011/agentkit/internal/cmd"
)

// IssueStates are the values accepted by `gh issue list --state`.
var IssueStates = []string{"open", "closed", "all"}

// Label is an issue label as returned by gh --json.
type Label struct {
	Name string `json:"name"`
}

// Issue is one entry of `gh issue list --json number,title,state,labels,createdAt`.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Labels    []Label   `json:"labels"`
	CreatedAt time.Time `json:"createdAt"`
}

// LabelNames returns the label names joined by ", ".
func (i Issue) LabelNames() string {
	names := make([]string, len(i.Labels))
	for n, l := range i.Labels {
		names[n] = l.Name
	}
	return strings.Join(names, ", ")
}

// CreateIssueOptions configures `gh issue create`.
type CreateIssueOptions struct {
	Title  string
	Body   string
	Labels []string
}

// CreateIssue runs `gh issue create --title T --body B [--label L1,L2]`.
// --body is always passed, even empty: gh refuses to run without it when
// it is not attached to a terminal.
func (c *Client) CreateIssue(ctx context.Context, opts CreateIssueOptions) (cmd.Result, error) {
	args := []string{"issue", "create", "--title", opts.Title, "--body", opts.Body}
	if len(opts.Labels) > 0 {
		args = append(args, "--label", strings.Join(opts.Labels, ","))
	}
	return c.run(ctx, args...)
}

// ListIssues returns up to limit issues in state.
func (c *Client) ListIssues(ctx context.Context, state string, limit int) ([]Issue, error) {
	res, err := c.run(ctx, "issue", "list",
		"--state", state,
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,state,labels,createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues: %w", err)
	}

	var issues []Issue
	if err := json.Unmarshal(res.Stdout, &issues); err != nil {
		return nil, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return issues, nil
}
