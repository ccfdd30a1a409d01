package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/log"
)

// ErrPushWithoutRepo is returned by CreateRepo when --push is requested
// outside a git repository.
var ErrPushWithoutRepo = errors.New("--push requires an existing git repository: run 'git init' and commit first")

// ErrPushWithoutCommits is returned by CreateRepo when --push is requested
// in a repository that has no commits yet.
var ErrPushWithoutCommits = errors.New("--push requires at least one commit: commit your changes first")

// CreateRepoOptions configures `gh repo create`.
type CreateRepoOptions struct {
	Name        string
	Description string
	Private     bool
	Push        bool
}

// CreateRepoResult reports what CreateRepo did.
type CreateRepoResult struct {
	Initialized bool // git init was run first
	Result      cmd.Result
}

// CreateRepo creates a GitHub repository from the working directory.
//
// Without Push, a missing repository is initialized first. With Push, the
// working directory must already be a repository with at least one commit;
// otherwise gh is never invoked.
func (c *Client) CreateRepo(ctx context.Context, repo *git.Client, opts CreateRepoOptions) (CreateRepoResult, error) {
	var out CreateRepoResult
	if opts.Name == "" {
		return out, fmt.Errorf("repository name is required")
	}

	isRepo := repo.IsRepo(ctx)
	if opts.Push {
		if !isRepo {
			return out, ErrPushWithoutRepo
		}
		if !repo.HasCommits(ctx) {
			return out, ErrPushWithoutCommits
		}
	}
	if !isRepo {
		log.FromContext(ctx).Warn("Not a git repository. Initializing...")
		if err := repo.Init(ctx); err != nil {
			return out, fmt.Errorf("git init failed: %w", err)
		}
		out.Initialized = true
	}

	visibility := "--public"
	if opts.Private {
		visibility = "--private"
	}
	args := []string{"repo", "create", opts.Name, visibility, "--source", "."}
	if opts.Description != "" {
		args = append(args, "--description", opts.Description)
	}
	if opts.Push {
		args = append(args, "--push")
	}

	res, err := c.run(ctx, args...)
	out.Result = res
	return out, err
}

// RepoURL returns the web URL of owner/name on the client's host.
func (c *Client) RepoURL(owner, name string) string {
	return fmt.Sprintf("https://%s/%s/%s", c.host, owner, name)
}
