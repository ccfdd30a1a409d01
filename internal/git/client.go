package git

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/raphi011/agentkit/internal/cmd"
)

// ErrDetachedHead is returned when an operation needs a branch name but
// HEAD is detached.
var ErrDetachedHead = errors.New("HEAD is detached: pass --branch explicitly")

// ErrNoChanges is returned by Commit when there is nothing to commit.
var ErrNoChanges = errors.New("no changes to commit")

// Client runs git in a working directory against one remote.
type Client struct {
	runner cmd.Runner
	dir    string
	remote string
}

// New returns a Client running git in dir (empty = current directory).
// An empty remote means "origin".
func New(runner cmd.Runner, dir, remote string) *Client {
	if runner == nil {
		runner = cmd.Default
	}
	if remote == "" {
		remote = "origin"
	}
	return &Client{runner: runner, dir: dir, remote: remote}
}

// Remote returns the remote name used by pull, push and RemoteURL.
func (c *Client) Remote() string {
	return c.remote
}

func (c *Client) run(ctx context.Context, args ...string) (cmd.Result, error) {
	return c.runner.Run(ctx, c.dir, "git", args...)
}

func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	res, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// IsRepo reports whether the working directory is inside a git work tree.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// TopLevel returns the root of the work tree.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return out, nil
}

// HasCommits reports whether HEAD points at a commit.
func (c *Client) HasCommits(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--verify", "HEAD")
	return err == nil
}

// CurrentBranch returns the checked-out branch name.
// Returns ErrDetachedHead when HEAD is detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := c.output(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %w", err)
	}
	if branch == "" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// RemoteURL returns the URL of the configured remote.
func (c *Client) RemoteURL(ctx context.Context) (string, error) {
	url, err := c.output(ctx, "remote", "get-url", c.remote)
	if err != nil {
		return "", fmt.Errorf("no %s remote: %w", c.remote, err)
	}
	return url, nil
}

// StatusShort returns `git status --short`, untrimmed lines joined by newlines.
func (c *Client) StatusShort(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "status", "--short")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(res.Stdout), "\n"), nil
}

// HasChanges reports whether the work tree has staged, unstaged or
// untracked changes.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	out, err := c.output(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// RecentCommits returns the last n commits in --oneline form.
func (c *Client) RecentCommits(ctx context.Context, n int) (string, error) {
	return c.output(ctx, "log", "--oneline", "-"+strconv.Itoa(n))
}

// branchOrCurrent returns branch, or the current branch if branch is empty.
func (c *Client) branchOrCurrent(ctx context.Context, branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	return c.CurrentBranch(ctx)
}

// Pull runs `git pull <remote> <branch>`. An empty branch pulls the
// current branch.
func (c *Client) Pull(ctx context.Context, branch string) (cmd.Result, error) {
	branch, err := c.branchOrCurrent(ctx, branch)
	if err != nil {
		return cmd.Result{ExitCode: 1}, err
	}
	return c.run(ctx, "pull", c.remote, branch)
}

// Push runs `git push <remote> <branch> [--force]`. An empty branch pushes
// the current branch.
func (c *Client) Push(ctx context.Context, branch string, force bool) (cmd.Result, error) {
	branch, err := c.branchOrCurrent(ctx, branch)
	if err != nil {
		return cmd.Result{ExitCode: 1}, err
	}
	args := []string{"push", c.remote, branch}
	if force {
		args = append(args, "--force")
	}
	return c.run(ctx, args...)
}

// AddAll stages every change in the work tree.
func (c *Client) AddAll(ctx context.Context) error {
	_, err := c.run(ctx, "add", ".")
	return err
}

// Commit records staged changes with message. A commit that fails
// because nothing is staged returns ErrNoChanges wrapping the git error.
func (c *Client) Commit(ctx context.Context, message string) (cmd.Result, error) {
	res, err := c.run(ctx, "commit", "-m", message)
	if err != nil && isNothingToCommit(res) {
		return res, fmt.Errorf("%w: %w", ErrNoChanges, err)
	}
	return res, err
}

func isNothingToCommit(res cmd.Result) bool {
	out := string(res.Stdout) + string(res.Stderr)
	return strings.Contains(out, "nothing to commit") || strings.Contains(out, "no changes added to commit")
}

// Init creates a repository in the working directory.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init")
	return err
}

// SetRemoteURL points the configured remote at url.
func (c *Client) SetRemoteURL(ctx context.Context, url string) error {
	_, err := c.run(ctx, "remote", "set-url", c.remote, url)
	return err
}

// GlobalConfigAll returns every value of key in the user's global git
// config. An unset key returns no values and no error.
func (c *Client) GlobalConfigAll(ctx context.Context, key string) ([]string, error) {
	res, err := c.run(ctx, "config", "--global", "--get-all", key)
	if err != nil {
		// git config exits 1 when the key is not set
		if cmd.ExitCode(err) == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read git config %s: %w", key, err)
	}
	var values []string
	for _, line := range strings.Split(string(res.Stdout), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			values = append(values, line)
		}
	}
	return values, nil
}

// AddGlobalConfig appends value to key in the user's global git config.
func (c *Client) AddGlobalConfig(ctx context.Context, key, value string) error {
	if _, err := c.run(ctx, "config", "--global", "--add", key, value); err != nil {
		return fmt.Errorf("failed to set git config %s: %w", key, err)
	}
	return nil
}
