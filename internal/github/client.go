package github

import (
	"context"

	"github.com/raphi011/agentkit/internal/cmd"
)

// Client runs gh in a working directory.
type Client struct {
	runner cmd.Runner
	dir    string
	host   string
}

// New returns a Client running gh in dir (empty = current directory) for
// host. An empty host means github.com.
func New(runner cmd.Runner, dir, host string) *Client {
	if runner == nil {
		runner = cmd.Default
	}
	if host == "" {
		host = "github.com"
	}
	return &Client{runner: runner, dir: dir, host: host}
}

// Host returns the GitHub host the client talks to.
func (c *Client) Host() string {
	return c.host
}

func (c *Client) run(ctx context.Context, args ...string) (cmd.Result, error) {
	return c.runner.Run(ctx, c.dir, "gh", args...)
}
