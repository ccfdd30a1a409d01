package github

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/agentkit/internal/cmd"
)

// ErrGHNotFound indicates gh CLI is not installed or not in PATH
var ErrGHNotFound = fmt.Errorf("gh not found: please install GitHub CLI (https://cli.github.com)")

// ErrGHNotAuthenticated indicates gh CLI is installed but not authenticated
var ErrGHNotAuthenticated = fmt.Errorf("gh not authenticated: please run 'gh auth login'")

// CheckGH verifies that gh CLI is available in PATH
func CheckGH() error {
	if _, err := exec.LookPath("gh"); err != nil {
		return ErrGHNotFound
	}
	return nil
}

// AuthStatus runs `gh auth status`. The result is returned for relaying;
// a non-zero exit is classified into ErrGHNotAuthenticated (wrapping the
// *cmd.ExitError so the exit code survives).
func (c *Client) AuthStatus(ctx context.Context) (cmd.Result, error) {
	res, err := c.run(ctx, "auth", "status")
	if err == nil {
		return res, nil
	}
	var exitErr *cmd.ExitError
	if !errors.As(err, &exitErr) {
		return res, err
	}
	msg := strings.ToLower(exitErr.Stderr + " " + string(res.Stdout))
	if strings.TrimSpace(msg) == "" || strings.Contains(msg, "not logged") || strings.Contains(msg, "no accounts") {
		return res, fmt.Errorf("%w: %w", ErrGHNotAuthenticated, err)
	}
	return res, fmt.Errorf("gh auth check failed: %w", err)
}

// AuthUser returns the login of the authenticated user.
func (c *Client) AuthUser(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "api", "user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	user := strings.TrimSpace(string(res.Stdout))
	if user == "" {
		return "", fmt.Errorf("gh api user returned no login")
	}
	return user, nil
}
