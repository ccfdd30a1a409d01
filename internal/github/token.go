package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoToken is returned when neither gh nor hosts.yml yields a token.
var ErrNoToken = errors.New("no GitHub token found: run 'gh auth login'")

// Token returns the OAuth token gh uses for the client's host.
// `gh auth token` is tried first; older gh versions lack that command, so
// the hosts.yml files from HostsFiles are read next.
func (c *Client) Token(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "auth", "token", "--hostname", c.host)
	if err == nil {
		if token := strings.TrimSpace(string(res.Stdout)); token != "" {
			return token, nil
		}
	}
	for _, path := range HostsFiles() {
		token, ok, ferr := TokenFromHostsFile(path, c.host)
		if ferr != nil {
			return "", ferr
		}
		if ok {
			return token, nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoToken, err)
	}
	return "", ErrNoToken
}

// HostsFiles lists candidate gh hosts.yml locations in lookup order:
// $GH_CONFIG_DIR, the snap install's config, then ~/.config/gh.
func HostsFiles() []string {
	var paths []string
	if dir := os.Getenv("GH_CONFIG_DIR"); dir != "" {
		paths = append(paths, filepath.Join(dir, "hosts.yml"))
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	snap := filepath.Join(home, "snap", "gh")
	paths = append(paths, filepath.Join(snap, "current", ".config", "gh", "hosts.yml"))
	if entries, err := os.ReadDir(snap); err == nil {
		for _, e := range entries {
			if e.IsDir() && e.Name() != "current" {
				paths = append(paths, filepath.Join(snap, e.Name(), ".config", "gh", "hosts.yml"))
			}
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "gh", "hosts.yml"))
	}
	return append(paths, filepath.Join(home, ".config", "gh", "hosts.yml"))
}

// hostEntry is one host block of gh's hosts.yml.
type hostEntry struct {
	OAuthToken string `yaml:"oauth_token"`
	User       string `yaml:"user"`
}

// TokenFromHostsFile reads the oauth_token for host from a gh hosts.yml.
// A missing file reports ok=false without error.
func TokenFromHostsFile(path, host string) (token string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var hosts map[string]hostEntry
	if err := yaml.Unmarshal(data, &hosts); err != nil {
		return "", false, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	entry, found := hosts[host]
	if !found || entry.OAuthToken == "" {
		return "", false, nil
	}
	return entry.OAuthToken, true, nil
}
