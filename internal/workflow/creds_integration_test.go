//go:build integration

package workflow

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/cmd/cmdtest"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/github"
)

// isolateGitConfig points git's global config at an empty file in a temp
// HOME and disables the system config.
func isolateGitConfig(t *testing.T) (home string) {
	t.Helper()
	home, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")
	return home
}

func gitOutput(t *testing.T, dir string, stdin string, args ...string) string {
	t.Helper()
	c := exec.Command("git", args...)
	c.Dir = dir
	c.Stdin = strings.NewReader(stdin)
	out, err := c.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return string(out)
}

func TestIntegration_FixCredsMakesGitUseTheStore(t *testing.T) {
	// Cannot use t.Parallel(): t.Setenv mutates process env
	home := isolateGitConfig(t)
	repo := filepath.Join(home, "hello")
	if err := os.Mkdir(repo, 0o755); err != nil {
		t.Fatal(err)
	}
	gitOutput(t, repo, "", "init", "-b", "main")
	gitOutput(t, repo, "", "remote", "add", "origin", "git@github.com:octocat/hello.git")

	path := filepath.Join(home, ".git-credentials")
	gh := cmdtest.New().
		On("gh api user --jq .login", cmdtest.Response{Stdout: "octocat\n"}).
		On("gh auth token", cmdtest.Response{Stdout: "gho_secret\n"})

	report, err := FixCreds(context.Background(), github.New(gh, repo, "github.com"), git.New(cmd.Default, repo, ""), FixCredsOptions{CredentialsFile: path})
	if err != nil {
		t.Fatalf("FixCreds() error = %v", err)
	}
	if report.HelperAdded == "" {
		t.Error("HelperAdded is empty on a fresh git config")
	}

	if got := strings.TrimSpace(gitOutput(t, repo, "", "remote", "get-url", "origin")); got != "https://octocat@github.com/octocat/hello.git" {
		t.Errorf("origin = %q", got)
	}

	// git must now answer credential requests for the host from the store.
	filled := gitOutput(t, repo, "protocol=https\nhost=github.com\nusername=octocat\n\n", "credential", "fill")
	if !strings.Contains(filled, "password=gho_secret") {
		t.Errorf("git credential fill did not use the store:\n%s", filled)
	}

	// Running again leaves a single helper entry.
	if _, err := FixCreds(context.Background(), github.New(gh, repo, "github.com"), git.New(cmd.Default, repo, ""), FixCredsOptions{CredentialsFile: path}); err != nil {
		t.Fatalf("second FixCreds() error = %v", err)
	}
	helpers := strings.Split(strings.TrimSpace(gitOutput(t, repo, "", "config", "--global", "--get-all", "credential.https://github.com.helper")), "\n")
	if len(helpers) != 1 {
		t.Errorf("helpers = %q, want exactly one", helpers)
	}
}
