package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/agentkit/internal/credstore"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
)

// FixCredsOptions configures FixCreds.
type FixCredsOptions struct {
	CredentialsFile    string // expanded path of the git-credentials store
	EmbedTokenInRemote bool   // put the token in the remote URL too
}

// CredsReport records what FixCreds did.
type CredsReport struct {
	User               string
	Host               string
	CredentialsFile    string
	CredentialsChanged bool
	HelperAdded        string // credential helper added to the global git config, empty if one was already set
	RemoteURL          string // new remote URL without the token, empty if not rewritten
	TokenInRemote      bool   // the token was embedded in the remote URL
	RemoteSkipped      string // reason the remote was left alone
}

// FixCreds copies the gh token into the git credential store, makes git
// read that store for the host, and points the remote at an HTTPS URL for
// the same host.
//
// Steps run in order: read-token, write-credentials, rewrite-remote. A
// failure returns *CredentialStepError and aborts the remaining steps.
// Completed steps are not undone.
func FixCreds(ctx context.Context, gh *github.Client, repo *git.Client, opts FixCredsOptions) (*CredsReport, error) {
	l := log.FromContext(ctx)
	host := gh.Host()
	report := &CredsReport{Host: host, CredentialsFile: opts.CredentialsFile}

	l.Info("Reading GitHub token...")
	user, token, err := readToken(ctx, gh)
	if err != nil {
		return report, &CredentialStepError{Step: StepReadToken, Err: err}
	}
	report.User = user

	l.Info("Updating git credentials...")
	changed, err := writeCredentials(opts.CredentialsFile, credstore.Entry{Scheme: "https", User: user, Token: token, Host: host})
	if err != nil {
		return report, &CredentialStepError{Step: StepWriteCredentials, Err: err}
	}
	report.CredentialsChanged = changed

	helper, err := ensureStoreHelper(ctx, repo, host, opts.CredentialsFile)
	if err != nil {
		return report, &CredentialStepError{Step: StepWriteCredentials, Err: err, CredentialsChanged: changed}
	}
	report.HelperAdded = helper

	if !repo.IsRepo(ctx) {
		report.RemoteSkipped = "not a git repository"
		return report, nil
	}
	current, err := repo.RemoteURL(ctx)
	if err != nil {
		report.RemoteSkipped = fmt.Sprintf("no %s remote", repo.Remote())
		return report, nil
	}
	remote, ok := git.ParseRemote(current)
	if !ok || remote.Host != host {
		report.RemoteSkipped = fmt.Sprintf("%s remote does not point at %s", repo.Remote(), host)
		return report, nil
	}

	l.Info("Updating remote URL...")
	embedded := ""
	if opts.EmbedTokenInRemote {
		embedded = token
	}
	if err := repo.SetRemoteURL(ctx, remote.HTTPSURL(user, embedded)); err != nil {
		return report, &CredentialStepError{Step: StepRewriteRemote, Err: err, CredentialsChanged: changed}
	}
	report.RemoteURL = remote.HTTPSURL(user, "")
	report.TokenInRemote = opts.EmbedTokenInRemote
	return report, nil
}

func readToken(ctx context.Context, gh *github.Client) (user, token string, err error) {
	if _, err := gh.AuthStatus(ctx); err != nil {
		return "", "", err
	}
	if user, err = gh.AuthUser(ctx); err != nil {
		return "", "", err
	}
	if token, err = gh.Token(ctx); err != nil {
		return "", "", err
	}
	return user, token, nil
}

func writeCredentials(path string, e credstore.Entry) (bool, error) {
	if path == "" {
		return false, fmt.Errorf("no credentials file configured")
	}
	store, err := credstore.Load(path)
	if err != nil {
		return false, err
	}
	if !store.Upsert(e) {
		return false, nil
	}
	return true, store.Save(path)
}

// ensureStoreHelper registers `store --file path` as a credential helper
// for https://host in the global git config unless it already is. Other
// helpers are kept and are asked first. Returns the added helper, or ""
// when nothing changed.
func ensureStoreHelper(ctx context.Context, repo *git.Client, host, path string) (string, error) {
	key := "credential.https://" + host + ".helper"
	helper := "store --file " + shellQuote(path)
	have, err := repo.GlobalConfigAll(ctx, key)
	if err != nil {
		return "", err
	}
	if slices.Contains(have, helper) {
		return "", nil
	}
	if err := repo.AddGlobalConfig(ctx, key, helper); err != nil {
		return "", err
	}
	return helper, nil
}

// shellQuote quotes s for the shell git runs credential helpers through.
func shellQuote(s string) string {
	safe := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("/._-+@:", r))
	}) < 0
	if safe && s != "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
