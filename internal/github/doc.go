// Package github wraps the gh CLI for repository, issue, pull request and
// authentication operations.
//
// Listing operations request --json output and decode it into [Issue] and
// [PullRequest]; mutating operations return the captured [cmd.Result] so
// the caller can relay gh's own output and exit code.
//
// [Client.Token] reads the token from `gh auth token`, falling back to the
// oauth_token entry in gh's hosts.yml for older gh versions.
package github
