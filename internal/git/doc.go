// Package git provides the git operations used by github-agent.
//
// Every call goes through a [cmd.Runner] so tests can script git's
// responses. The git CLI is used directly rather than a Go git library,
// which keeps the user's credential helpers, SSH keys and config in play.
//
// # Queries
//
// Read-only probes that never change the repository:
//
//   - [Client.IsRepo], [Client.HasCommits]: repository state
//   - [Client.CurrentBranch], [Client.RemoteURL]: branch and remote
//   - [Client.StatusShort], [Client.HasChanges], [Client.RecentCommits]
//
// # Mutations
//
// [Client.Pull], [Client.Push], [Client.AddAll], [Client.Commit],
// [Client.Init] and [Client.SetRemoteURL] return the captured
// [cmd.Result] (where output matters) so callers can relay it verbatim.
//
// # Remote URLs
//
// [ParseRemote] splits HTTPS, scp-style SSH and ssh:// remotes into host,
// owner and repository name.
package git
