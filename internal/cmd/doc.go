// Package cmd runs external commands (git, gh) behind a small interface.
//
// [Runner] is the seam between the CLI workflows and the processes they
// start. [ExecRunner] runs real processes through [os/exec] and captures
// stdout and stderr; tests substitute a scripted runner so that ordering
// and failure propagation can be checked without git or gh installed.
//
// # Usage
//
//	res, err := cmd.Default.Run(ctx, repoDir, "git", "status", "--short")
//	var exitErr *cmd.ExitError
//	if errors.As(err, &exitErr) {
//	    // exitErr.Code mirrors the process exit status,
//	    // exitErr.Error() is its trimmed stderr
//	}
//
// # Design Notes
//
// agentkit shells out to the git/gh CLIs rather than using Go libraries.
// This keeps user configuration (SSH keys, credential helpers, gh auth)
// in effect for every operation.
package cmd
