// Package workflow implements the multi-step github-agent operations.
//
// [Sync] runs pull, commit and push in order and stops at the first
// failing stage. [FixCreds] copies the gh token into git's credential
// store and rewrites the remote URL. Neither rolls back completed steps:
// the returned report records exactly what was done.
package workflow
