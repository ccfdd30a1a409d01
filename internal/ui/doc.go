// Package ui groups the terminal components shared by the agentkit CLIs.
//
// Subpackages:
//
//   - static: non-interactive tables for issue and pull request listings
//   - progress: spinner and progress bar drawn on stderr while work runs
//   - prompt: yes/no confirmation
//   - styles: shared lipgloss colors and styles
//
// Everything interactive renders to stderr and only when stderr is a
// terminal, so stdout stays clean for pipes and redirects.
package ui
