package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	proc "github.com/raphi011/agentkit/internal/cmd"
	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/git"
	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// runner executes git and gh for every command.
	runner proc.Runner = proc.Default

	// toolChecks verify that the external tools a command needs are installed.
	toolChecks = map[string]func() error{
		"git": git.CheckGit,
		"gh":  github.CheckGH,
	}
)

// Command group IDs for organizing help output
const (
	GroupGit     = "git"
	GroupGitHub  = "github"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// annotationTools lists the external tools a command shells out to.
const annotationTools = "tools"

// exitInterrupted is the exit code after SIGINT/SIGTERM.
const exitInterrupted = 130

func requires(tools ...string) map[string]string {
	return map[string]string{annotationTools: strings.Join(tools, " ")}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "github-agent",
		Short: "Automate git and GitHub operations",
		Long: `github-agent wraps git and the GitHub CLI (gh) for everyday repository work.

Each command runs one git or gh invocation in the current directory and
relays its output and exit status. sync and fix-creds chain several steps
and stop at the first failure.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE:          setup,
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupGit, Title: "Git Commands:"},
		&cobra.Group{ID: GroupGitHub, Title: "GitHub Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Git commands
	root.AddCommand(newStatusCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newSyncCmd())

	// GitHub commands
	root.AddCommand(newCreateRepoCmd())
	root.AddCommand(newCreateIssueCmd())
	root.AddCommand(newListIssuesCmd())
	root.AddCommand(newCreatePRCmd())
	root.AddCommand(newListPRsCmd())

	// Utility commands
	root.AddCommand(newCheckAuthCmd())
	root.AddCommand(newFixCredsCmd())

	// Config commands
	root.AddCommand(newConfigCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// setup runs after flag parsing: it attaches the logger, printer and
// effective config to the command context and checks required tools.
func setup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Create logger (stderr for diagnostics)
	l := log.New(cmd.ErrOrStderr(), verbose, quiet)
	ctx = log.WithLogger(ctx, l)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, cmd.OutOrStdout())

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	ctx = config.WithWorkDir(ctx, workDir)

	loaded, err := config.Load()
	if err != nil {
		l.Warn("Warning: %v (using defaults)", err)
	}
	cfg := &loaded
	ctx = config.WithConfig(ctx, cfg)
	cmd.SetContext(ctx)

	// Skip tool checks for completion and help commands
	if cmd.Name() == "completion" || cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == "help" {
		return nil
	}

	tools := strings.Fields(cmd.Annotations[annotationTools])
	for _, tool := range tools {
		if check := toolChecks[tool]; check != nil {
			if err := check(); err != nil {
				return err
			}
		}
	}

	// Per-repo overrides apply once we know git is available.
	if strings.Contains(cmd.Annotations[annotationTools], "git") {
		top, err := git.New(runner, workDir, "").TopLevel(ctx)
		if err == nil && top != "" {
			repoCfg, err := config.ForRepo(cfg, top)
			if err != nil {
				l.Warn("Warning: failed to load local config: %v (using global config)", err)
			} else {
				cmd.SetContext(config.WithConfig(ctx, repoCfg))
			}
		}
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return execute(ctx, newRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, root *cobra.Command, args []string) int {
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	stderr := root.ErrOrStderr()
	if ctx.Err() != nil {
		fmt.Fprintln(stderr)
		log.New(stderr, false, false).Warn("Operation cancelled")
		return exitInterrupted
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		log.New(stderr, false, false).Error("Error: %v", err)
		var exitErr *proc.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(stderr)
			fmt.Fprintln(stderr, "Run 'github-agent -h' for help")
		}
	}
	return exitCode(err)
}

// exitCode maps err to a process exit status: the code of the failing
// subprocess when there is one, 1 otherwise.
func exitCode(err error) int {
	if code := proc.ExitCode(err); code > 0 {
		return code
	}
	if err != nil {
		return 1
	}
	return 0
}

// reportedError marks an error whose details were already written to
// stderr, so Execute only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }
