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

	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
	"github.com/raphi011/agentkit/internal/research"
	"github.com/raphi011/agentkit/internal/research/format"
)

// exitInterrupted is the exit code after SIGINT/SIGTERM.
const exitInterrupted = 130

type options struct {
	url        string
	output     string
	format     string
	maxResults int
	copy       bool
	verbose    bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "research [query]",
		Short: "Search the web or extract a page as Markdown, JSON or text",
		Long: `research searches the web for a topic and extracts the text of the top
results, or extracts a single page with --url.

Markdown printed to a terminal is rendered with styling; output written
with -o or piped to another program is left raw.`,
		Example: `  research "go generics tutorial"                # Top 5 results as Markdown
  research "rust async" --max-results 3 -o out.md  # Save to a file
  research --url https://go.dev/doc/effective_go   # Extract one page
  research "sqlite wal" --format json | jq .       # JSON for scripting`,
		Args:                       cobra.ArbitraryArgs,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if err := resolveOptions(cmd, query, &opts); err != nil {
				return err
			}
			return runResearch(cmd, query, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Extract content from a specific URL instead of searching")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save results to a file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: "+config.FormatOptions(format.Formats)+" (default from config: markdown)")
	cmd.Flags().IntVarP(&opts.maxResults, "max-results", "n", 0, "Maximum number of search results to process (default from config: 5)")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Also copy the output to the clipboard")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show detailed progress information")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagFilename("output")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(format.Formats, cobra.ShellCompDirectiveNoFileComp))

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// setup attaches the logger, printer and config to the command context.
func setup(cmd *cobra.Command, opts options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Create logger (stderr for diagnostics)
	l := log.New(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
	ctx = log.WithLogger(ctx, l)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, cmd.OutOrStdout())

	loaded, err := config.Load()
	if err != nil {
		l.Warn("Warning: %v (using defaults)", err)
	}
	ctx = config.WithConfig(ctx, &loaded)

	cmd.SetContext(ctx)
	return nil
}

// resolveOptions checks the query/--url combination and fills unset flags
// from the config.
func resolveOptions(cmd *cobra.Command, query string, opts *options) error {
	switch {
	case query == "" && opts.url == "":
		return errors.New("either a query or --url must be provided")
	case query != "" && opts.url != "":
		return errors.New("cannot specify both a query and --url")
	}

	cfg := config.FromContext(cmd.Context())
	if !cmd.Flags().Changed("format") {
		opts.format = cfg.Research.Format
	}
	if err := config.ValidateChoice(opts.format, "--format", format.Formats); err != nil {
		return err
	}
	if !cmd.Flags().Changed("max-results") {
		opts.maxResults = cfg.Research.MaxResults
	}
	if opts.maxResults < 1 {
		return fmt.Errorf("invalid --max-results %d: must be at least 1", opts.maxResults)
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

	log.New(stderr, false, false).Error("Error: %v", err)
	var noResults *research.NoResultsError
	if !errors.As(err, &noResults) {
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Run 'research -h' for help")
	}
	return 1
}
