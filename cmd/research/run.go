package main

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/output"
	"github.com/raphi011/agentkit/internal/research"
	"github.com/raphi011/agentkit/internal/research/extract"
	"github.com/raphi011/agentkit/internal/research/fetch"
	"github.com/raphi011/agentkit/internal/research/format"
	"github.com/raphi011/agentkit/internal/research/search"
	"github.com/raphi011/agentkit/internal/storage"
	"github.com/raphi011/agentkit/internal/ui/progress"
)

var clipboardWriteAll = clipboard.WriteAll

// isTerminal reports whether w is a terminal. Tests replace it.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func newAgent(cfg *config.Config) *research.Agent {
	rc := cfg.Research
	return research.NewAgent(
		search.New(rc.SearchURL, rc.UserAgent, rc.SearchTimeout.Duration),
		fetch.New(rc.UserAgent, rc.FetchTimeout.Duration),
		extract.New(),
	)
}

func runResearch(cmd *cobra.Command, query string, opts options) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	agent := newAgent(cfg)
	var (
		report *research.Report
		err    error
	)
	if opts.url != "" {
		report, err = researchURL(ctx, agent, opts.url)
	} else {
		report, err = researchTopic(ctx, agent, query, opts.maxResults)
	}
	if err != nil {
		return err
	}

	rendered, err := format.Render(report, opts.format, format.Options{
		MarkdownLimit: cfg.Research.MarkdownLimit,
		TextLimit:     cfg.Research.TextLimit,
	})
	if err != nil {
		return err
	}

	if opts.output != "" {
		path, err := config.ExpandPath(opts.output)
		if err != nil {
			return err
		}
		if err := storage.WriteAtomic(path, []byte(rendered), 0o644); err != nil {
			return err
		}
		l.Success("Results saved to %s", path)
	} else {
		printReport(ctx, cmd.OutOrStdout(), rendered, opts.format)
	}

	if opts.copy {
		if err := clipboardWriteAll(rendered); err != nil {
			l.Warn("Could not copy to clipboard: %v", err)
		} else {
			l.Success("Copied to clipboard")
		}
	}
	return nil
}

// printReport prints rendered output. Markdown going to a terminal is
// styled with glamour; everything else is printed as is.
func printReport(ctx context.Context, w io.Writer, rendered, outFormat string) {
	out := output.FromContext(ctx)
	if outFormat != format.Markdown || !isTerminal(w) {
		out.Print(ensureNewline(rendered))
		return
	}
	styled, err := glamour.Render(rendered, "auto")
	if err != nil {
		log.FromContext(ctx).Debug("markdown rendering failed", "err", err)
		out.Print(ensureNewline(rendered))
		return
	}
	out.Print(styled)
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}

// showProgress reports whether spinners and progress bars should be drawn.
func showProgress(l *log.Logger) bool {
	return !l.IsVerbose() && !l.IsQuiet() && progress.Enabled()
}

func researchURL(ctx context.Context, agent *research.Agent, url string) (*research.Report, error) {
	l := log.FromContext(ctx)
	l.Info("Fetching content from: %s", url)

	if showProgress(l) {
		sp := progress.NewSpinner("Fetching " + url)
		sp.Start()
		defer sp.Stop()
	}
	return agent.ResearchURL(ctx, url)
}

func researchTopic(ctx context.Context, agent *research.Agent, query string, maxResults int) (*research.Report, error) {
	l := log.FromContext(ctx)
	l.Info("Searching for: %s", query)

	if !showProgress(l) {
		return agent.ResearchTopic(ctx, query, maxResults)
	}

	sp := progress.NewSpinner("Searching...")
	sp.Start()
	defer sp.Stop()

	var bar *progress.ProgressBar
	agent.OnProgress = func(done, total int, url string) {
		if bar == nil {
			sp.Stop()
			bar = progress.NewProgressBar(total, "Fetching results...")
			bar.Start()
			return
		}
		bar.SetProgress(done, url)
	}
	defer func() {
		if bar != nil {
			bar.Stop()
		}
	}()

	return agent.ResearchTopic(ctx, query, maxResults)
}
