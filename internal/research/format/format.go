// Package format renders research reports as Markdown, JSON or plain text.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raphi011/agentkit/internal/config"
	"github.com/raphi011/agentkit/internal/research"
)

// Output formats.
const (
	Markdown = "markdown"
	JSON     = "json"
	Text     = "text"
)

// Formats lists the supported output formats.
var Formats = []string{Markdown, JSON, Text}

// Options controls per-entry truncation in topic reports.
// A limit of 0 disables truncation.
type Options struct {
	MarkdownLimit int
	TextLimit     int
}

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

// Render formats r. Output is deterministic for a given report.
func Render(r *research.Report, format string, opts Options) (string, error) {
	switch format {
	case Markdown:
		return renderMarkdown(r, opts), nil
	case JSON:
		return renderJSON(r)
	case Text:
		return renderText(r, opts), nil
	default:
		return "", fmt.Errorf("unknown format %q: must be %s", format, config.FormatOptions(Formats))
	}
}

func renderMarkdown(r *research.Report, opts Options) string {
	var parts []string
	if r.IsURL() {
		e := first(r)
		parts = append(parts,
			"# "+e.Title+"\n",
			"**URL:** "+e.URL+"\n",
			"\n---\n",
			e.Content,
		)
		return strings.Join(parts, "\n")
	}

	parts = append(parts,
		"# Research: "+r.Query+"\n",
		"*Generated by agentkit research*\n",
		fmt.Sprintf("*Found %d results*\n", len(r.Results)),
		"---\n",
	)
	for i, e := range r.Results {
		parts = append(parts,
			fmt.Sprintf("## %d. %s\n", i+1, e.Title),
			"**URL:** "+e.URL+"\n",
			"**Summary:** "+e.Snippet+"\n",
			"\n### Content\n",
			truncate(e.Content, opts.MarkdownLimit, "\n\n*[Content truncated...]*"),
			"\n---\n",
		)
	}
	return strings.Join(parts, "\n")
}

func renderText(r *research.Report, opts Options) string {
	var parts []string
	if r.IsURL() {
		e := first(r)
		parts = append(parts,
			e.Title+"\n",
			"URL: "+e.URL+"\n",
			heavyRule+"\n",
			e.Text,
		)
		return strings.Join(parts, "\n")
	}

	parts = append(parts,
		"Research: "+r.Query+"\n",
		fmt.Sprintf("Found %d results\n", len(r.Results)),
		heavyRule+"\n",
	)
	for i, e := range r.Results {
		parts = append(parts,
			fmt.Sprintf("\n%d. %s\n", i+1, e.Title),
			"URL: "+e.URL+"\n",
			"Summary: "+e.Snippet+"\n",
			"\nContent:\n",
			truncate(e.Text, opts.TextLimit, "\n[Content truncated...]"),
			"\n"+lightRule+"\n",
		)
	}
	return strings.Join(parts, "\n")
}

func renderJSON(r *research.Report) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.String(), nil
}

func first(r *research.Report) research.Entry {
	if len(r.Results) == 0 {
		return research.Entry{}
	}
	return r.Results[0]
}

// truncate cuts s to limit runes and appends marker when it was longer.
func truncate(s string, limit int, marker string) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + marker
}
