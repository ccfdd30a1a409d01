// Package research gathers web content for a topic or a single URL.
//
// [Agent.ResearchTopic] searches, then fetches and extracts each hit one at
// a time. Hits that cannot be fetched or extracted are recorded in
// [Report.Skipped] and the run continues. [Agent.ResearchURL] extracts one
// page. Both return [*NoResultsError] when nothing usable was produced.
package research

import (
	"context"
	"fmt"

	"github.com/raphi011/agentkit/internal/log"
	"github.com/raphi011/agentkit/internal/research/extract"
	"github.com/raphi011/agentkit/internal/research/fetch"
	"github.com/raphi011/agentkit/internal/research/search"
)

// Searcher returns search hits for a query.
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]search.Result, error)
}

// Fetcher downloads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Extractor turns a page into a Document.
type Extractor interface {
	Extract(page *fetch.Page) (*extract.Document, error)
}

// Entry is one successfully extracted page.
type Entry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Content string `json:"content"` // Markdown
	Text    string `json:"text"`
}

// Skip records a search hit that could not be used.
type Skip struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// Report is the result of a research run. Query is empty for URL runs.
type Report struct {
	Query   string  `json:"query,omitempty"`
	Results []Entry `json:"results"`
	Skipped []Skip  `json:"skipped,omitempty"`
}

// IsURL reports whether the report came from ResearchURL.
func (r *Report) IsURL() bool {
	return r.Query == ""
}

// NoResultsError is returned when a run produced no usable content.
type NoResultsError struct {
	Query string
	URL   string
	Err   error // cause, if any
}

func (e *NoResultsError) Error() string {
	var msg string
	if e.URL != "" {
		msg = fmt.Sprintf("failed to extract content from %s", e.URL)
	} else {
		msg = fmt.Sprintf("no results for %q", e.Query)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NoResultsError) Unwrap() error { return e.Err }

// ProgressFunc is called after each hit is processed.
type ProgressFunc func(done, total int, url string)

// Agent runs research with pluggable collaborators.
type Agent struct {
	searcher  Searcher
	fetcher   Fetcher
	extractor Extractor

	// OnProgress, if set, is called with done=0 once the search returns and
	// again after each search hit is processed.
	OnProgress ProgressFunc
}

// NewAgent creates an Agent.
func NewAgent(s Searcher, f Fetcher, e Extractor) *Agent {
	return &Agent{searcher: s, fetcher: f, extractor: e}
}

// ResearchTopic searches for query and extracts up to maxResults hits in
// search order.
func (a *Agent) ResearchTopic(ctx context.Context, query string, maxResults int) (*Report, error) {
	l := log.FromContext(ctx)
	l.Debug("researching", "query", query, "max", maxResults)

	hits, err := a.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return nil, &NoResultsError{Query: query, Err: err}
	}
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	if len(hits) == 0 {
		return nil, &NoResultsError{Query: query}
	}
	if a.OnProgress != nil {
		a.OnProgress(0, len(hits), "")
	}
	l.Success("Found %d results", len(hits))

	report := &Report{Query: query, Results: []Entry{}}
	for i, hit := range hits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		l.Debug("fetching", "url", hit.URL)
		doc, err := a.get(ctx, hit.URL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.Warn("Could not fetch %s: %v", hit.URL, err)
			report.Skipped = append(report.Skipped, Skip{URL: hit.URL, Reason: err.Error()})
		} else {
			title := hit.Title
			if title == "" {
				title = doc.Title
			}
			report.Results = append(report.Results, Entry{
				Title:   title,
				URL:     hit.URL,
				Snippet: hit.Snippet,
				Content: doc.Markdown,
				Text:    doc.Text,
			})
		}
		if a.OnProgress != nil {
			a.OnProgress(i+1, len(hits), hit.URL)
		}
	}

	if len(report.Results) == 0 {
		return nil, &NoResultsError{Query: query, Err: fmt.Errorf("none of %d results could be fetched", len(hits))}
	}
	l.Success("Successfully extracted %d articles", len(report.Results))
	return report, nil
}

// ResearchURL extracts the content of a single page.
func (a *Agent) ResearchURL(ctx context.Context, url string) (*Report, error) {
	log.FromContext(ctx).Debug("fetching", "url", url)

	doc, err := a.get(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NoResultsError{URL: url, Err: err}
	}
	log.FromContext(ctx).Success("Content extracted successfully")

	return &Report{Results: []Entry{{
		Title:   doc.Title,
		URL:     doc.URL,
		Content: doc.Markdown,
		Text:    doc.Text,
	}}}, nil
}

func (a *Agent) get(ctx context.Context, url string) (*extract.Document, error) {
	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := a.extractor.Extract(page)
	if err != nil {
		return nil, err
	}
	if doc.URL == "" {
		doc.URL = page.URL
	}
	return doc, nil
}
