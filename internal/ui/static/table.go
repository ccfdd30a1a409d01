// Package static provides non-interactive terminal output components.
//
// This package renders the issue and pull request tables printed by
// github-agent's list commands.
package static

import (
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/raphi011/agentkit/internal/github"
	"github.com/raphi011/agentkit/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			if col == 0 {
				return styles.AccentStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// Title returns the heading for a listing, e.g. Title("open", "issues")
// is "Open Issues".
func Title(state, noun string) string {
	return cases.Title(language.English).String(state + " " + noun)
}

// IssueHeaders are the columns of the issue table.
var IssueHeaders = []string{"#", "TITLE", "LABELS", "CREATED"}

// IssueRows converts issues to table rows.
func IssueRows(issues []github.Issue) [][]string {
	rows := make([][]string, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, []string{
			strconv.Itoa(i.Number),
			i.Title,
			i.LabelNames(),
			date(i.CreatedAt),
		})
	}
	return rows
}

// PRHeaders are the columns of the pull request table.
var PRHeaders = []string{"#", "TITLE", "BRANCH", "CREATED"}

// PRRows converts pull requests to table rows.
func PRRows(prs []github.PullRequest) [][]string {
	rows := make([][]string, 0, len(prs))
	for _, pr := range prs {
		rows = append(rows, []string{
			strconv.Itoa(pr.Number),
			pr.Title,
			pr.HeadRefName,
			date(pr.CreatedAt),
		})
	}
	return rows
}

// RenderListing renders a titled table, e.g. "Open Issues" above the rows.
func RenderListing(title string, headers []string, rows [][]string) string {
	return styles.TitleStyle.Render(title) + "\n\n" + RenderTable(headers, rows)
}

// date formats t as YYYY-MM-DD, or "" for the zero time.
func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
