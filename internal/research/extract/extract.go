// Package extract pulls the title, Markdown and plain text out of an HTML
// page.
//
// Boilerplate elements are removed first, then the main content is taken
// from the first <main>, else <article>, else <body>.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/raphi011/agentkit/internal/research/fetch"
)

// ErrNoContent is returned when a page has no main, article or body
// element, or when that element holds no text once boilerplate is removed.
var ErrNoContent = errors.New("no main content found")

// boilerplate lists elements removed before extraction.
var boilerplate = []string{
	"script", "style", "nav", "footer", "header", "aside", "noscript", "iframe", "svg",
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Document is the extracted content of a page.
type Document struct {
	Title    string
	URL      string
	Markdown string
	Text     string
}

// Extractor converts fetched pages into Documents.
type Extractor struct {
	conv *md.Converter
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{conv: md.NewConverter("", true, nil)}
}

// Extract parses page and returns its title, Markdown and text.
func (e *Extractor) Extract(page *fetch.Page) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page.Body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(strings.Join(boilerplate, ",")).Remove()

	main := mainContent(doc)
	if main == nil {
		return nil, ErrNoContent
	}
	main.Find("img, picture").Remove()

	text := textLines(main)
	if text == "" {
		return nil, ErrNoContent
	}

	mainHTML, err := goquery.OuterHtml(main)
	if err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}
	markdown, err := e.conv.ConvertString(mainHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to markdown: %w", err)
	}

	return &Document{
		Title:    title,
		URL:      page.URL,
		Markdown: cleanMarkdown(markdown),
		Text:     text,
	}, nil
}

func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// cleanMarkdown collapses runs of blank lines and trims trailing whitespace.
func cleanMarkdown(s string) string {
	s = blankLines.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// textLines returns every non-empty text node under sel, trimmed, one per line.
func textLines(sel *goquery.Selection) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				lines = append(lines, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(lines, "\n")
}
