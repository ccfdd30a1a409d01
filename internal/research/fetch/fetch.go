// Package fetch downloads web pages for extraction.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 10 << 20

// ErrNonText is returned for responses whose Content-Type is not HTML or text.
var ErrNonText = errors.New("content is not HTML or text")

// StatusError reports a non-200 HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Page is a fetched document, decoded to UTF-8.
type Page struct {
	URL         string
	ContentType string
	Body        []byte
}

// Client fetches pages over HTTP.
type Client struct {
	userAgent string
	http      *http.Client
}

// New returns a Client sending userAgent with each request.
func New(userAgent string, timeout time.Duration) *Client {
	return &Client{
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// NormalizeURL adds https:// to scheme-less URLs and rejects anything but
// http and https.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme %q: only http and https are allowed", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return u.String(), nil
}

// Fetch downloads rawURL and returns its body decoded to UTF-8.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/*;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !IsText(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrNonText, contentType)
	}

	reader, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return &Page{URL: target, ContentType: contentType, Body: body}, nil
}

// IsText reports whether contentType is HTML, XHTML or another text/*
// type. An empty Content-Type is treated as HTML.
func IsText(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/xhtml+xml" || strings.HasPrefix(mediaType, "text/")
}
