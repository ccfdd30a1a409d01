package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"example.com", "https://example.com", false},
		{"example.com/path?q=1", "https://example.com/path?q=1", false},
		{"http://example.com", "http://example.com", false},
		{"  https://example.com/a  ", "https://example.com/a", false},
		{"ftp://example.com", "", true},
		{"file:///etc/passwd", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestIsText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"text/plain", true},
		{"application/pdf", false},
		{"image/png", false},
		{"application/json", false},
	}
	for _, tt := range tests {
		if got := IsText(tt.contentType); got != tt.want {
			t.Errorf("IsText(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "agentkit-test" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><head><title>Hi</title></head><body><p>héllo</p></body></html>")
	}))
	defer server.Close()

	page, err := New("agentkit-test", 5*time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(string(page.Body), "héllo") {
		t.Errorf("Body = %q", page.Body)
	}
	if page.URL != server.URL {
		t.Errorf("URL = %q, want %q", page.URL, server.URL)
	}
}

func TestFetch_DecodesLatin1(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("<html><body><p>caf\xe9</p></body></html>"))
	}))
	defer server.Close()

	page, err := New("ua", 5*time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(string(page.Body), "café") {
		t.Errorf("Body not decoded to UTF-8: %q", page.Body)
	}
}

func TestFetch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{
			"not found",
			func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) },
			func(err error) bool {
				var se *StatusError
				return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
			},
		},
		{
			"pdf",
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				w.Write([]byte("%PDF-1.4"))
			},
			func(err error) bool { return errors.Is(err, ErrNonText) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := New("ua", 5*time.Second).Fetch(context.Background(), server.URL)
			if !tt.check(err) {
				t.Errorf("Fetch() error = %v", err)
			}
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	if _, err := New("ua", 50*time.Millisecond).Fetch(context.Background(), server.URL); err == nil {
		t.Error("Fetch() with short timeout = nil error")
	}
}

func TestFetch_BodyCapped(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(strings.Repeat("a", MaxBodySize+1024)))
	}))
	defer server.Close()

	page, err := New("ua", 10*time.Second).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(page.Body) != MaxBodySize {
		t.Errorf("len(Body) = %d, want %d", len(page.Body), MaxBodySize)
	}
}
