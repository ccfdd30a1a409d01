package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const resultsPage = `<html><body>
<div class="result results_links web-result">
  <h2 class="result__title">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&amp;rut=abc">Documentation - The Go Programming Language</a>
  </h2>
  <a class="result__snippet" href="#">The Go programming language is an <b>open source</b> project.</a>
</div>
<div class="result result--ad">
  <div class="result__body">sponsored, no title link</div>
</div>
<div class="result">
  <a class="result__a" href="https://pkg.go.dev/">Go Packages</a>
</div>
<div class="result">
  <a class="result__a" href="//example.com/third">Third</a>
  <div class="result__snippet">third snippet</div>
</div>
</body></html>`

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader(resultsPage), 10)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Result{
		{Title: "Documentation - The Go Programming Language", URL: "https://go.dev/doc/", Snippet: "The Go programming language is an open source project."},
		{Title: "Go Packages", URL: "https://pkg.go.dev/"},
		{Title: "Third", URL: "https://example.com/third", Snippet: "third snippet"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Max(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader(resultsPage), 2)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 2 || got[1].Title != "Go Packages" {
		t.Errorf("Parse(max=2) = %+v", got)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	got, err := Parse(strings.NewReader("<html><body>No results.</body></html>"), 5)
	if err != nil || len(got) != 0 {
		t.Errorf("Parse(empty) = %v, %v", got, err)
	}
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fa%3Fb%3Dc", "https://example.com/a?b=c"},
		{"https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com", "https://example.com"},
		{"//duckduckgo.com/l/?rut=only", "https://duckduckgo.com/l/?rut=only"},
		{"//example.com/page", "https://example.com/page"},
		{"https://example.com/x", "https://example.com/x"},
	}
	for _, tt := range tests {
		if got := resolveLink(tt.href); got != tt.want {
			t.Errorf("resolveLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	var gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	defer server.Close()

	c := New(server.URL+"/html/", "agentkit-test", 5*time.Second)
	got, err := c.Search(context.Background(), "golang generics", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQuery != "golang generics" || gotUA != "agentkit-test" {
		t.Errorf("request q=%q ua=%q", gotQuery, gotUA)
	}
	if len(got) != 1 || got[0].URL != "https://go.dev/doc/" {
		t.Errorf("Search() = %+v", got)
	}
}

func TestClient_SearchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := New(server.URL, "ua", time.Second).Search(context.Background(), "q", 5); err == nil {
		t.Error("Search() with 403 = nil error")
	}
}
