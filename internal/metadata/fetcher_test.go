package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ephemera/internal/logger"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
	<title>Test Article</title>
	<meta name="description" content="A short description of the page.">
</head>
<body>
	<article><p>Some body text long enough to be treated as content by the parser.
	It goes on for a while so extraction has something to work with.</p></article>
</body>
</html>`

func newTestFetcher() *HTTPFetcher {
	return NewHTTPFetcher(5*time.Second, 1<<20, logger.NewNop())
}

func TestFetchExtractsMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	got, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got.Title != "Test Article" {
		t.Errorf("title = %q, want Test Article", got.Title)
	}
	if got.Description == "" {
		t.Error("description must be filled, from the page or the fallback")
	}
	if got.Domain != "127.0.0.1" {
		t.Errorf("domain = %q", got.Domain)
	}
	if len(got.Tags) == 0 {
		t.Error("tags must never be empty")
	}
	if got.Image == "" {
		t.Error("image must be filled, screenshot service at worst")
	}
	if got.Favicon == "" {
		t.Error("favicon must be set")
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestFetchRejectsRelativeURL(t *testing.T) {
	if _, err := newTestFetcher().Fetch(context.Background(), "/just/a/path"); err == nil {
		t.Fatal("expected error for relative URL")
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := newTestFetcher().Fetch(context.Background(), url); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestDeriveTags(t *testing.T) {
	tests := []struct {
		host     string
		siteName string
		want     []string
	}{
		{"blog.example.com", "", []string{"example"}},
		{"example.com", "Example Site", []string{"example", "example site"}},
		{"localhost", "", nil},
	}
	for _, tt := range tests {
		got := deriveTags(tt.host, tt.siteName)
		if len(got) != len(tt.want) {
			t.Errorf("deriveTags(%q, %q) = %v, want %v", tt.host, tt.siteName, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("deriveTags(%q, %q) = %v, want %v", tt.host, tt.siteName, got, tt.want)
			}
		}
	}
}
