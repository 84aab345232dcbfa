package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ephemera/internal/logger"
	"ephemera/internal/utils"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Result is the best-effort metadata record for a URL.
type Result struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Domain      string   `json:"domain"`
	Favicon     string   `json:"favicon,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// Fetcher resolves a URL to its metadata. Implementations may fail but
// must not block indefinitely.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Result, error)
}

const maxDescriptionRunes = 300

// HTTPFetcher downloads the page and extracts metadata with
// readability. Descriptions are sanitized to plain text before they
// reach the collection.
type HTTPFetcher struct {
	client       *http.Client
	maxBodyBytes int64
	sanitizer    *bluemonday.Policy
	logger       logger.Logger
}

// NewHTTPFetcher builds a fetcher with a bounded client so a slow
// foreign server cannot hang an add operation.
func NewHTTPFetcher(timeout time.Duration, maxBodyBytes int, log logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: int64(maxBodyBytes),
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       log,
	}
}

// Fetch downloads rawURL and extracts title, description and tags.
// Missing pieces are filled from the deterministic fallback so the
// result is always complete when err is nil.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || !pageURL.IsAbs() {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, errNotAbsolute(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body from %s: %w", rawURL, err)
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content from %s: %w", rawURL, err)
	}

	result := &Result{
		Title:       strings.TrimSpace(article.Title),
		Description: f.description(article.Excerpt),
		Tags:        deriveTags(pageURL.Hostname(), article.SiteName),
		Domain:      pageURL.Hostname(),
		Favicon:     FaviconURL(pageURL.Hostname()),
		Image:       strings.TrimSpace(article.Image),
	}

	fb := Fallback(rawURL)
	if result.Title == "" {
		result.Title = fb.Title
	}
	if result.Description == "" {
		result.Description = fb.Description
	}
	if len(result.Tags) == 0 {
		result.Tags = fb.Tags
	}
	// Always supply an image: screenshot service when the page has none.
	if result.Image == "" {
		result.Image = ScreenshotURL(rawURL)
	}

	f.logger.Debug("metadata fetched",
		logger.String("url", rawURL),
		logger.String("title", result.Title),
		logger.Strings("tags", result.Tags))

	return result, nil
}

func (f *HTTPFetcher) description(excerpt string) string {
	clean := strings.TrimSpace(f.sanitizer.Sanitize(excerpt))
	runes := []rune(clean)
	if len(runes) > maxDescriptionRunes {
		clean = string(runes[:maxDescriptionRunes])
	}
	return clean
}

// deriveTags produces a couple of deterministic tags from the host and
// the site name. Nothing clever: tags are user-editable afterwards.
func deriveTags(host, siteName string) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(t string) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	labels := strings.Split(host, ".")
	if len(labels) >= 2 {
		add(labels[len(labels)-2])
	}
	add(siteName)

	return tags
}

func errNotAbsolute(err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("url is not absolute")
}
