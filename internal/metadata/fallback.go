package metadata

import (
	"fmt"
	"net/url"
)

const (
	faviconService    = "https://www.google.com/s2/favicons?domain=%s&sz=64"
	screenshotService = "https://api.microlink.io/screenshot?url=%s&viewport.width=1200&viewport.height=630"

	fallbackDescription = "A website bookmarked"
	fallbackTag         = "general"
)

// FaviconURL returns the generic favicon service URL for a domain.
func FaviconURL(domain string) string {
	return fmt.Sprintf(faviconService, domain)
}

// ScreenshotURL returns the generic screenshot service URL for a page.
func ScreenshotURL(rawURL string) string {
	return fmt.Sprintf(screenshotService, url.QueryEscape(rawURL))
}

// Fallback builds the deterministic metadata record used when fetching
// fails entirely. It never fails: an unparseable URL falls back to the
// raw string as domain.
func Fallback(rawURL string) *Result {
	domain := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		domain = u.Hostname()
	}

	return &Result{
		Title:       domain,
		Description: fallbackDescription,
		Tags:        []string{fallbackTag},
		Domain:      domain,
		Favicon:     FaviconURL(domain),
		Image:       ScreenshotURL(rawURL),
	}
}
