package metadata

import (
	"strings"
	"testing"
)

func TestFallback(t *testing.T) {
	fb := Fallback("https://blog.example.com/post/42")

	if fb.Title != "blog.example.com" {
		t.Errorf("title = %q, want the domain", fb.Title)
	}
	if fb.Description != "A website bookmarked" {
		t.Errorf("description = %q", fb.Description)
	}
	if len(fb.Tags) != 1 || fb.Tags[0] != "general" {
		t.Errorf("tags = %v, want [general]", fb.Tags)
	}
	if !strings.Contains(fb.Favicon, "blog.example.com") {
		t.Errorf("favicon = %q, want domain-based favicon service URL", fb.Favicon)
	}
	if fb.Image == "" {
		t.Error("fallback must always carry a screenshot image URL")
	}
}

func TestFallbackUnparseableURL(t *testing.T) {
	fb := Fallback("::::not a url")
	if fb.Title == "" || fb.Description == "" {
		t.Error("fallback must never be empty, even for junk input")
	}
}

func TestScreenshotURLEscapes(t *testing.T) {
	got := ScreenshotURL("https://example.com/a?b=c&d=e")
	if strings.Contains(got, "b=c&d") {
		t.Errorf("target URL not escaped: %q", got)
	}
	if !strings.HasPrefix(got, "https://api.microlink.io/screenshot") {
		t.Errorf("unexpected service: %q", got)
	}
}
