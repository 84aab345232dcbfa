package domain

import "strings"

// Candidate is a partial bookmark produced by an import source. Only
// URL is required; everything else is best-effort and may be filled
// from fetched metadata later.
type Candidate struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
	IsArchived  bool     `json:"isArchived,omitempty"`
}

// Valid reports whether the candidate carries an importable URL.
// Anything without an http(s) prefix is dropped before processing.
func (c Candidate) Valid() bool {
	return strings.HasPrefix(c.URL, "http")
}
