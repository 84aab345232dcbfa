package importer

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"ephemera/internal/domain"
)

// Format identifies a supported export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

var (
	anchorRegex  = regexp.MustCompile(`(?is)<a\s+([^>]*?)href\s*=\s*"([^"]*)"([^>]*)>(.*?)</a>`)
	tagAttrRegex = regexp.MustCompile(`(?i)tags\s*=\s*"([^"]*)"`)
	htmlTagRegex = regexp.MustCompile(`(?s)<[^>]*>`)
)

// Parse turns an exported bookmark file into import candidates. The
// format is sniffed from the payload when not given explicitly.
// Candidates are returned as parsed; URL validation happens at import
// time, not here.
func Parse(data []byte, format Format) ([]domain.Candidate, error) {
	if format == "" {
		format = sniff(data)
	}

	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatHTML:
		return ParseHTML(data), nil
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}

// sniff guesses the payload format from its first non-space byte.
func sniff(data []byte) Format {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	case strings.HasPrefix(trimmed, "<"):
		return FormatHTML
	default:
		return FormatYAML
	}
}

// ParseJSON accepts three shapes: a flat array of records, a
// {"bookmarks": [...]} envelope, and a Firefox folder tree where
// leaves carry a uri and folders nest children.
func ParseJSON(data []byte) ([]domain.Candidate, error) {
	var flat []jsonEntry
	if err := json.Unmarshal(data, &flat); err == nil {
		return collect(flat), nil
	}

	var root jsonEntry
	if err := json.Unmarshal(data, &root); err != nil {
		// Report the envelope error too; it is the more common shape.
		var w wrapper
		if werr := json.Unmarshal(data, &w); werr != nil {
			return nil, fmt.Errorf("unrecognized bookmark export: %w", werr)
		}
		return collect(w.Bookmarks), nil
	}

	if len(root.Children) > 0 {
		return collect(root.Children), nil
	}

	var w wrapper
	if err := json.Unmarshal(data, &w); err == nil && len(w.Bookmarks) > 0 {
		return collect(w.Bookmarks), nil
	}

	// A single record is still a valid, if tiny, export.
	if entryURL(root) != "" {
		return collect([]jsonEntry{root}), nil
	}
	return nil, fmt.Errorf("unrecognized bookmark export: no bookmarks found")
}

// collect flattens entries depth-first, descending into folders.
func collect(entries []jsonEntry) []domain.Candidate {
	var out []domain.Candidate
	for _, e := range entries {
		if url := entryURL(e); url != "" {
			out = append(out, domain.Candidate{
				URL:         url,
				Title:       firstNonEmpty(e.Title, e.Name),
				Description: e.Description,
				Tags:        []string(e.Tags),
				CategoryID:  e.CategoryID,
				IsFavorite:  e.IsFavorite,
				IsArchived:  e.IsArchived,
			})
		}
		if len(e.Children) > 0 {
			out = append(out, collect(e.Children)...)
		}
	}
	return out
}

func entryURL(e jsonEntry) string {
	return firstNonEmpty(e.URL, e.URI, e.Href)
}

// ParseHTML extracts anchors from a Netscape-style bookmark export,
// the format browsers produce via "export bookmarks to HTML". Anchor
// text becomes the title; a TAGS attribute, when present, becomes the
// tag list. Malformed markup yields fewer candidates, never an error.
func ParseHTML(data []byte) []domain.Candidate {
	matches := anchorRegex.FindAllStringSubmatch(string(data), -1)

	out := make([]domain.Candidate, 0, len(matches))
	for _, m := range matches {
		url := html.UnescapeString(m[2])
		if url == "" {
			continue
		}

		title := strings.TrimSpace(html.UnescapeString(htmlTagRegex.ReplaceAllString(m[4], "")))

		var tags []string
		attrs := m[1] + m[3]
		if tm := tagAttrRegex.FindStringSubmatch(attrs); tm != nil {
			tags = splitTags(html.UnescapeString(tm[1]))
		}

		out = append(out, domain.Candidate{URL: url, Title: title, Tags: tags})
	}
	return out
}

// ParseYAML accepts a plain YAML list of bookmark records.
func ParseYAML(data []byte) ([]domain.Candidate, error) {
	var entries []yamlEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}

	out := make([]domain.Candidate, 0, len(entries))
	for _, e := range entries {
		url := firstNonEmpty(e.URL, e.Href)
		if url == "" {
			continue
		}
		out = append(out, domain.Candidate{
			URL:         url,
			Title:       e.Title,
			Description: e.Description,
			Tags:        e.Tags,
			CategoryID:  e.Category,
			IsFavorite:  e.Favorite,
		})
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
