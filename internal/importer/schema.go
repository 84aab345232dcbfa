package importer

import (
	"encoding/json"
	"strings"
)

// jsonEntry is the lenient shape of one exported bookmark record.
// Different exporters disagree on field names, so every known alias
// is accepted and the first non-empty one wins.
type jsonEntry struct {
	URL         string  `json:"url"`
	URI         string  `json:"uri"`
	Href        string  `json:"href"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tags        tagList `json:"tags"`
	CategoryID  string  `json:"categoryId"`
	IsFavorite  bool    `json:"isFavorite"`
	IsArchived  bool    `json:"isArchived"`

	// Firefox exports nest folders; leaves carry uri, folders carry
	// children.
	Children []jsonEntry `json:"children"`
}

// wrapper is the {"bookmarks": [...]} envelope some exporters emit.
type wrapper struct {
	Bookmarks []jsonEntry `json:"bookmarks"`
}

// yamlEntry is one record of a YAML bookmark list.
type yamlEntry struct {
	URL         string   `yaml:"url"`
	Href        string   `yaml:"href"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	Favorite    bool     `yaml:"favorite"`
}

// tagList unmarshals either a JSON string array or a single
// space/comma separated string into a slice of tags.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*t = splitTags(single)
	return nil
}

func splitTags(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
