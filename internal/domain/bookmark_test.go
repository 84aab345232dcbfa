package domain

import "testing"

func TestBookmarkCloneIsIndependent(t *testing.T) {
	orig := &Bookmark{
		ID:   "b1",
		Tags: []string{"go", "redis"},
		Metadata: Metadata{
			Domain: "example.com",
		},
	}

	clone := orig.Clone()
	clone.Tags[0] = "changed"
	clone.Title = "changed"

	if orig.Tags[0] != "go" {
		t.Error("clone shares the tag slice with the original")
	}
	if orig.Title != "" {
		t.Error("clone shares fields with the original")
	}
}

func TestCandidateValid(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"javascript:alert(1)", false},
		{"", false},
	}
	for _, tt := range tests {
		c := Candidate{URL: tt.url}
		if got := c.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestDefaultCategorySeeds(t *testing.T) {
	if len(DefaultCategorySeeds) != 5 {
		t.Fatalf("got %d default categories, want 5", len(DefaultCategorySeeds))
	}
	seen := make(map[string]bool)
	for _, s := range DefaultCategorySeeds {
		if s.Name == "" || s.Color == "" {
			t.Errorf("seed %+v incomplete", s)
		}
		if seen[s.Name] {
			t.Errorf("duplicate seed name %q", s.Name)
		}
		seen[s.Name] = true
	}
}
