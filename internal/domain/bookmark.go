package domain

// Metadata holds the page metadata attached to a bookmark by the
// metadata fetcher. Domain is always present, the rest is best-effort.
type Metadata struct {
	Domain string `json:"domain"`
	Image  string `json:"image,omitempty"`
	Author string `json:"author,omitempty"`
}

// Bookmark represents a single saved URL owned by one user.
//
// All timestamps are epoch milliseconds: that is how the remote store
// persists them and how every consumer reads them back.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque document id assigned by the remote store on
	// creation. Empty until the bookmark has been persisted.
	ID string `json:"id"`

	// OwnerID is the owning user. Never changes once set.
	OwnerID string `json:"ownerId"`

	// URL is the absolute URL being bookmarked. Required, non-empty.
	URL string `json:"url"`

	// ─────────────────────────────
	// Display content
	// ─────────────────────────────

	// Title and Description are display strings and may be empty.
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Favicon is an optional icon URL.
	Favicon string `json:"favicon,omitempty"`

	// ─────────────────────────────
	// Organization
	// ─────────────────────────────

	// Tags is an ordered list of tag strings. Uniqueness within a
	// bookmark is enforced at the edit boundary, not by the store.
	Tags []string `json:"tags"`

	// CategoryID references a Category id. Empty means uncategorized.
	// It may point at a category that no longer exists; consumers
	// must tolerate the orphaned reference.
	CategoryID string `json:"categoryId,omitempty"`

	IsFavorite bool `json:"isFavorite"`
	IsArchived bool `json:"isArchived"`

	// Metadata is filled by the fetcher at creation time.
	Metadata Metadata `json:"metadata"`

	// ─────────────────────────────
	// Usage & timestamps
	// ─────────────────────────────

	// ClickCount is non-negative and only ever grows in normal use.
	ClickCount int64 `json:"clickCount"`

	// LastAccessed is refreshed on every recorded click.
	LastAccessed int64 `json:"lastAccessed"`

	// CreatedAt is set once at creation and never mutated.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is refreshed on every mutating operation and is
	// always >= CreatedAt.
	UpdatedAt int64 `json:"updatedAt"`
}

// Clone returns a deep copy. Tags is the only reference field.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Tags != nil {
		c.Tags = make([]string, len(b.Tags))
		copy(c.Tags, b.Tags)
	}
	return &c
}

// CloneBookmarks deep-copies a bookmark slice, preserving order.
func CloneBookmarks(in []*Bookmark) []*Bookmark {
	out := make([]*Bookmark, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
