package domain

// Category is a user-defined grouping for bookmarks.
type Category struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque document id assigned by the remote store.
	ID string `json:"id"`

	// OwnerID is the owning user.
	OwnerID string `json:"ownerId"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	Name  string `json:"name"`
	Color string `json:"color"` // hex string, e.g. "#3B82F6"
	Icon  string `json:"icon"`

	// Order defines display order, ascending.
	Order int `json:"order"`

	// ParentID declares a hierarchy but derived computations treat
	// categories as flat. Empty means top-level.
	ParentID string `json:"parentId,omitempty"`

	// BookmarkCount is derived from the live bookmark collection and
	// is never trusted as a persisted source of truth.
	BookmarkCount int `json:"bookmarkCount"`

	// CreatedAt is epoch milliseconds, set once at creation.
	CreatedAt int64 `json:"createdAt"`
}

// Clone returns a copy. Category has no reference fields.
func (c *Category) Clone() *Category {
	cc := *c
	return &cc
}

// CloneCategories copies a category slice, preserving order.
func CloneCategories(in []*Category) []*Category {
	out := make([]*Category, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// DefaultCategorySeed describes one category of the fixed default set
// provisioned for an owner whose category collection is empty.
type DefaultCategorySeed struct {
	Name  string
	Color string
}

// DefaultCategorySeeds is the fixed default set, in display order.
// Order 0..4 follows slice position.
var DefaultCategorySeeds = []DefaultCategorySeed{
	{Name: "Work and Study", Color: "#3B82F6"},
	{Name: "Personal", Color: "#10B981"},
	{Name: "Read Later", Color: "#F59E0B"},
	{Name: "Tools and Resources", Color: "#8B5CF6"},
	{Name: "Miscellaneous", Color: "#6B7280"},
}

// DefaultCategoryIcon is the icon assigned to provisioned defaults and
// to categories created without an explicit icon.
const DefaultCategoryIcon = "folder"
