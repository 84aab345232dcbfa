package redis

const (
	// KeyPrefixBookmark is the prefix for bookmark document keys
	KeyPrefixBookmark = "ephemera:bookmark:"
	// KeyPrefixCategory is the prefix for category document keys
	KeyPrefixCategory = "ephemera:category:"
	// KeyPrefixOwner is the prefix for per-owner id sets
	KeyPrefixOwner = "ephemera:owner:"
)

// BookmarkKey returns the Redis key for a bookmark document
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// CategoryKey returns the Redis key for a category document
func CategoryKey(id string) string {
	return KeyPrefixCategory + id
}

// OwnerBookmarksKey returns the key for the set of an owner's bookmark ids
func OwnerBookmarksKey(ownerID string) string {
	return KeyPrefixOwner + ownerID + ":bookmarks"
}

// OwnerCategoriesKey returns the key for the set of an owner's category ids
func OwnerCategoriesKey(ownerID string) string {
	return KeyPrefixOwner + ownerID + ":categories"
}
