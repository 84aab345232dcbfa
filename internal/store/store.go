package store

import (
	"context"

	"ephemera/internal/domain"
)

// Store is the remote document store consumed by the collection layer.
//
// Documents are addressed by opaque string ids assigned on creation.
// Updates are partial: only fields set on the patch change. There are
// no transactions across documents; a write is only guaranteed visible
// on the next read by the same client.
type Store interface {
	CreateBookmark(ctx context.Context, b *domain.Bookmark) (string, error)
	BookmarksByOwner(ctx context.Context, ownerID string) ([]*domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, id string, patch BookmarkPatch) error
	DeleteBookmark(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c *domain.Category) (string, error)
	CategoriesByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// BookmarkPatch carries a partial bookmark update. Nil fields are left
// untouched; a non-nil pointer to the zero value clears the field
// (e.g. CategoryID -> "" moves a bookmark to uncategorized).
type BookmarkPatch struct {
	Title        *string
	Description  *string
	Favicon      *string
	Tags         *[]string
	CategoryID   *string
	IsFavorite   *bool
	IsArchived   *bool
	ClickCount   *int64
	LastAccessed *int64
	UpdatedAt    *int64
}

// Ptr is a convenience for building patches from literals.
func Ptr[T any](v T) *T { return &v }
