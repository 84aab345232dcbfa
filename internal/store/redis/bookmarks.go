package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ephemera/internal/domain"
	"ephemera/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CreateBookmark assigns a fresh id, stores the document and records
// membership in the owner's set.
func (s *Store) CreateBookmark(ctx context.Context, b *domain.Bookmark) (string, error) {
	doc := b.Clone()
	doc.ID = uuid.NewString()

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BookmarkKey(doc.ID), data, 0)
	pipe.SAdd(ctx, OwnerBookmarksKey(doc.OwnerID), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to save bookmark: %w", err)
	}

	return doc.ID, nil
}

// getBookmark retrieves a single bookmark document by id
func (s *Store) getBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var b domain.Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}

	return &b, nil
}

// BookmarksByOwner retrieves all bookmark documents for an owner.
// Documents that went missing under their set entry are skipped.
func (s *Store) BookmarksByOwner(ctx context.Context, ownerID string) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, OwnerBookmarksKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark ids: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		b, err := s.getBookmark(ctx, id)
		if err != nil {
			continue
		}
		bookmarks = append(bookmarks, b)
	}

	return bookmarks, nil
}

// UpdateBookmark applies a partial update. Read-modify-write is enough
// here: the store promises only read-your-own-writes, not cross-client
// serialization.
func (s *Store) UpdateBookmark(ctx context.Context, id string, patch store.BookmarkPatch) error {
	b, err := s.getBookmark(ctx, id)
	if err != nil {
		return err
	}

	applyBookmarkPatch(b, patch)

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	if err := s.client.Set(ctx, BookmarkKey(id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update bookmark: %w", err)
	}

	return nil
}

// DeleteBookmark removes the document and its owner-set membership.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	b, err := s.getBookmark(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BookmarkKey(id))
	pipe.SRem(ctx, OwnerBookmarksKey(b.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return nil
}

func applyBookmarkPatch(b *domain.Bookmark, patch store.BookmarkPatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Favicon != nil {
		b.Favicon = *patch.Favicon
	}
	if patch.Tags != nil {
		b.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.CategoryID != nil {
		b.CategoryID = *patch.CategoryID
	}
	if patch.IsFavorite != nil {
		b.IsFavorite = *patch.IsFavorite
	}
	if patch.IsArchived != nil {
		b.IsArchived = *patch.IsArchived
	}
	if patch.ClickCount != nil {
		b.ClickCount = *patch.ClickCount
	}
	if patch.LastAccessed != nil {
		b.LastAccessed = *patch.LastAccessed
	}
	if patch.UpdatedAt != nil {
		b.UpdatedAt = *patch.UpdatedAt
	}
}
