package session

import (
	"context"
	"fmt"
	"sync"

	"ephemera/internal/domain"
	"ephemera/internal/logger"
	"ephemera/internal/store"
)

// Bulk operations apply one mutation to a set of bookmark ids. Each
// id's remote call is independent and runs concurrently; a failing id
// never blocks or rolls back the others. Unlike the single-entity
// operations these are uniformly confirm-then-apply: local state only
// mirrors entries the remote store actually accepted, and the local
// apply happens in one step after the whole batch has resolved.
// Per-id failures are logged, not surfaced.

// BulkDelete removes every id whose remote delete succeeded.
func (s *Session) BulkDelete(ctx context.Context, ids []string) error {
	return s.runBulk(ctx, "delete", ids,
		func(ctx context.Context, id string) error {
			return s.store.DeleteBookmark(ctx, id)
		},
		nil)
}

// BulkSetTags overwrites (not merges) the tag list on every id.
func (s *Session) BulkSetTags(ctx context.Context, ids []string, tags []string) error {
	clean := dedupeTags(tags)
	now := s.now()
	return s.runBulk(ctx, "set tags", ids,
		func(ctx context.Context, id string) error {
			return s.store.UpdateBookmark(ctx, id, store.BookmarkPatch{
				Tags:      store.Ptr(append([]string(nil), clean...)),
				UpdatedAt: store.Ptr(now),
			})
		},
		func(b *domain.Bookmark) {
			b.Tags = append([]string(nil), clean...)
			b.UpdatedAt = now
		})
}

// BulkSetCategory moves every id to categoryID; empty moves them to
// uncategorized.
func (s *Session) BulkSetCategory(ctx context.Context, ids []string, categoryID string) error {
	now := s.now()
	return s.runBulk(ctx, "set category", ids,
		func(ctx context.Context, id string) error {
			return s.store.UpdateBookmark(ctx, id, store.BookmarkPatch{
				CategoryID: store.Ptr(categoryID),
				UpdatedAt:  store.Ptr(now),
			})
		},
		func(b *domain.Bookmark) {
			b.CategoryID = categoryID
			b.UpdatedAt = now
		})
}

// BulkSetFavorite sets the favorite flag to the given value.
func (s *Session) BulkSetFavorite(ctx context.Context, ids []string, favorite bool) error {
	now := s.now()
	return s.runBulk(ctx, "set favorite", ids,
		func(ctx context.Context, id string) error {
			return s.store.UpdateBookmark(ctx, id, store.BookmarkPatch{
				IsFavorite: store.Ptr(favorite),
				UpdatedAt:  store.Ptr(now),
			})
		},
		func(b *domain.Bookmark) {
			b.IsFavorite = favorite
			b.UpdatedAt = now
		})
}

// BulkSetArchived sets the archived flag to the given value.
func (s *Session) BulkSetArchived(ctx context.Context, ids []string, archived bool) error {
	now := s.now()
	return s.runBulk(ctx, "set archived", ids,
		func(ctx context.Context, id string) error {
			return s.store.UpdateBookmark(ctx, id, store.BookmarkPatch{
				IsArchived: store.Ptr(archived),
				UpdatedAt:  store.Ptr(now),
			})
		},
		func(b *domain.Bookmark) {
			b.IsArchived = archived
			b.UpdatedAt = now
		})
}

// runBulk drives one batch: guard the ids, fan out the remote calls,
// wait for every member to resolve, then apply the local mutation for
// the successful subset in a single snapshot swap. A nil apply means
// removal. The relative order of surviving bookmarks never changes.
func (s *Session) runBulk(ctx context.Context, op string, ids []string, call func(context.Context, string) error, apply func(*domain.Bookmark)) error {
	if len(ids) == 0 {
		return fmt.Errorf("bulk %s: empty id set", op)
	}

	s.mu.Lock()
	accepted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := s.acquireLocked(id); err != nil {
			s.logger.Warn("bulk member skipped, operation in flight",
				logger.String("op", op),
				logger.String("id", id))
			continue
		}
		accepted = append(accepted, id)
	}
	s.mu.Unlock()

	if len(accepted) == 0 {
		return fmt.Errorf("%w: bulk %s: all ids busy", domain.ErrBusy, op)
	}

	errs := make([]error, len(accepted))
	var wg sync.WaitGroup
	for i, id := range accepted {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = call(ctx, id)
		}(i, id)
	}
	wg.Wait()

	succeeded := make(map[string]bool, len(accepted))
	failed := 0
	for i, id := range accepted {
		if errs[i] != nil {
			failed++
			s.logger.Warn("bulk member failed, local state untouched",
				logger.String("op", op),
				logger.String("id", id),
				logger.Error(errs[i]))
			continue
		}
		succeeded[id] = true
	}

	s.mu.Lock()
	for _, id := range accepted {
		s.releaseLocked(id)
	}
	next := make([]*domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if !succeeded[b.ID] {
			next = append(next, b)
			continue
		}
		if apply == nil {
			continue // delete: drop the entry
		}
		nb := b.Clone()
		apply(nb)
		next = append(next, nb)
	}
	s.bookmarks = next
	s.touchLocked()
	s.mu.Unlock()

	s.logger.Info("bulk operation finished",
		logger.String("op", op),
		logger.Int("requested", len(ids)),
		logger.Int("succeeded", len(succeeded)),
		logger.Int("failed", failed))
	return nil
}
