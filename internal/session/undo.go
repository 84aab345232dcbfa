package session

import (
	"context"
	"fmt"

	"ephemera/internal/domain"
	"ephemera/internal/logger"
	"ephemera/internal/store"
)

// inverse is the undo descriptor for one optimistic mutation: the full
// pre-mutation record, captured before the local apply. Rolling back
// restores the whole record, so a failed operation leaves the
// collection structurally identical to the state before it ran.
type inverse struct {
	prior *domain.Bookmark
}

// applyOptimistic captures the inverse for id, applies mutate to a
// clone and publishes the new snapshot. It fails fast when the id is
// unknown or already has a remote call in flight.
func (s *Session) applyOptimistic(id string, mutate func(*domain.Bookmark)) (inverse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.findBookmarkLocked(id)
	if !ok {
		return inverse{}, fmt.Errorf("%w: bookmark %s", domain.ErrNotFound, id)
	}
	if err := s.acquireLocked(id); err != nil {
		return inverse{}, err
	}

	inv := inverse{prior: s.bookmarks[i].Clone()}

	next := s.bookmarks[i].Clone()
	mutate(next)
	s.replaceBookmarkLocked(next)
	s.touchLocked()
	return inv, nil
}

// confirm issues the remote partial update for an already-applied
// optimistic mutation and rolls the record back when it fails.
func (s *Session) confirm(
	ctx context.Context,
	id string,
	inv inverse,
	op string,
	update func(ctx context.Context, id string, patch store.BookmarkPatch) error,
	patch store.BookmarkPatch,
) error {
	err := update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked(id)

	if err != nil {
		s.replaceBookmarkLocked(inv.prior)
		s.logger.Warn("remote update failed, rolled back",
			logger.String("op", op),
			logger.String("id", id),
			logger.Error(err))
		return fmt.Errorf("%w: %s %s: %w", domain.ErrUpdate, op, id, err)
	}
	return nil
}
