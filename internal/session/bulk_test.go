package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ephemera/internal/domain"
)

func seedBookmarks(t *testing.T, s *Session, urls ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(urls))
	for _, u := range urls {
		b, err := s.AddBookmark(context.Background(), AddBookmarkInput{URL: u})
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}
	return ids
}

func TestBulkDeletePartialFailure(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example", "https://b.example", "https://c.example")

	st.failDelete[ids[1]] = true
	err := s.BulkDelete(context.Background(), ids)
	require.NoError(t, err, "partial failure must not surface")

	got := s.Bookmarks()
	require.Len(t, got, 1)
	assert.Equal(t, ids[1], got[0].ID, "only the failed member survives")
	_, stillThere := st.bookmarks[ids[1]]
	assert.True(t, stillThere)
}

func TestBulkSetTagsOverwrites(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example", "https://b.example")

	err := s.BulkSetTags(context.Background(), ids, []string{"work", "work", "ref"})
	require.NoError(t, err)

	for _, b := range s.Bookmarks() {
		assert.Equal(t, []string{"work", "ref"}, b.Tags)
		assert.Equal(t, b.Tags, st.bookmarks[b.ID].Tags)
	}
}

func TestBulkSetCategoryAndFlags(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example", "https://b.example")

	require.NoError(t, s.BulkSetCategory(context.Background(), ids, "cat-7"))
	require.NoError(t, s.BulkSetFavorite(context.Background(), ids, true))
	require.NoError(t, s.BulkSetArchived(context.Background(), ids[:1], true))

	got := s.Bookmarks()
	for _, b := range got {
		assert.Equal(t, "cat-7", b.CategoryID)
		assert.True(t, b.IsFavorite)
	}
	// Newest first: ids[0] is the older entry, at the tail.
	assert.True(t, got[1].IsArchived)
	assert.False(t, got[0].IsArchived)
}

func TestBulkPreservesOrder(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example", "https://b.example", "https://c.example")

	require.NoError(t, s.BulkSetFavorite(context.Background(), ids, true))

	got := s.Bookmarks()
	require.Len(t, got, 3)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, ids[1], got[1].ID)
	assert.Equal(t, ids[0], got[2].ID)
}

func TestBulkEmptyIDSet(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)

	err := s.BulkDelete(context.Background(), nil)
	require.Error(t, err)
}

func TestBulkAllMembersBusy(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example")

	s.mu.Lock()
	require.NoError(t, s.acquireLocked(ids[0]))
	s.mu.Unlock()

	err := s.BulkSetFavorite(context.Background(), ids, true)
	assert.True(t, errors.Is(err, domain.ErrBusy), "got %v", err)
}

func TestBulkSkipsBusyMembers(t *testing.T) {
	st := newFakeStore()
	s := newTestSession(t, st)
	ids := seedBookmarks(t, s, "https://a.example", "https://b.example")

	s.mu.Lock()
	require.NoError(t, s.acquireLocked(ids[0]))
	s.mu.Unlock()

	require.NoError(t, s.BulkSetFavorite(context.Background(), ids, true))

	for _, b := range s.Bookmarks() {
		if b.ID == ids[0] {
			assert.False(t, b.IsFavorite, "busy member must be untouched")
		} else {
			assert.True(t, b.IsFavorite)
		}
	}

	// Guards for processed members are released; the busy one is not ours
	// to release here, it was acquired by the test.
	s.mu.Lock()
	s.releaseLocked(ids[0])
	s.mu.Unlock()
	require.NoError(t, s.BulkSetFavorite(context.Background(), ids, true))
}
