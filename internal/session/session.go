package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ephemera/internal/domain"
	"ephemera/internal/logger"
	"ephemera/internal/metadata"
	"ephemera/internal/store"
)

// Session is the authoritative in-memory mirror of one owner's
// bookmarks and categories. Every mutation funnels through it:
// optimistic operations apply locally first and roll back when the
// remote write fails, deletes confirm remotely before touching local
// state.
//
// Mutations never modify a published record in place. Each one builds
// a new slice with a cloned entity and swaps it under the lock, so
// readers always observe a consistent snapshot.
type Session struct {
	ownerID string
	store   store.Store
	fetcher metadata.Fetcher
	logger  logger.Logger
	now     func() int64 // epoch milliseconds, swappable for tests

	mu         sync.Mutex
	bookmarks  []*domain.Bookmark // newest first
	categories []*domain.Category // by Order ascending
	inflight   map[string]struct{}

	// activeCategory is the category filter currently applied by the
	// owner's view. Cleared as a side effect of deleting the category.
	activeCategory string

	loaded      bool
	provisioned bool
	lastUsed    time.Time
}

// AddBookmarkInput is the caller-supplied part of a new bookmark.
type AddBookmarkInput struct {
	URL        string `json:"url"`
	CategoryID string `json:"categoryId,omitempty"`
}

// AddCategoryInput is the caller-supplied part of a new category.
type AddCategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// New creates an unloaded session for one owner. Call Load before
// reading or mutating.
func New(ownerID string, st store.Store, fetcher metadata.Fetcher, log logger.Logger) *Session {
	return &Session{
		ownerID:  ownerID,
		store:    st,
		fetcher:  fetcher,
		logger:   log.With(logger.String("owner", ownerID)),
		now:      func() int64 { return time.Now().UnixMilli() },
		inflight: make(map[string]struct{}),
		lastUsed: time.Now(),
	}
}

// OwnerID returns the owner this session mirrors.
func (s *Session) OwnerID() string { return s.ownerID }

// SetNow overrides the clock. Tests only.
func (s *Session) SetNow(now func() int64) { s.now = now }

// Load fetches the owner's bookmarks and categories from the remote
// store and adopts them locally. An empty category collection triggers
// the default-category provisioning step; an empty bookmark collection
// is a normal result, not an error.
func (s *Session) Load(ctx context.Context) error {
	bookmarks, err := s.store.BookmarksByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: bookmarks: %w", domain.ErrLoad, err)
	}
	categories, err := s.store.CategoriesByOwner(ctx, s.ownerID)
	if err != nil {
		return fmt.Errorf("%w: categories: %w", domain.ErrLoad, err)
	}

	// Newest first; the store returns documents in arbitrary order.
	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].CreatedAt > bookmarks[j].CreatedAt
	})
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})

	if len(categories) == 0 {
		categories, err = s.provisionDefaults(ctx)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.bookmarks = bookmarks
	s.categories = categories
	s.loaded = true
	s.touchLocked()
	s.mu.Unlock()

	s.logger.Info("session loaded",
		logger.Int("bookmarks", len(bookmarks)),
		logger.Int("categories", len(categories)))
	return nil
}

// provisionDefaults creates the fixed default category set remotely
// and returns it with assigned ids. Guarded so two racing loads on the
// same session provision at most once; racing loads from separate
// clients remain an accepted gap of the document store.
func (s *Session) provisionDefaults(ctx context.Context) ([]*domain.Category, error) {
	s.mu.Lock()
	if s.provisioned {
		existing := s.categories
		s.mu.Unlock()
		return existing, nil
	}
	s.provisioned = true
	s.mu.Unlock()

	created := make([]*domain.Category, 0, len(domain.DefaultCategorySeeds))
	for i, seed := range domain.DefaultCategorySeeds {
		cat := &domain.Category{
			OwnerID:   s.ownerID,
			Name:      seed.Name,
			Color:     seed.Color,
			Icon:      domain.DefaultCategoryIcon,
			Order:     i,
			CreatedAt: s.now(),
		}
		id, err := s.store.CreateCategory(ctx, cat)
		if err != nil {
			s.mu.Lock()
			s.provisioned = false
			s.mu.Unlock()
			return nil, fmt.Errorf("%w: provisioning default categories: %w", domain.ErrLoad, err)
		}
		cat.ID = id
		created = append(created, cat)
	}

	s.logger.Info("default categories provisioned",
		logger.Int("count", len(created)))
	return created, nil
}

// Snapshot returns the current bookmark and category collections.
// Both slices and their records must be treated as read-only.
func (s *Session) Snapshot() ([]*domain.Bookmark, []*domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
	bookmarks := make([]*domain.Bookmark, len(s.bookmarks))
	copy(bookmarks, s.bookmarks)
	categories := make([]*domain.Category, len(s.categories))
	copy(categories, s.categories)
	return bookmarks, categories
}

// Bookmarks returns the current bookmark snapshot, newest first.
func (s *Session) Bookmarks() []*domain.Bookmark {
	b, _ := s.Snapshot()
	return b
}

// Categories returns the current category snapshot in display order.
func (s *Session) Categories() []*domain.Category {
	_, c := s.Snapshot()
	return c
}

// ActiveCategory returns the currently applied category filter, empty
// when no filter is active.
func (s *Session) ActiveCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCategory
}

// SetActiveCategory applies or clears the category filter.
func (s *Session) SetActiveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCategory = id
	s.touchLocked()
}

// AddBookmark fetches metadata for the URL, persists the new record
// and prepends it locally. If metadata fetch or persist fails, nothing
// is written anywhere.
func (s *Session) AddBookmark(ctx context.Context, input AddBookmarkInput) (*domain.Bookmark, error) {
	if input.URL == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrAdd, domain.ErrEmptyURL)
	}

	meta, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata fetch: %w", domain.ErrAdd, err)
	}

	now := s.now()
	b := &domain.Bookmark{
		OwnerID:     s.ownerID,
		URL:         input.URL,
		Title:       meta.Title,
		Description: meta.Description,
		Favicon:     meta.Favicon,
		Tags:        dedupeTags(meta.Tags),
		CategoryID:  input.CategoryID,
		Metadata: domain.Metadata{
			Domain: meta.Domain,
			Image:  meta.Image,
		},
		LastAccessed: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.store.CreateBookmark(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%w: persist: %w", domain.ErrAdd, err)
	}
	b.ID = id

	s.mu.Lock()
	s.bookmarks = append([]*domain.Bookmark{b}, s.bookmarks...)
	s.touchLocked()
	s.mu.Unlock()

	s.logger.Info("bookmark added",
		logger.String("id", id),
		logger.String("url", input.URL))
	return b.Clone(), nil
}

// DeleteBookmark removes the bookmark remotely first and only then
// locally. An unrecoverable delete is worse than a stale one, so this
// is the single confirm-then-apply exception among the single-entity
// operations.
func (s *Session) DeleteBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.findBookmarkLocked(id); !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: bookmark %s", domain.ErrNotFound, id)
	}
	if err := s.acquireLocked(id); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	err := s.store.DeleteBookmark(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked(id)
	if err != nil {
		return fmt.Errorf("%w: bookmark %s: %w", domain.ErrDelete, id, err)
	}
	s.removeBookmarkLocked(id)
	s.touchLocked()
	return nil
}

// ToggleFavorite flips the favorite flag optimistically and confirms
// with the remote store, rolling back the whole record on failure.
func (s *Session) ToggleFavorite(ctx context.Context, id string) error {
	now := s.now()
	var next bool
	inv, err := s.applyOptimistic(id, func(b *domain.Bookmark) {
		next = !b.IsFavorite
		b.IsFavorite = next
		b.UpdatedAt = now
	})
	if err != nil {
		return err
	}

	patch := store.BookmarkPatch{
		IsFavorite: store.Ptr(next),
		UpdatedAt:  store.Ptr(now),
	}
	return s.confirm(ctx, id, inv, "toggle favorite", s.store.UpdateBookmark, patch)
}

// UpdateTagsAndCategory overwrites the tag list and category reference
// optimistically. Duplicate tag text is collapsed at this boundary.
func (s *Session) UpdateTagsAndCategory(ctx context.Context, id string, tags []string, categoryID string) error {
	now := s.now()
	clean := dedupeTags(tags)
	inv, err := s.applyOptimistic(id, func(b *domain.Bookmark) {
		b.Tags = append([]string(nil), clean...)
		b.CategoryID = categoryID
		b.UpdatedAt = now
	})
	if err != nil {
		return err
	}

	patch := store.BookmarkPatch{
		Tags:       store.Ptr(append([]string(nil), clean...)),
		CategoryID: store.Ptr(categoryID),
		UpdatedAt:  store.Ptr(now),
	}
	return s.confirm(ctx, id, inv, "update tags", s.store.UpdateBookmark, patch)
}

// RecordClick bumps the click counter and access time optimistically.
// The remote confirmation is fire-and-forget from the caller's point
// of view: a failure rolls the record back and is logged, never
// surfaced.
func (s *Session) RecordClick(ctx context.Context, id string) error {
	now := s.now()
	var count int64
	inv, err := s.applyOptimistic(id, func(b *domain.Bookmark) {
		b.ClickCount++
		count = b.ClickCount
		b.LastAccessed = now
	})
	if err != nil {
		return err
	}

	patch := store.BookmarkPatch{
		ClickCount:   store.Ptr(count),
		LastAccessed: store.Ptr(now),
	}
	if err := s.confirm(ctx, id, inv, "record click", s.store.UpdateBookmark, patch); err != nil {
		s.logger.Warn("click not recorded remotely",
			logger.String("id", id),
			logger.Error(err))
	}
	return nil
}

// AddCategory persists a new category and appends it locally. Order is
// assigned from the current category count. Append-only, so no
// rollback path is needed.
func (s *Session) AddCategory(ctx context.Context, input AddCategoryInput) (*domain.Category, error) {
	icon := input.Icon
	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}

	s.mu.Lock()
	order := len(s.categories)
	s.mu.Unlock()

	cat := &domain.Category{
		OwnerID:   s.ownerID,
		Name:      input.Name,
		Color:     input.Color,
		Icon:      icon,
		Order:     order,
		CreatedAt: s.now(),
	}

	id, err := s.store.CreateCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("%w: category: %w", domain.ErrAdd, err)
	}
	cat.ID = id

	s.mu.Lock()
	s.categories = append(append([]*domain.Category{}, s.categories...), cat)
	s.touchLocked()
	s.mu.Unlock()

	s.logger.Info("category added",
		logger.String("id", id),
		logger.String("name", cat.Name))
	return cat.Clone(), nil
}

// DeleteCategory removes the category remotely then locally. The
// caller is responsible for any upstream confirmation. Referencing
// bookmarks keep their now-orphaned categoryId; if the active filter
// pointed at this category it is cleared.
func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%w: category %s: %w", domain.ErrDelete, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.categories = next
	if s.activeCategory == id {
		s.activeCategory = ""
	}
	s.touchLocked()
	return nil
}

// Import processes candidates sequentially: metadata is fetched
// best-effort per candidate (an individual fetch failure falls back to
// the candidate's own fields plus the deterministic fallback), each is
// persisted, and only remotely confirmed entries are appended locally.
// Candidates without an absolute http URL are dropped up front.
// Per-item failures are logged, never surfaced; the returned count is
// the number of bookmarks actually imported.
func (s *Session) Import(ctx context.Context, candidates []domain.Candidate) int {
	imported := 0
	appended := make([]*domain.Bookmark, 0, len(candidates))

	for _, cand := range candidates {
		if !cand.Valid() {
			continue
		}

		meta, err := s.fetcher.Fetch(ctx, cand.URL)
		if err != nil {
			s.logger.Debug("metadata fetch failed during import, using fallback",
				logger.String("url", cand.URL),
				logger.Error(err))
			meta = metadata.Fallback(cand.URL)
		}

		now := s.now()
		b := &domain.Bookmark{
			OwnerID:     s.ownerID,
			URL:         cand.URL,
			Title:       firstNonEmpty(cand.Title, meta.Title, cand.URL),
			Description: firstNonEmpty(cand.Description, meta.Description),
			Favicon:     meta.Favicon,
			Tags:        dedupeTags(firstNonEmptyTags(cand.Tags, meta.Tags)),
			CategoryID:  cand.CategoryID,
			IsFavorite:  cand.IsFavorite,
			IsArchived:  cand.IsArchived,
			Metadata: domain.Metadata{
				Domain: meta.Domain,
				Image:  meta.Image,
			},
			LastAccessed: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		id, err := s.store.CreateBookmark(ctx, b)
		if err != nil {
			s.logger.Warn("failed to persist imported bookmark",
				logger.String("url", cand.URL),
				logger.Error(err))
			continue
		}
		b.ID = id
		appended = append(appended, b)
		imported++
	}

	if len(appended) > 0 {
		s.mu.Lock()
		s.bookmarks = append(append([]*domain.Bookmark{}, s.bookmarks...), appended...)
		s.touchLocked()
		s.mu.Unlock()
	}

	s.logger.Info("import finished",
		logger.Int("candidates", len(candidates)),
		logger.Int("imported", imported))
	return imported
}

// LastUsed reports the most recent activity on the session.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// ─────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────

func (s *Session) touchLocked() {
	s.lastUsed = time.Now()
}

// findBookmarkLocked returns the index of id, or -1.
func (s *Session) findBookmarkLocked(id string) (int, bool) {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i, true
		}
	}
	return -1, false
}

// replaceBookmarkLocked swaps in nb at the position of its id,
// building a fresh slice so concurrent readers keep their snapshot.
func (s *Session) replaceBookmarkLocked(nb *domain.Bookmark) {
	next := make([]*domain.Bookmark, len(s.bookmarks))
	copy(next, s.bookmarks)
	for i, b := range next {
		if b.ID == nb.ID {
			next[i] = nb
			break
		}
	}
	s.bookmarks = next
}

func (s *Session) removeBookmarkLocked(id string) {
	next := make([]*domain.Bookmark, 0, len(s.bookmarks))
	for _, b := range s.bookmarks {
		if b.ID != id {
			next = append(next, b)
		}
	}
	s.bookmarks = next
}

func (s *Session) acquireLocked(id string) error {
	if _, busy := s.inflight[id]; busy {
		return fmt.Errorf("%w: %s", domain.ErrBusy, id)
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *Session) releaseLocked(id string) {
	delete(s.inflight, id)
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyTags(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
