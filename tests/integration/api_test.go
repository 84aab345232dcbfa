package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"ephemera/internal/domain"
	"ephemera/internal/httpserver/deps"
	"ephemera/internal/httpserver/routes"
	"ephemera/internal/logger"
	"ephemera/internal/metadata"
	"ephemera/internal/session"
	"ephemera/internal/store"
)

const testSecret = "integration-test-secret"

// memStore is a minimal in-memory store.Store for end-to-end tests.
type memStore struct {
	mu         sync.Mutex
	bookmarks  map[string]*domain.Bookmark
	categories map[string]*domain.Category
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		bookmarks:  make(map[string]*domain.Bookmark),
		categories: make(map[string]*domain.Category),
	}
}

func (m *memStore) CreateBookmark(_ context.Context, b *domain.Bookmark) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("bm-%d", m.nextID)
	nb := b.Clone()
	nb.ID = id
	m.bookmarks[id] = nb
	return id, nil
}

func (m *memStore) BookmarksByOwner(_ context.Context, ownerID string) ([]*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Bookmark
	for _, b := range m.bookmarks {
		if b.OwnerID == ownerID {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (m *memStore) UpdateBookmark(_ context.Context, id string, patch store.BookmarkPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookmarks[id]
	if !ok {
		return errors.New("bookmark not found")
	}
	if patch.Tags != nil {
		b.Tags = append([]string(nil), *patch.Tags...)
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
	return nil
}

func (m *memStore) DeleteBookmark(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookmarks, id)
	return nil
}

func (m *memStore) CreateCategory(_ context.Context, c *domain.Category) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("cat-%d", m.nextID)
	nc := c.Clone()
	nc.ID = id
	m.categories[id] = nc
	return id, nil
}

func (m *memStore) CategoriesByOwner(_ context.Context, ownerID string) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Category
	for _, c := range m.categories {
		if c.OwnerID == ownerID {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

func (m *memStore) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.categories, id)
	return nil
}

// stubFetcher avoids network access during tests.
type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, rawURL string) (*metadata.Result, error) {
	return &metadata.Result{
		Title:       "Stub Title",
		Description: "Stub description",
		Tags:        []string{"stub"},
		Domain:      "stub.example",
		Favicon:     "https://stub.example/favicon.ico",
		Image:       "https://stub.example/image.png",
	}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logger.NewNop()
	sessions := session.NewManager(newMemStore(), stubFetcher{}, log, time.Minute, time.Hour)

	d := deps.Deps{
		Logger:      log,
		StartTime:   time.Now(),
		TimeNow:     time.Now,
		Sessions:    sessions,
		JWTSecret:   testSecret,
		FeedBaseURL: "http://test.local",
		FeedSize:    10,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func bearerToken(t *testing.T, ownerID string) string {
	t.Helper()
	claims := &jwt.RegisteredClaims{
		Subject:   ownerID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	payload, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return resp, payload
}

func TestHealthzIsPublic(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doRequest(t, srv, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAPIRejectsMissingToken(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doRequest(t, srv, http.MethodGet, "/api/bookmarks", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, "owner-1")

	// First listing provisions the default categories.
	resp, payload := doRequest(t, srv, http.MethodGet, "/api/categories", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("categories status = %d: %s", resp.StatusCode, payload)
	}
	var catsResp struct {
		Categories []*domain.Category `json:"categories"`
	}
	if err := json.Unmarshal(payload, &catsResp); err != nil {
		t.Fatalf("bad categories payload: %v", err)
	}
	if len(catsResp.Categories) != len(domain.DefaultCategorySeeds) {
		t.Fatalf("got %d categories, want the %d defaults", len(catsResp.Categories), len(domain.DefaultCategorySeeds))
	}

	// Create.
	resp, payload = doRequest(t, srv, http.MethodPost, "/api/bookmarks", token,
		map[string]string{"url": "https://one.example"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, payload)
	}
	var created domain.Bookmark
	if err := json.Unmarshal(payload, &created); err != nil {
		t.Fatalf("bad create payload: %v", err)
	}
	if created.ID == "" || created.Title != "Stub Title" {
		t.Fatalf("created = %+v", created)
	}

	// Toggle favorite.
	resp, payload = doRequest(t, srv, http.MethodPost, "/api/bookmarks/"+created.ID+"/favorite", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("favorite status = %d: %s", resp.StatusCode, payload)
	}
	var updated domain.Bookmark
	if err := json.Unmarshal(payload, &updated); err != nil {
		t.Fatalf("bad favorite payload: %v", err)
	}
	if !updated.IsFavorite {
		t.Fatal("favorite flag not set")
	}

	// Filtered listing.
	resp, payload = doRequest(t, srv, http.MethodGet, "/api/bookmarks?tab=favorites", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list struct {
		Bookmarks []*domain.Bookmark `json:"bookmarks"`
		Total     int                `json:"total"`
	}
	if err := json.Unmarshal(payload, &list); err != nil {
		t.Fatalf("bad list payload: %v", err)
	}
	if len(list.Bookmarks) != 1 || list.Total != 1 {
		t.Fatalf("favorites list = %+v", list)
	}

	// Delete.
	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/bookmarks/"+created.ID, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/bookmarks/"+created.ID, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestBulkEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, "owner-1")

	var ids []string
	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		resp, payload := doRequest(t, srv, http.MethodPost, "/api/bookmarks", token, map[string]string{"url": u})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status = %d", resp.StatusCode)
		}
		var b domain.Bookmark
		if err := json.Unmarshal(payload, &b); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		ids = append(ids, b.ID)
	}

	resp, payload := doRequest(t, srv, http.MethodPost, "/api/bookmarks/bulk", token,
		map[string]any{"action": "setTags", "ids": ids[:2], "tags": []string{"batch"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("bulk status = %d: %s", resp.StatusCode, payload)
	}

	resp, payload = doRequest(t, srv, http.MethodGet, "/api/bookmarks?tag=batch", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var list struct {
		Bookmarks []*domain.Bookmark `json:"bookmarks"`
	}
	if err := json.Unmarshal(payload, &list); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if len(list.Bookmarks) != 2 {
		t.Fatalf("tagged bookmarks = %d, want 2", len(list.Bookmarks))
	}

	resp, _ = doRequest(t, srv, http.MethodPost, "/api/bookmarks/bulk", token,
		map[string]any{"action": "explode", "ids": ids})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown action status = %d, want 400", resp.StatusCode)
	}
}

func TestImportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, "owner-1")

	payload := `[{"url": "https://a.example", "title": "A"}, {"url": "ftp://skip.example"}]`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/bookmarks/import", strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("import status = %d: %s", resp.StatusCode, body)
	}
	var result struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("imported = %d, want 1 (non-http URL dropped)", result.Imported)
	}
}

func TestStatsAndFeed(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, "owner-1")

	resp, payload := doRequest(t, srv, http.MethodPost, "/api/bookmarks", token, map[string]string{"url": "https://a.example"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	_ = payload

	resp, payload = doRequest(t, srv, http.MethodGet, "/api/stats", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats status = %d", resp.StatusCode)
	}
	var overview struct {
		TotalBookmarks int    `json:"totalBookmarks"`
		WeeklyGrowth   string `json:"weeklyGrowth"`
	}
	if err := json.Unmarshal(payload, &overview); err != nil {
		t.Fatalf("bad stats payload: %v", err)
	}
	if overview.TotalBookmarks != 1 || overview.WeeklyGrowth != "+100" {
		t.Fatalf("overview = %+v", overview)
	}

	resp, payload = doRequest(t, srv, http.MethodGet, "/api/stats/calendar", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("calendar status = %d", resp.StatusCode)
	}
	var cal struct {
		Weeks [][]int `json:"weeks"`
	}
	if err := json.Unmarshal(payload, &cal); err != nil {
		t.Fatalf("bad calendar payload: %v", err)
	}
	if len(cal.Weeks) != 52 {
		t.Fatalf("weeks = %d, want 52", len(cal.Weeks))
	}

	resp, payload = doRequest(t, srv, http.MethodGet, "/api/feed", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("feed status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "rss") {
		t.Fatalf("feed content type = %q", ct)
	}
	if !strings.Contains(string(payload), "https://a.example") {
		t.Fatal("feed does not contain the bookmark")
	}
}

func TestSessionTeardown(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, "owner-1")

	resp, _ := doRequest(t, srv, http.MethodGet, "/api/bookmarks", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	resp, _ = doRequest(t, srv, http.MethodDelete, "/api/session", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("teardown status = %d", resp.StatusCode)
	}
	// The collection is rebuilt transparently on the next request.
	resp, _ = doRequest(t, srv, http.MethodGet, "/api/bookmarks", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list after teardown status = %d", resp.StatusCode)
	}
}
