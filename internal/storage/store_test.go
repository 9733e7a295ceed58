package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	tmpDir, err := os.MkdirTemp("", "store-test-*")
	if err != nil {
		t.Fatal(err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath, time.Second)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatal(err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

func TestStore_SaveAndGetBookmark(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	b := &Bookmark{
		Location: "/articles/42",
		Title:    "تقويم الأسنان الشفاف",
		Kind:     KindArticle,
	}

	if err := store.SaveBookmark(b); err != nil {
		t.Fatalf("failed to save bookmark: %v", err)
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set on save")
	}

	retrieved, err := store.GetBookmark("/articles/42")
	if err != nil {
		t.Fatalf("failed to get bookmark: %v", err)
	}
	if retrieved.Title != b.Title {
		t.Errorf("expected Title %s, got %s", b.Title, retrieved.Title)
	}
	if retrieved.Kind != KindArticle {
		t.Errorf("expected Kind %s, got %s", KindArticle, retrieved.Kind)
	}
	if !store.IsBookmarked("/articles/42") {
		t.Error("expected location to be bookmarked")
	}
}

func TestStore_GetBookmark_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetBookmark("/research/404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if store.IsBookmarked("/research/404") {
		t.Error("unexpected bookmark")
	}
}

func TestStore_SaveBookmark_EmptyLocation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	if err := store.SaveBookmark(&Bookmark{Title: "x"}); err == nil {
		t.Error("expected error for empty location")
	}
}

func TestStore_SaveBookmark_KeepsCreatedAt(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := store.SaveBookmark(&Bookmark{Location: "/articles?tag=implants", Kind: KindListing, CreatedAt: created}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveBookmark(&Bookmark{Location: "/articles?tag=implants", Title: "زراعة", Kind: KindListing}); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetBookmark("/articles?tag=implants")
	if err != nil {
		t.Fatal(err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("expected CreatedAt %v, got %v", created, got.CreatedAt)
	}
	if got.Title != "زراعة" {
		t.Errorf("expected updated title, got %s", got.Title)
	}
}

func TestStore_ListBookmarks_NewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour)
	locations := []string{"/articles/1", "/research/2", "/articles?search=x"}
	for i, loc := range locations {
		b := &Bookmark{Location: loc, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := store.SaveBookmark(b); err != nil {
			t.Fatal(err)
		}
	}

	bookmarks, err := store.ListBookmarks()
	if err != nil {
		t.Fatalf("failed to list bookmarks: %v", err)
	}
	if len(bookmarks) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(bookmarks))
	}
	if bookmarks[0].Location != "/articles?search=x" {
		t.Errorf("expected newest first, got %s", bookmarks[0].Location)
	}
	if bookmarks[2].Location != "/articles/1" {
		t.Errorf("expected oldest last, got %s", bookmarks[2].Location)
	}
}

func TestStore_ToggleAndDeleteBookmark(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	b := &Bookmark{Location: "/research/7", Kind: KindResearch}

	on, err := store.ToggleBookmark(b)
	if err != nil || !on {
		t.Fatalf("expected toggle on, got %v, %v", on, err)
	}
	on, err = store.ToggleBookmark(b)
	if err != nil || on {
		t.Fatalf("expected toggle off, got %v, %v", on, err)
	}
	if store.IsBookmarked("/research/7") {
		t.Error("bookmark should be gone")
	}

	if err := store.SaveBookmark(b); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteBookmark("/research/7"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if err := store.DeleteBookmark("/research/7"); err != nil {
		t.Errorf("deleting a missing bookmark should not fail: %v", err)
	}
}

func TestStore_LastLocation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	loc, err := store.LastLocation()
	if err != nil {
		t.Fatal(err)
	}
	if loc != "" {
		t.Errorf("expected empty last location, got %q", loc)
	}

	if err := store.SetLastLocation("/research?journal=Journal%20A"); err != nil {
		t.Fatal(err)
	}
	loc, err = store.LastLocation()
	if err != nil {
		t.Fatal(err)
	}
	if loc != "/research?journal=Journal%20A" {
		t.Errorf("unexpected last location %q", loc)
	}
}

func TestStore_ReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := NewStore(dbPath, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveBookmark(&Bookmark{Location: "/articles/9"}); err != nil {
		t.Fatal(err)
	}
	if err := store.SetLastLocation("/articles/9"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = NewStore(dbPath, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if !store.IsBookmarked("/articles/9") {
		t.Error("bookmark lost after reopen")
	}
	if loc, _ := store.LastLocation(); loc != "/articles/9" {
		t.Errorf("last location lost after reopen, got %q", loc)
	}
}
