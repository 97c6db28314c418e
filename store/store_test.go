package store

import (
	"testing"
	"time"

	"github.com/spf13/afero"

	"movielist-cli/model"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	s := New(afero.NewMemMapFs(), "/cache", "/config", 10*time.Minute)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestCatalogCache_Freshness(t *testing.T) {
	s, now := newTestStore(t)

	items, fresh, err := s.LoadCatalog()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if items != nil || fresh {
		t.Fatalf("expected empty cache, got %+v fresh=%v", items, fresh)
	}

	if err := s.SaveCatalog([]model.CatalogItem{{ID: 1, Title: "Alpha", Type: model.TypeMovie}}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	items, fresh, err = s.LoadCatalog()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !fresh || len(items) != 1 || items[0].Title != "Alpha" {
		t.Fatalf("expected fresh cache, got %+v fresh=%v", items, fresh)
	}

	*now = now.Add(11 * time.Minute)
	items, fresh, err = s.LoadCatalog()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fresh || len(items) != 1 {
		t.Fatalf("expected stale cache with data, got %+v fresh=%v", items, fresh)
	}
}

func TestCatalogCache_CorruptFile(t *testing.T) {
	s, _ := newTestStore(t)
	if err := afero.WriteFile(s.fs, "/cache/catalog.json", []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := s.LoadCatalog(); err == nil {
		t.Fatal("expected error for corrupt cache")
	}
}

func TestRememberViewed_MostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)

	for id := 1; id <= 10; id++ {
		if err := s.RememberViewed(model.CatalogItem{ID: id, Title: "item"}); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	if err := s.RememberViewed(model.CatalogItem{ID: 5, Title: "again"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	recents, err := s.LoadRecent()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recents) != maxRecentEntries {
		t.Fatalf("expected %d entries, got %d", maxRecentEntries, len(recents))
	}
	if recents[0].ID != 5 || recents[0].Title != "again" {
		t.Fatalf("expected id 5 first, got %+v", recents[0])
	}
	seen := map[int]bool{}
	for _, r := range recents {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
	if !s.RecentIDs()[10] {
		t.Fatal("expected id 10 to be recent")
	}
}

func TestRememberViewed_InvalidInput(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.RememberViewed(model.CatalogItem{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}
