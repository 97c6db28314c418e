package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"movielist-cli/model"
)

const (
	appDir           = "movielist-cli"
	catalogFile      = "catalog.json"
	recentFile       = "recent.json"
	DefaultTTL       = 10 * time.Minute
	maxRecentEntries = 8
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

type RecentItem struct {
	ID       int            `json:"id"`
	Title    string         `json:"title"`
	Type     model.ItemType `json:"type"`
	ViewedAt time.Time      `json:"viewed_at"`
}

type recentHistory struct {
	Items []RecentItem `json:"items"`
}

// Store keeps the catalog snapshot and recently viewed items on disk.
type Store struct {
	fs        afero.Fs
	cacheDir  string
	configDir string
	ttl       time.Duration
	now       func() time.Time
}

func New(fs afero.Fs, cacheDir string, configDir string, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		fs:        fs,
		cacheDir:  cacheDir,
		configDir: configDir,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Default uses the OS filesystem and the user's cache and config directories.
func Default(ttl time.Duration) (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return New(afero.NewOsFs(), filepath.Join(cacheDir, appDir), filepath.Join(configDir, appDir), ttl), nil
}

// LoadCatalog returns the cached collection and whether it is still fresh.
func (s *Store) LoadCatalog() ([]model.CatalogItem, bool, error) {
	cache, err := loadJSON[cacheEnvelope[[]model.CatalogItem]](s.fs, filepath.Join(s.cacheDir, catalogFile))
	if err != nil {
		return nil, false, err
	}
	if cache.UpdatedAt.IsZero() {
		return nil, false, nil
	}
	return cache.Data, s.now().Sub(cache.UpdatedAt) <= s.ttl, nil
}

func (s *Store) SaveCatalog(items []model.CatalogItem) error {
	cache := cacheEnvelope[[]model.CatalogItem]{
		UpdatedAt: s.now(),
		Data:      items,
	}
	return saveJSON(s.fs, filepath.Join(s.cacheDir, catalogFile), cache)
}

func (s *Store) LoadRecent() ([]RecentItem, error) {
	history, err := loadJSON[recentHistory](s.fs, filepath.Join(s.configDir, recentFile))
	if err != nil {
		return nil, err
	}
	return history.Items, nil
}

// RememberViewed moves item to the front of the recent list.
func (s *Store) RememberViewed(item model.CatalogItem) error {
	if item.ID <= 0 {
		return errors.New("item id is required")
	}
	history, _ := s.LoadRecent()
	next := []RecentItem{{ID: item.ID, Title: item.Title, Type: item.Type, ViewedAt: s.now()}}
	for _, existing := range history {
		if existing.ID == item.ID {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentEntries {
			break
		}
	}
	return saveJSON(s.fs, filepath.Join(s.configDir, recentFile), recentHistory{Items: next})
}

// RecentIDs is a lookup set of recently viewed ids.
func (s *Store) RecentIDs() map[int]bool {
	out := map[int]bool{}
	recents, err := s.LoadRecent()
	if err != nil {
		return out
	}
	for _, r := range recents {
		out[r.ID] = true
	}
	return out
}

func loadJSON[T any](fs afero.Fs, path string) (T, error) {
	var out T
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

func saveJSON[T any](fs afero.Fs, path string, data T) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, payload, 0o644)
}
