package store

import (
	"sort"
	"sync"
	"time"

	"github.com/Amritansu-Adi/klantroef/models"
)

// MemoryStore is a mutex-guarded in-memory implementation of every store
// interface, used by tests and as a zero-dependency fallback.
type MemoryStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]models.User
	assets map[string]models.MediaAsset
	views  map[string][]models.ViewLog
	stats  map[string]models.MediaStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  map[string]models.User{},
		assets: map[string]models.MediaAsset{},
		views:  map[string][]models.ViewLog{},
		stats:  map[string]models.MediaStats{},
	}
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return ErrDuplicate
	}
	s.nextID++
	user.ID = s.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.Email] = *user
	return nil
}

func (s *MemoryStore) UserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) CreateAsset(asset *models.MediaAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}
	s.assets[asset.ID] = *asset
	return nil
}

func (s *MemoryStore) AssetByID(id string) (models.MediaAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[id]
	if !ok {
		return models.MediaAsset{}, ErrNotFound
	}
	return asset, nil
}

func (s *MemoryStore) AssetExists(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.assets[id]
	return ok, nil
}

func (s *MemoryStore) UpdateAssetFileURL(id, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[id]
	if !ok {
		return ErrNotFound
	}
	asset.FileURL = fileURL
	s.assets[id] = asset
	return nil
}

func (s *MemoryStore) AssetsByIDs(ids []string) ([]models.MediaAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := make([]models.MediaAsset, 0, len(ids))
	for _, id := range ids {
		if asset, ok := s.assets[id]; ok {
			assets = append(assets, asset)
		}
	}
	return assets, nil
}

func (s *MemoryStore) AppendView(entry *models.ViewLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	entry.ID = s.nextID
	s.views[entry.MediaID] = append(s.views[entry.MediaID], *entry)
	return nil
}

func (s *MemoryStore) ViewsByAsset(mediaID string) ([]models.ViewLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]models.ViewLog, len(s.views[mediaID]))
	copy(entries, s.views[mediaID])
	return entries, nil
}

func (s *MemoryStore) BumpStats(mediaID string, viewedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[mediaID]
	if !ok {
		stats = models.MediaStats{MediaID: mediaID}
	}
	stats.TotalViews++
	if stats.LastViewedAt == nil || viewedAt.After(*stats.LastViewedAt) {
		at := viewedAt
		stats.LastViewedAt = &at
	}
	stats.UpdatedAt = time.Now()
	s.stats[mediaID] = stats
	return nil
}

func (s *MemoryStore) TopStats(limit int) ([]models.MediaStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.MediaStats, 0, len(s.stats))
	for _, st := range s.stats {
		all = append(all, st)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TotalViews > all[j].TotalViews })
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
