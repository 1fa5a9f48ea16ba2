package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Amritansu-Adi/klantroef/models"
)

// GormStore implements every store interface on a shared gorm handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(user *models.User) error {
	var existing models.User
	err := s.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(user).Error
}

func (s *GormStore) UserByEmail(email string) (models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

func (s *GormStore) CreateAsset(asset *models.MediaAsset) error {
	return s.db.Create(asset).Error
}

func (s *GormStore) AssetByID(id string) (models.MediaAsset, error) {
	var asset models.MediaAsset
	err := s.db.Where("id = ?", id).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MediaAsset{}, ErrNotFound
	}
	return asset, err
}

func (s *GormStore) AssetExists(id string) (bool, error) {
	var count int64
	err := s.db.Model(&models.MediaAsset{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *GormStore) UpdateAssetFileURL(id, fileURL string) error {
	result := s.db.Model(&models.MediaAsset{}).Where("id = ?", id).Update("file_url", fileURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) AssetsByIDs(ids []string) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	err := s.db.Where("id IN ?", ids).Find(&assets).Error
	return assets, err
}

func (s *GormStore) AppendView(entry *models.ViewLog) error {
	return s.db.Create(entry).Error
}

func (s *GormStore) ViewsByAsset(mediaID string) ([]models.ViewLog, error) {
	var entries []models.ViewLog
	err := s.db.Where("media_id = ?", mediaID).Find(&entries).Error
	return entries, err
}

func (s *GormStore) BumpStats(mediaID string, viewedAt time.Time) error {
	var stats models.MediaStats
	err := s.db.Where("media_id = ?", mediaID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.MediaStats{
			MediaID:      mediaID,
			TotalViews:   1,
			LastViewedAt: &viewedAt,
		}
		return s.db.Create(&stats).Error
	}
	if err != nil {
		return err
	}
	stats.TotalViews++
	if stats.LastViewedAt == nil || viewedAt.After(*stats.LastViewedAt) {
		stats.LastViewedAt = &viewedAt
	}
	return s.db.Save(&stats).Error
}

func (s *GormStore) TopStats(limit int) ([]models.MediaStats, error) {
	var stats []models.MediaStats
	err := s.db.Order("total_views DESC").Limit(limit).Find(&stats).Error
	return stats, err
}
