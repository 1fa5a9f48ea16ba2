package store

import (
	"errors"
	"time"

	"github.com/Amritansu-Adi/klantroef/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type UserStore interface {
	// CreateUser returns ErrDuplicate when the email is already registered.
	CreateUser(user *models.User) error
	UserByEmail(email string) (models.User, error)
}

type AssetStore interface {
	CreateAsset(asset *models.MediaAsset) error
	AssetByID(id string) (models.MediaAsset, error)
	AssetExists(id string) (bool, error)
	UpdateAssetFileURL(id, fileURL string) error
	AssetsByIDs(ids []string) ([]models.MediaAsset, error)
}

// ViewLogStore is append-only: entries are never mutated or deleted.
type ViewLogStore interface {
	AppendView(entry *models.ViewLog) error
	ViewsByAsset(mediaID string) ([]models.ViewLog, error)
}

type StatsStore interface {
	BumpStats(mediaID string, viewedAt time.Time) error
	TopStats(limit int) ([]models.MediaStats, error)
}
