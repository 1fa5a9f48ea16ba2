package models

import (
	"time"
)

type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// MediaAsset is identified by a server-generated UUID string. The core only
// ever reads assets after creation; metadata is immutable except for FileURL,
// which an upload may rebind to an object-storage key.
type MediaAsset struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"not null"`
	Type      MediaType `json:"type" gorm:"not null"`
	FileURL   string    `json:"file_url" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
