package models

import (
	"time"
)

// ViewLog rows are append-only: created exactly once per accepted view and
// never updated or deleted afterwards.
type ViewLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MediaID    string    `json:"media_id" gorm:"size:36;index;not null"`
	ViewedByIP string    `json:"viewed_by_ip" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"index;not null"`
}
