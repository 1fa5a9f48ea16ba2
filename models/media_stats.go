package models

import (
	"time"
)

// MediaStats is a rollup maintained asynchronously by the view processor.
// It backs the popular-media listing only; the analytics endpoint always
// recomputes from the view log.
type MediaStats struct {
	MediaID      string     `json:"media_id" gorm:"primaryKey;size:36"`
	TotalViews   int64      `json:"total_views" gorm:"default:0"`
	LastViewedAt *time.Time `json:"last_viewed_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
