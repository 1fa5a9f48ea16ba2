package models

import (
	"time"
)

// ViewMessage is the Kafka payload published for every accepted view.
type ViewMessage struct {
	MediaID    string    `json:"media_id"`
	ViewedByIP string    `json:"viewed_by_ip"`
	Timestamp  time.Time `json:"timestamp"`
}
