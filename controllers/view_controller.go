package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/store"
)

// ViewPublisher feeds accepted views into the async stats pipeline. Publishing
// is best effort; the view log row is the record of truth.
type ViewPublisher interface {
	PublishView(ctx context.Context, msg models.ViewMessage) error
}

type ViewController struct {
	assets    store.AssetStore
	views     store.ViewLogStore
	publisher ViewPublisher
}

// NewViewController accepts a nil publisher when Kafka is not wired.
func NewViewController(assets store.AssetStore, views store.ViewLogStore, publisher ViewPublisher) *ViewController {
	return &ViewController{assets: assets, views: views, publisher: publisher}
}

// Record appends exactly one view log entry per accepted call. Validation and
// the existence check run before the write, so no entry is created on any
// non-201 outcome.
func (vc *ViewController) Record(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	exists, err := vc.assets.AssetExists(id)
	if err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("asset lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record view"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	entry := models.ViewLog{
		MediaID:    id,
		ViewedByIP: c.ClientIP(),
		Timestamp:  time.Now().UTC(),
	}
	if err := vc.views.AppendView(&entry); err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("could not append view log")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record view"})
		return
	}

	if vc.publisher != nil {
		msg := models.ViewMessage{MediaID: entry.MediaID, ViewedByIP: entry.ViewedByIP, Timestamp: entry.Timestamp}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := vc.publisher.PublishView(ctx, msg); err != nil {
				log.Warn().Err(err).Str("media_id", msg.MediaID).Msg("could not publish view event")
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{"message": "view recorded"})
}
