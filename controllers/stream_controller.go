package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/pkg/token"
	"github.com/Amritansu-Adi/klantroef/store"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

type StreamController struct {
	assets store.AssetStore
	views  store.ViewLogStore
	tokens *token.Service
}

func NewStreamController(assets store.AssetStore, views store.ViewLogStore, tokens *token.Service) *StreamController {
	return &StreamController{assets: assets, views: views, tokens: tokens}
}

// StreamURL mints a short-lived stream token for an asset. Issuing a link also
// records one view for the requesting IP: the upstream product counts "asset
// was linked" as "asset was viewed", and that coupling is kept as-is.
func (sc *StreamController) StreamURL(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	asset, err := sc.assets.AssetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		log.Error().Err(err).Str("media_id", id).Msg("asset lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue stream url"})
		return
	}

	entry := models.ViewLog{
		MediaID:    asset.ID,
		ViewedByIP: c.ClientIP(),
		Timestamp:  time.Now().UTC(),
	}
	if err := sc.views.AppendView(&entry); err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("could not record link view")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue stream url"})
		return
	}

	signed, err := sc.tokens.IssueStream(asset.ID, asset.FileURL)
	if err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("could not sign stream token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue stream url"})
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, gin.H{
		"secure_stream_url": fmt.Sprintf("%s://%s/stream/%s", scheme, c.Request.Host, signed),
	})
}

// Redeem grants the file location bound into a still-valid stream token. The
// same token may be redeemed any number of times until it expires.
func (sc *StreamController) Redeem(c *gin.Context) {
	claims, err := sc.tokens.VerifyStream(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired stream token"})
		return
	}

	c.String(http.StatusOK, "Stream access granted for media %s: %s", claims.MediaID, claims.FileURL)
}
