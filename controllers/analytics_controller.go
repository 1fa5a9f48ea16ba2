package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/pkg/analytics"
	"github.com/Amritansu-Adi/klantroef/store"
)

type AnalyticsController struct {
	assets     store.AssetStore
	aggregator *analytics.Aggregator
}

func NewAnalyticsController(assets store.AssetStore, aggregator *analytics.Aggregator) *AnalyticsController {
	return &AnalyticsController{assets: assets, aggregator: aggregator}
}

func (ac *AnalyticsController) Summary(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	exists, err := ac.assets.AssetExists(id)
	if err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("asset lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute analytics"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	summary, err := ac.aggregator.Summarize(id)
	if err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("could not scan view log")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute analytics"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
