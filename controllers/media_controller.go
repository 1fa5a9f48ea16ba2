package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/platform/cache"
	"github.com/Amritansu-Adi/klantroef/platform/storage"
	"github.com/Amritansu-Adi/klantroef/store"
)

type MediaController struct {
	assets store.AssetStore
	stats  store.StatsStore
	files  *storage.MediaStorage
	cache  *cache.Cache
}

func NewMediaController(assets store.AssetStore, stats store.StatsStore, files *storage.MediaStorage, c *cache.Cache) *MediaController {
	return &MediaController{assets: assets, stats: stats, files: files, cache: c}
}

type createMediaRequest struct {
	Title   string `json:"title" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=video audio"`
	FileURL string `json:"file_url" binding:"required,url"`
}

func (mc *MediaController) CreateMedia(c *gin.Context) {
	var req createMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, type (video|audio) and file_url are required"})
		return
	}

	asset := models.MediaAsset{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Type:      models.MediaType(req.Type),
		FileURL:   req.FileURL,
		CreatedAt: time.Now().UTC(),
	}
	if err := mc.assets.CreateAsset(&asset); err != nil {
		log.Error().Err(err).Msg("could not create media asset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create media"})
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// UploadFile stores the asset's media file in object storage and rebinds
// file_url to the stored object key.
func (mc *MediaController) UploadFile(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	exists, err := mc.assets.AssetExists(id)
	if err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("asset lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload file"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	if mc.files == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "object storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%s", id, filepath.Base(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if err := mc.files.UploadFile(objectName, file, header.Size, contentType); err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("upload to object storage failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload file"})
		return
	}

	if err := mc.assets.UpdateAssetFileURL(id, objectName); err != nil {
		log.Error().Err(err).Str("media_id", id).Msg("could not rebind file url")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file uploaded", "file_url": objectName})
}

// PopularMedia lists the most viewed assets from the async stats rollup, with
// a short redis cache in front of the query.
func (mc *MediaController) PopularMedia(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("media:popular:%d", limit)
	if cached, ok := mc.cache.Get(cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	stats, err := mc.stats.TopStats(limit)
	if err != nil {
		log.Error().Err(err).Msg("could not load media stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load popular media"})
		return
	}

	ids := make([]string, 0, len(stats))
	for _, st := range stats {
		ids = append(ids, st.MediaID)
	}
	assets, err := mc.assets.AssetsByIDs(ids)
	if err != nil {
		log.Error().Err(err).Msg("could not load media assets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load popular media"})
		return
	}

	assetByID := make(map[string]models.MediaAsset, len(assets))
	for _, asset := range assets {
		assetByID[asset.ID] = asset
	}

	results := make([]gin.H, 0, len(stats))
	for _, st := range stats {
		asset, ok := assetByID[st.MediaID]
		if !ok {
			continue
		}
		results = append(results, gin.H{
			"id":             asset.ID,
			"title":          asset.Title,
			"type":           asset.Type,
			"total_views":    st.TotalViews,
			"last_viewed_at": st.LastViewedAt,
		})
	}

	payload, err := json.Marshal(gin.H{"media": results})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load popular media"})
		return
	}
	mc.cache.Set(cacheKey, string(payload), time.Minute)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
