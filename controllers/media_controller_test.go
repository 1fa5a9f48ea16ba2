package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amritansu-Adi/klantroef/models"
)

func TestCreateMedia(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/media", reqOptions{
		authHeader: env.sessionHeader(t),
		body: map[string]string{
			"title":    "Launch Day",
			"type":     "audio",
			"file_url": "https://cdn.example.com/launch.mp3",
		},
	})
	requireStatus(t, rec, http.StatusCreated)

	var created models.MediaAsset
	decodeJSON(t, rec, &created)
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch Day", created.Title)
	assert.Equal(t, models.MediaAudio, created.Type)
	assert.Equal(t, "https://cdn.example.com/launch.mp3", created.FileURL)

	stored, err := env.store.AssetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, stored.Title)
}

func TestCreateMediaValidatesPayload(t *testing.T) {
	env := newTestEnv(t)
	header := env.sessionHeader(t)

	for name, payload := range map[string]map[string]string{
		"missing title":    {"type": "video", "file_url": "https://cdn.example.com/a.mp4"},
		"bad type":         {"title": "a", "type": "podcast", "file_url": "https://cdn.example.com/a.mp4"},
		"missing file_url": {"title": "a", "type": "video"},
		"bad file_url":     {"title": "a", "type": "video", "file_url": "not a url"},
	} {
		rec := env.do(t, http.MethodPost, "/media", reqOptions{authHeader: header, body: payload})
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestCreateMediaRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{
		"title":    "Launch Day",
		"type":     "video",
		"file_url": "https://cdn.example.com/launch.mp4",
	}

	rec := env.do(t, http.MethodPost, "/media", reqOptions{body: body})
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = env.do(t, http.MethodPost, "/media", reqOptions{body: body, authHeader: "Bearer garbage"})
	requireStatus(t, rec, http.StatusForbidden)
}

func TestPopularMediaOrdersByViews(t *testing.T) {
	env := newTestEnv(t)
	quiet := env.createAsset(t, "quiet")
	busy := env.createAsset(t, "busy")

	now := time.Now().UTC()
	require.NoError(t, env.store.BumpStats(quiet.ID, now))
	for i := 0; i < 3; i++ {
		require.NoError(t, env.store.BumpStats(busy.ID, now))
	}

	rec := env.do(t, http.MethodGet, "/media/popular", reqOptions{
		authHeader: env.sessionHeader(t),
	})
	requireStatus(t, rec, http.StatusOK)

	var body struct {
		Media []struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			TotalViews int64  `json:"total_views"`
		} `json:"media"`
	}
	decodeJSON(t, rec, &body)
	require.Len(t, body.Media, 2)
	assert.Equal(t, busy.ID, body.Media[0].ID)
	assert.Equal(t, int64(3), body.Media[0].TotalViews)
	assert.Equal(t, quiet.ID, body.Media[1].ID)
}

func TestUploadFileWithoutStorageConfigured(t *testing.T) {
	env := newTestEnv(t)
	asset := env.createAsset(t, "launch")

	rec := env.do(t, http.MethodPost, "/media/"+asset.ID+"/upload", reqOptions{
		authHeader: env.sessionHeader(t),
	})
	requireStatus(t, rec, http.StatusInternalServerError)
	assert.Contains(t, rec.Body.String(), "object storage is not configured")
}
