package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/pkg/analytics"
	"github.com/Amritansu-Adi/klantroef/pkg/token"
	"github.com/Amritansu-Adi/klantroef/platform/middleware"
	"github.com/Amritansu-Adi/klantroef/store"
)

// testEnv wires the full route table against the in-memory store, mirroring
// the wiring in cmd/app.
type testEnv struct {
	store  *store.MemoryStore
	tokens *token.Service
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	tokens := token.NewService("test-session-secret", "test-stream-secret")
	limiter := middleware.NewMemoryLimiter(1, time.Minute)

	authCtrl := NewAuthController(st, tokens)
	mediaCtrl := NewMediaController(st, st, nil, nil)
	streamCtrl := NewStreamController(st, st, tokens)
	viewCtrl := NewViewController(st, st, nil)
	analyticsCtrl := NewAnalyticsController(st, analytics.NewAggregator(st))

	router := gin.New()
	router.GET("/health", HealthCheck)

	auth := router.Group("/auth")
	{
		auth.POST("/signup", authCtrl.Signup)
		auth.POST("/login", authCtrl.Login)
	}

	router.GET("/media/:id/stream-url", streamCtrl.StreamURL)
	router.GET("/stream/:token", streamCtrl.Redeem)

	media := router.Group("/media")
	media.Use(middleware.SessionAuth(tokens))
	{
		media.POST("", mediaCtrl.CreateMedia)
		media.GET("/popular", mediaCtrl.PopularMedia)
		media.POST("/:id/upload", mediaCtrl.UploadFile)
		media.POST("/:id/view", middleware.ViewRateLimit(limiter), viewCtrl.Record)
		media.GET("/:id/analytics", analyticsCtrl.Summary)
	}

	return &testEnv{store: st, tokens: tokens, router: router}
}

type reqOptions struct {
	body       any
	authHeader string
	remoteAddr string
}

func (e *testEnv) do(t *testing.T, method, path string, opts reqOptions) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if opts.body != nil {
		payload, err := json.Marshal(opts.body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if opts.authHeader != "" {
		req.Header.Set("Authorization", opts.authHeader)
	}
	if opts.remoteAddr != "" {
		req.RemoteAddr = opts.remoteAddr
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) sessionHeader(t *testing.T) string {
	t.Helper()
	signed, err := e.tokens.IssueSession(1, "operator@example.com")
	require.NoError(t, err)
	return "Bearer " + signed
}

func (e *testEnv) createAsset(t *testing.T, title string) models.MediaAsset {
	t.Helper()
	asset := models.MediaAsset{
		ID:      uuid.New().String(),
		Title:   title,
		Type:    models.MediaVideo,
		FileURL: "https://cdn.example.com/" + title + ".mp4",
	}
	require.NoError(t, e.store.CreateAsset(&asset))
	return asset
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst),
		"response body: %s", rec.Body.String())
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "response body: %s", rec.Body.String())
}
