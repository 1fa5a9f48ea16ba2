package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordViewAppendsOneEntry(t *testing.T) {
	env := newTestEnv(t)
	asset := env.createAsset(t, "launch")

	rec := env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{
		authHeader: env.sessionHeader(t),
		remoteAddr: "198.51.100.9:39000",
	})
	requireStatus(t, rec, http.StatusCreated)
	assert.Contains(t, rec.Body.String(), "view recorded")

	views, err := env.store.ViewsByAsset(asset.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, asset.ID, views[0].MediaID)
	assert.Equal(t, "198.51.100.9", views[0].ViewedByIP)
	assert.False(t, views[0].Timestamp.IsZero())
}

func TestRecordViewRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	asset := env.createAsset(t, "launch")

	rec := env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{})
	requireStatus(t, rec, http.StatusUnauthorized)

	rec = env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{
		authHeader: "Bearer garbage",
	})
	requireStatus(t, rec, http.StatusForbidden)

	views, err := env.store.ViewsByAsset(asset.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestRecordViewValidation(t *testing.T) {
	env := newTestEnv(t)
	header := env.sessionHeader(t)

	rec := env.do(t, http.MethodPost, "/media/not-a-uuid/view", reqOptions{authHeader: header})
	requireStatus(t, rec, http.StatusBadRequest)

	unknown := "b7a9c0de-0000-4000-8000-000000000001"
	rec = env.do(t, http.MethodPost, "/media/"+unknown+"/view", reqOptions{authHeader: header})
	requireStatus(t, rec, http.StatusNotFound)

	views, err := env.store.ViewsByAsset(unknown)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestRecordViewRateLimitPerIP(t *testing.T) {
	env := newTestEnv(t)
	asset := env.createAsset(t, "launch")
	header := env.sessionHeader(t)

	first := env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{
		authHeader: header,
		remoteAddr: "198.51.100.9:39000",
	})
	requireStatus(t, first, http.StatusCreated)

	// Second view from the same IP inside the window is throttled and must
	// not write a log entry.
	second := env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{
		authHeader: header,
		remoteAddr: "198.51.100.9:39001",
	})
	requireStatus(t, second, http.StatusTooManyRequests)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	other := env.do(t, http.MethodPost, "/media/"+asset.ID+"/view", reqOptions{
		authHeader: header,
		remoteAddr: "198.51.100.10:39000",
	})
	requireStatus(t, other, http.StatusCreated)

	views, err := env.store.ViewsByAsset(asset.ID)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
