package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amritansu-Adi/klantroef/models"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()

	first := models.User{Email: "op@example.com", PasswordHash: "hash-1"}
	require.NoError(t, s.CreateUser(&first))
	assert.NotZero(t, first.ID)

	second := models.User{Email: "op@example.com", PasswordHash: "hash-2"}
	assert.ErrorIs(t, s.CreateUser(&second), ErrDuplicate)

	// The original credential record is untouched.
	got, err := s.UserByEmail("op@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", got.PasswordHash)
}

func TestUserByEmailNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.UserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetLifecycle(t *testing.T) {
	s := NewMemoryStore()
	asset := models.MediaAsset{ID: "asset-1", Title: "Launch", Type: models.MediaVideo, FileURL: "https://cdn.example.com/v1.mp4"}
	require.NoError(t, s.CreateAsset(&asset))

	exists, err := s.AssetExists("asset-1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.AssetExists("asset-2")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := s.AssetByID("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)

	_, err = s.AssetByID("asset-2")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpdateAssetFileURL("asset-1", "asset-1/v1.mp4"))
	got, err = s.AssetByID("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "asset-1/v1.mp4", got.FileURL)

	assert.ErrorIs(t, s.UpdateAssetFileURL("asset-2", "x"), ErrNotFound)
}

func TestAppendViewIsScopedAndCopied(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendView(&models.ViewLog{MediaID: "asset-1", ViewedByIP: "10.0.0.1", Timestamp: at}))
	require.NoError(t, s.AppendView(&models.ViewLog{MediaID: "asset-2", ViewedByIP: "10.0.0.2", Timestamp: at}))

	views, err := s.ViewsByAsset("asset-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "10.0.0.1", views[0].ViewedByIP)

	// Mutating the returned slice must not touch the stored log.
	views[0].ViewedByIP = "tampered"
	again, err := s.ViewsByAsset("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", again[0].ViewedByIP)
}

func TestBumpStatsAndTopStats(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.BumpStats("asset-1", at))
	require.NoError(t, s.BumpStats("asset-1", at.Add(time.Hour)))
	require.NoError(t, s.BumpStats("asset-2", at))

	top, err := s.TopStats(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "asset-1", top[0].MediaID)
	assert.Equal(t, int64(2), top[0].TotalViews)
	require.NotNil(t, top[0].LastViewedAt)
	assert.True(t, top[0].LastViewedAt.Equal(at.Add(time.Hour)))

	limited, err := s.TopStats(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
