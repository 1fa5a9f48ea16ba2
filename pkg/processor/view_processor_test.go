package processor

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amritansu-Adi/klantroef/models"
	"github.com/Amritansu-Adi/klantroef/store"
)

func TestHandleMessageBumpsStats(t *testing.T) {
	st := store.NewMemoryStore()
	p := &ViewStatsProcessor{stats: st}

	viewedAt := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(models.ViewMessage{
		MediaID:    "b7a9c0de-0000-4000-8000-000000000001",
		ViewedByIP: "203.0.113.1",
		Timestamp:  viewedAt,
	})
	require.NoError(t, err)

	require.NoError(t, p.handleMessage(payload))
	require.NoError(t, p.handleMessage(payload))

	top, err := st.TopStats(10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(2), top[0].TotalViews)
	require.NotNil(t, top[0].LastViewedAt)
	assert.True(t, top[0].LastViewedAt.Equal(viewedAt))
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	p := &ViewStatsProcessor{stats: store.NewMemoryStore()}
	assert.Error(t, p.handleMessage([]byte("not json")))
}
