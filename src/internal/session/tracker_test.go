package session

import (
	"testing"
	"time"

	"hotspot-portal-svc/src/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackerAt(now *time.Time) *tracker {
	return &tracker{
		sessions: make(map[string]*models.ClientSession),
		now:      func() time.Time { return *now },
	}
}

func TestTouchCreatesAndRefreshes(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := newTrackerAt(&now)

	tr.Touch("192.168.4.10")

	s, err := tr.Get("192.168.4.10")
	require.NoError(t, err)
	assert.Equal(t, now, s.ConnectedAt)
	assert.Equal(t, now, s.LastActivity)

	now = now.Add(10 * time.Minute)
	tr.Touch("192.168.4.10")

	s, err = tr.Get("192.168.4.10")
	require.NoError(t, err)
	assert.Equal(t, now.Add(-10*time.Minute), s.ConnectedAt, "ConnectedAt must not move on refresh")
	assert.Equal(t, now, s.LastActivity)
	assert.Equal(t, 1, tr.Active(), "at most one entry per IP")
}

func TestGetUnknownIP(t *testing.T) {
	tr := NewTracker()

	_, err := tr.Get("10.0.0.1")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestRemove(t *testing.T) {
	tr := NewTracker()
	tr.Touch("10.0.0.1")
	tr.Touch("10.0.0.2")

	tr.Remove("10.0.0.1")

	assert.Equal(t, 1, tr.Active())
	_, err := tr.Get("10.0.0.1")
	assert.Error(t, err)
}

func TestExpiredSnapshotsIdleSessions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := newTrackerAt(&now)

	tr.Touch("10.0.0.1")
	now = now.Add(31 * time.Minute)
	tr.Touch("10.0.0.2") // fresh

	expired := tr.Expired(30 * time.Minute)

	assert.Equal(t, []string{"10.0.0.1"}, expired)
	// Snapshot only; nothing removed yet
	assert.Equal(t, 2, tr.Active())
}

func TestExpiredRefreshedSessionSurvives(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr := newTrackerAt(&now)

	tr.Touch("10.0.0.1")
	now = now.Add(29 * time.Minute)
	tr.Touch("10.0.0.1")
	now = now.Add(29 * time.Minute)

	assert.Empty(t, tr.Expired(30*time.Minute))
}

func TestGetReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Touch("10.0.0.1")

	s, err := tr.Get("10.0.0.1")
	require.NoError(t, err)
	s.LastActivity = time.Time{}

	fresh, err := tr.Get("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, fresh.LastActivity.IsZero(), "mutating the returned session must not touch the store")
}
