package session

import (
	"sync"
	"time"

	"hotspot-portal-svc/src/internal/models"
)

// Tracker owns the in-memory map of connected clients. All access goes
// through synchronized operations; the map itself is never exposed.
// Sessions do not survive a restart.
type Tracker interface {
	Touch(ip string)
	Get(ip string) (*models.ClientSession, error)
	Remove(ip string)
	Active() int
	Expired(idleThreshold time.Duration) []string
}

type tracker struct {
	mu       sync.Mutex
	sessions map[string]*models.ClientSession
	now      func() time.Time
}

func NewTracker() Tracker {
	return &tracker{
		sessions: make(map[string]*models.ClientSession),
		now:      time.Now,
	}
}

// Touch creates the session on first sight and refreshes last activity on
// every call. At most one entry exists per IP.
func (t *tracker) Touch(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if s, ok := t.sessions[ip]; ok {
		s.LastActivity = now
		return
	}
	t.sessions[ip] = &models.ClientSession{
		IP:           ip,
		ConnectedAt:  now,
		LastActivity: now,
	}
}

func (t *tracker) Get(ip string) (*models.ClientSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[ip]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	snapshot := *s
	return &snapshot, nil
}

func (t *tracker) Remove(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, ip)
}

func (t *tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Expired snapshots the IPs idle longer than the threshold. The caller
// kicks and removes them outside the lock, so a slow external script never
// blocks request handlers on this mutex.
func (t *tracker) Expired(idleThreshold time.Duration) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-idleThreshold)
	var expired []string
	for ip, s := range t.sessions {
		if s.LastActivity.Before(cutoff) {
			expired = append(expired, ip)
		}
	}
	return expired
}
