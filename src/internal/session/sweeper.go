package session

import (
	"context"
	"time"

	"hotspot-portal-svc/src/internal/activity"
	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/hotspot"
	"hotspot-portal-svc/src/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	defaultSweepInterval = 5 * time.Minute
	defaultIdleTimeout   = 30 * time.Minute
)

// Sweeper periodically disconnects idle clients. It attempts an external
// kick for every expired session and removes the session regardless of the
// kick outcome; one failing IP never aborts the rest of the sweep.
type Sweeper struct {
	tracker    Tracker
	controller hotspot.Controller
	events     activity.Service
	interval   time.Duration
	idle       time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewSweeper(tracker Tracker, controller hotspot.Controller, events activity.Service, cfg *config.SessionsConfig) *Sweeper {
	interval := defaultSweepInterval
	if cfg.SweepIntervalMinutes > 0 {
		interval = time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	}
	idle := defaultIdleTimeout
	if cfg.IdleTimeoutMinutes > 0 {
		idle = time.Duration(cfg.IdleTimeoutMinutes) * time.Minute
	}

	return &Sweeper{
		tracker:    tracker,
		controller: controller,
		events:     events,
		interval:   interval,
		idle:       idle,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		logrus.WithFields(logrus.Fields{
			"interval":     s.interval,
			"idle_timeout": s.idle,
		}).Info("Idle session sweeper started")

		for {
			select {
			case <-ctx.Done():
				logrus.Info("Idle session sweeper stopped")
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Stop cancels the sweep loop and waits for it to exit.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// Sweep runs one pass. Exported so a cycle can be driven directly in tests.
func (s *Sweeper) Sweep(ctx context.Context) {
	expired := s.tracker.Expired(s.idle)
	if len(expired) == 0 {
		return
	}

	logrus.WithField("count", len(expired)).Info("Disconnecting idle sessions")

	for _, ip := range expired {
		if !s.controller.Kick(ctx, ip) {
			logrus.WithField("ip", ip).Warn("Idle kick failed, dropping session anyway")
		}
		s.events.Record(ip, models.ActionAutoDisconnected, "idle_timeout")
		s.events.RecordUserActivity(ip, models.ActionAutoDisconnected, "")
		s.tracker.Remove(ip)
	}
}
