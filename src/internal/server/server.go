package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotspot-portal-svc/src/clients"
	"hotspot-portal-svc/src/internal/activity"
	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/dependency"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg  *config.Configuration
	deps *dependency.Manager
}

func New(cfg *config.Configuration) (*Server, error) {
	gin.SetMode(ginMode(cfg.Server.Mode))

	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	events, err := activity.NewService(&cfg.Activity)
	if err != nil {
		return nil, err
	}

	var redisClient *clients.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = clients.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, stats caching disabled")
			redisClient = nil
		}
	}

	deps := dependency.NewDependencyManager(router, redisClient, events, cfg)
	if err := deps.Store.EnsureDir(); err != nil {
		return nil, err
	}
	SetupRoutes(deps)

	return &Server{cfg: cfg, deps: deps}, nil
}

// Start runs the portal until SIGINT/SIGTERM, then shuts the listener,
// sweeper, activity logs and redis connection down in order.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s.deps.Sweeper.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.deps.Router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Portal listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	s.deps.Sweeper.Stop()

	if err := s.deps.Events.Close(); err != nil {
		log.WithError(err).Error("Failed to close activity logs")
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			log.WithError(err).Error("Failed to close redis connection")
		}
	}

	log.Info("Portal stopped")
	return nil
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}
