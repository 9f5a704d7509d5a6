package dependency

import (
	"hotspot-portal-svc/src/clients"
	"hotspot-portal-svc/src/internal/activity"
	"hotspot-portal-svc/src/internal/cache"
	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/hotspot"
	"hotspot-portal-svc/src/internal/portal"
	"hotspot-portal-svc/src/internal/session"
	"hotspot-portal-svc/src/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Manager struct {
	Router        *gin.Engine
	Config        *config.Configuration
	Redis         *clients.RedisClient
	Store         storage.Store
	Controller    hotspot.Controller
	Events        activity.Service
	Tracker       session.Tracker
	Sweeper       *session.Sweeper
	CacheService  cache.Service
	PortalHandler portal.Handler
}

// NewDependencyManager wires the portal components together. redisClient
// may be nil; the cache service then disables itself.
func NewDependencyManager(router *gin.Engine,
	redisClient *clients.RedisClient,
	events activity.Service,
	cfg *config.Configuration) *Manager {

	var redisConn *redis.Client
	if redisClient != nil {
		redisConn = redisClient.Client
	}

	cacheService := cache.NewCacheService(redisConn, cfg)
	store := storage.NewStore(&cfg.Storage)
	controller := hotspot.NewController(&cfg.Hotspot)
	tracker := session.NewTracker()
	sweeper := session.NewSweeper(tracker, controller, events, &cfg.Sessions)
	portalHandler := portal.NewHandler(cfg, store, controller, events, tracker, cacheService)

	return &Manager{
		Router:        router,
		Config:        cfg,
		Redis:         redisClient,
		Store:         store,
		Controller:    controller,
		Events:        events,
		Tracker:       tracker,
		Sweeper:       sweeper,
		CacheService:  cacheService,
		PortalHandler: portalHandler,
	}
}
