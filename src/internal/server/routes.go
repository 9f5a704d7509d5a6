package server

import (
	"os"
	"time"

	"hotspot-portal-svc/src/internal/dependency"
	"hotspot-portal-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router

	router.Use(middleware.ResolveClientIP())
	router.Use(middleware.LimitBodySize(deps.Config.Server.MaxUploadBytes))
	router.Use(middleware.TrackActivity(deps.Tracker))

	setupHealthEndpoint(deps)
	setupPortalRoutes(router, deps)
}

func setupHealthEndpoint(deps *dependency.Manager) {
	router := deps.Router
	cfg := deps.Config

	router.GET("/health", func(c *gin.Context) {
		log.Info("Health check endpoint requested")

		uploadsStatus := "ok"
		if _, err := os.Stat(cfg.Storage.UploadDir); err != nil {
			uploadsStatus = "error: " + err.Error()
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "ok"
			if err := deps.Redis.Client.Ping(c.Request.Context()).Err(); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"uploads":   uploadsStatus,
			"redis":     redisStatus,
			"sessions":  deps.Tracker.Active(),
			"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	})
}

func setupPortalRoutes(router *gin.Engine, deps *dependency.Manager) {
	handler := deps.PortalHandler

	router.GET("/", handler.Index)
	router.GET("/upload", handler.UploadPage)
	router.POST("/upload", handler.Upload)
	router.GET("/disconnect", handler.Disconnect)
	router.GET("/gallery", handler.Gallery)
	router.GET("/image/:filename", handler.Image)
	router.GET("/stats", handler.Stats)
	router.GET("/status", handler.Status)
}
