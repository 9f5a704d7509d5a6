package portal

import (
	"context"
	"net/http"
	"time"

	"hotspot-portal-svc/src/internal/activity"
	"hotspot-portal-svc/src/internal/cache"
	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/hotspot"
	"hotspot-portal-svc/src/internal/middleware"
	"hotspot-portal-svc/src/internal/models"
	"hotspot-portal-svc/src/internal/session"
	"hotspot-portal-svc/src/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// uploadField is the repeated multipart field carrying the images.
const uploadField = "files[]"

type Handler interface {
	Index(c *gin.Context)
	UploadPage(c *gin.Context)
	Upload(c *gin.Context)
	Disconnect(c *gin.Context)
	Gallery(c *gin.Context)
	Image(c *gin.Context)
	Stats(c *gin.Context)
	Status(c *gin.Context)
}

type handler struct {
	config       *config.Configuration
	store        storage.Store
	controller   hotspot.Controller
	events       activity.Service
	tracker      session.Tracker
	cacheService cache.Service
}

func NewHandler(cfg *config.Configuration,
	store storage.Store,
	controller hotspot.Controller,
	events activity.Service,
	tracker session.Tracker,
	cacheService cache.Service) Handler {
	return &handler{
		config:       cfg,
		store:        store,
		controller:   controller,
		events:       events,
		tracker:      tracker,
		cacheService: cacheService,
	}
}

// Index is the captive-portal landing page: log the connection and send
// the client straight to the upload form.
func (h *handler) Index(c *gin.Context) {
	clientIP := middleware.ClientIP(c)

	h.events.Record(clientIP, models.ActionConnected, nil)
	h.events.RecordUserActivity(clientIP, models.ActionConnected, "")

	c.Redirect(http.StatusFound, "/upload")
}

func (h *handler) UploadPage(c *gin.Context) {
	clientIP := middleware.ClientIP(c)
	h.events.Record(clientIP, models.ActionViewingUploadPage, nil)

	c.HTML(http.StatusOK, "upload.html", gin.H{})
}

func (h *handler) Upload(c *gin.Context) {
	clientIP := middleware.ClientIP(c)

	form, err := c.MultipartForm()
	if err != nil {
		logrus.WithError(err).WithField("ip", clientIP).Warn("Multipart parse failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files selected"})
		return
	}

	// A file input with nothing selected arrives as a value part with an
	// empty filename, not a file part. That still counts as "field present"
	// and yields a zero-count success, matching the upload form contract.
	files, ok := form.File[uploadField]
	if !ok {
		if _, present := form.Value[uploadField]; !present {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No files selected"})
			return
		}
	}

	uploaded := make([]string, 0, len(files))
	for _, fh := range files {
		if fh.Filename == "" {
			continue
		}

		src, err := fh.Open()
		if err != nil {
			logrus.WithError(err).WithField("filename", fh.Filename).Error("Failed to open uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to store upload",
				"message": err.Error(),
			})
			return
		}

		stored, err := h.store.Save(src, fh.Filename)
		src.Close()
		if err != nil {
			logrus.WithError(err).WithField("filename", fh.Filename).Error("Failed to store uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to store upload",
				"message": err.Error(),
			})
			return
		}

		h.events.RecordUserActivity(clientIP, models.ActionUploaded, stored)
		uploaded = append(uploaded, storage.SanitizeFilename(fh.Filename))
	}

	h.events.Record(clientIP, models.ActionUploaded, gin.H{
		"count": len(uploaded),
		"files": uploaded,
	})

	logrus.WithFields(logrus.Fields{
		"ip":    clientIP,
		"count": len(uploaded),
	}).Info("Upload completed")

	c.HTML(http.StatusOK, "upload_success.html", gin.H{
		"files":          uploaded,
		"client_ip":      clientIP,
		"total_uploaded": len(uploaded),
	})
}

// Disconnect kicks the requesting client off the hotspot. A failed kick is
// a UX fallback, never an error status: the client gets manual
// instructions instead.
func (h *handler) Disconnect(c *gin.Context) {
	clientIP := middleware.ClientIP(c)
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if !h.controller.Kick(ctx, clientIP) {
		logrus.WithField("ip", clientIP).Warn("Kick failed, showing manual instructions")
		c.HTML(http.StatusOK, "disconnect_manual.html", gin.H{"client_ip": clientIP})
		return
	}

	h.events.Record(clientIP, models.ActionDisconnected, "user_requested")
	h.events.RecordUserActivity(clientIP, models.ActionDisconnected, "")
	h.tracker.Remove(clientIP)

	c.HTML(http.StatusOK, "disconnected.html", gin.H{"client_ip": clientIP})
}

func (h *handler) Gallery(c *gin.Context) {
	images, err := h.store.ListImages()
	if err != nil {
		logrus.WithError(err).Error("Failed to list gallery images")
		c.String(http.StatusOK, "Error loading gallery: %v", err)
		return
	}

	c.HTML(http.StatusOK, "gallery.html", gin.H{"images": images})
}

func (h *handler) Image(c *gin.Context) {
	name := c.Param("filename")

	path, err := h.store.Resolve(name)
	if err != nil {
		logrus.WithError(err).WithField("filename", name).Warn("Image not served")
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	c.File(path)
}

func (h *handler) Stats(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if stats, err := h.cacheService.GetStats(ctx); err == nil && stats != nil {
		logrus.Debug("Stats served from cache")
		c.JSON(http.StatusOK, stats)
		return
	}

	imageCount, err := h.store.CountImages()
	if err != nil {
		logrus.WithError(err).Error("Failed to count images")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := &models.Stats{
		ImagesUploaded:     imageCount,
		CurrentConnections: h.controller.Count(ctx),
		Status:             "active",
	}

	h.cacheService.SaveStats(ctx, stats)

	c.JSON(http.StatusOK, stats)
}

// Status exposes the raw hotspot client listing for the event host.
func (h *handler) Status(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"connections": h.controller.List(ctx)})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(),
		time.Duration(h.config.App.Timeout)*time.Second)
}
