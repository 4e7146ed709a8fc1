package api

import (
	"github.com/gin-gonic/gin"

	"orientinsight/internal/config"
	"orientinsight/internal/store"
)

// Handler bundles the API endpoints over the store.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
}

// NewHandler creates the API handler.
func NewHandler(store *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// manifest import
	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	// reservations
	router.GET("/reservations", h.ListReservations)
	router.POST("/reservations", h.CreateReservation)
	router.GET("/reservations/:id", h.GetReservation)
	router.GET("/reservations/:id/tourists", h.ListTourists)
	router.GET("/reservations/:id/export", h.ExportRoster)
}
