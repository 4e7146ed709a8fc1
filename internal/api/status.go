package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system status digest.
type StatusResponse struct {
	Initialized    bool   `json:"initialized"` // true once reservations exist
	Reservations   int    `json:"reservations"`
	Tourists       int    `json:"tourists"`
	LastImportTime string `json:"lastImportTime"`
}

// GetStatus reports store counts and the last import time.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	reservations, err := h.store.CountReservations()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{})
		return
	}
	tourists, err := h.store.CountAllTourists()
	if err != nil {
		tourists = 0
	}
	lastImport, err := h.store.LastImportTime()
	if err != nil {
		lastImport = ""
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    reservations > 0,
		Reservations:   reservations,
		Tourists:       tourists,
		LastImportTime: lastImport,
	})
}
