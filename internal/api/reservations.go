package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orientinsight/internal/model"
	"orientinsight/internal/parser"
	"orientinsight/internal/store"
)

type createReservationRequest struct {
	Number        string `json:"number" binding:"required"`
	Category      string `json:"category" binding:"required"`
	DepartureDate string `json:"departureDate" binding:"required"` // D.M.Y
	EndDate       string `json:"endDate" binding:"required"`       // D.M.Y
}

var validCategories = map[model.TourCategory]bool{
	model.CategoryA: true,
	model.CategoryB: true,
	model.CategoryC: true,
	model.CategoryD: true,
}

// CreateReservation registers a booked tour group for manifests to match
// against.
// POST /api/reservations
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category := model.TourCategory(req.Category)
	if !validCategories[category] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	departure, ok := parser.ParseDay(req.DepartureDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure date"})
		return
	}
	end, ok := parser.ParseDay(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return
	}
	if end.Before(departure) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date before departure"})
		return
	}

	reservation := &model.Reservation{
		Number:        req.Number,
		Category:      category,
		DepartureDate: departure,
		EndDate:       end,
	}
	if err := h.store.CreateReservation(reservation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// ListReservations lists all reservations with their pax counters.
// GET /api/reservations
func (h *Handler) ListReservations(c *gin.Context) {
	reservations, err := h.store.ListReservations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": reservations})
}

// GetReservation returns one reservation.
// GET /api/reservations/:id
func (h *Handler) GetReservation(c *gin.Context) {
	reservation, err := h.store.GetReservation(c.Param("id"))
	if errors.Is(err, store.ErrReservationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ListTourists returns a reservation's roster ordered by segment and source
// row order.
// GET /api/reservations/:id/tourists
func (h *Handler) ListTourists(c *gin.Context) {
	if _, err := h.store.GetReservation(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tourists, err := h.store.ListTourists(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": tourists})
}
