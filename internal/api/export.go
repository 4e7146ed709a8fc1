package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"orientinsight/internal/exporter"
	"orientinsight/internal/store"
)

// ExportRoster streams a reservation's roster as an .xlsx download.
// GET /api/reservations/:id/export
func (h *Handler) ExportRoster(c *gin.Context) {
	reservation, err := h.store.GetReservation(c.Param("id"))
	if errors.Is(err, store.ErrReservationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tourists, err := h.store.ListTourists(reservation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	workbook, err := exporter.NewExporter().Export(reservation, tourists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("roster_%s.xlsx", reservation.Number)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
