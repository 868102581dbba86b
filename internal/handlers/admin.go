package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
)

// Admin reservation moderation handlers. All routes in this group sit
// behind the admin gate; none re-check the role themselves.

// ListReservations - GET /admin/reservations
func (h *Handlers) ListReservations(c *gin.Context) {
	reservations, err := h.services.Reservations.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ConfirmReservation - POST /admin/reservations/:id/confirm
func (h *Handlers) ConfirmReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	confirmed, err := h.services.Reservations.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to confirm reservation")
		return
	}

	c.JSON(http.StatusOK, confirmed)
}

// AdminCancelReservation - POST /admin/reservations/:id/cancel
func (h *Handlers) AdminCancelReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, _ := caller(c)
	cancelled, err := h.services.Reservations.Cancel(c.Request.Context(), id, userID, models.RoleAdmin)
	if err != nil {
		respondError(c, err, "Failed to cancel reservation")
		return
	}

	c.JSON(http.StatusOK, models.CancelReservationResponse{
		Success:              true,
		Message:              "Reservation Cancelled",
		CancelledReservation: cancelled,
	})
}
