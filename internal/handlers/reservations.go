package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
)

// Reservation handlers

// CreateReservation - POST /reservations/create
func (h *Handlers) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := caller(c)
	var owner *int64
	if userID != 0 {
		owner = &userID
	}

	reservation, err := h.services.Reservations.Create(c.Request.Context(), owner, &req)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}

	c.JSON(http.StatusCreated, models.CreateReservationResponse{
		ID:         reservation.ID,
		BookingRef: reservation.BookingRef,
		Redirect:   fmt.Sprintf("/reservations/%d/confirmation", reservation.ID),
	})
}

// MyBookings - GET /reservations/my-bookings
func (h *Handlers) MyBookings(c *gin.Context) {
	userID, _ := caller(c)

	reservations, err := h.services.Reservations.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation - GET /reservations/:id
// Confirmation view data with both flights populated.
func (h *Handlers) GetReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, role := caller(c)
	reservation, err := h.services.Reservations.Get(c.Request.Context(), id, userID, role)
	if err != nil {
		respondError(c, err, "Failed to get reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// EditReservation - POST /reservations/:id/edit
func (h *Handlers) EditReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.EditReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, role := caller(c)
	reservation, err := h.services.Reservations.Edit(c.Request.Context(), id, userID, role, &req)
	if err != nil {
		respondError(c, err, "Failed to edit reservation")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation - POST /reservations/cancel/:id
func (h *Handlers) CancelReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, role := caller(c)
	cancelled, err := h.services.Reservations.Cancel(c.Request.Context(), id, userID, role)
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
