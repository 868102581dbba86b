package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skybook/internal/models"
)

// Flight catalog handlers

// ListFlights - GET /flights
func (h *Handlers) ListFlights(c *gin.Context) {
	flights, err := h.services.Flights.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list flights")
		return
	}

	c.JSON(http.StatusOK, flights)
}

// SearchFlights - GET /flights/search
// Filters by route and day; round trips get a reverse-route return leg.
func (h *Handlers) SearchFlights(c *gin.Context) {
	response, err := h.services.Flights.Search(c.Request.Context(),
		c.Query("origin"),
		c.Query("destination"),
		c.Query("departureDate"),
		c.Query("returnDate"),
		c.Query("tripType"),
	)
	if err != nil {
		respondError(c, err, "Failed to search flights")
		return
	}

	c.JSON(http.StatusOK, response)
}

// PopularFlights - GET /flights/popular
func (h *Handlers) PopularFlights(c *gin.Context) {
	popular, err := h.services.Flights.ListPopular(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list popular flights")
		return
	}

	c.JSON(http.StatusOK, popular)
}

// GetFlight - GET /flights/:flightNumber
func (h *Handlers) GetFlight(c *gin.Context) {
	flight, err := h.services.Flights.GetByFlightNumber(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		respondError(c, err, "Failed to get flight")
		return
	}

	c.JSON(http.StatusOK, flight)
}

// OccupiedSeats - GET /flights/:flightNumber/occupied-seats
// Advisory seat map data; the booking transaction is the actual guard.
func (h *Handlers) OccupiedSeats(c *gin.Context) {
	response, err := h.services.Reservations.OccupiedSeats(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		respondError(c, err, "Failed to load occupied seats")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Admin flight handlers

// CreateFlight - POST /admin/create
func (h *Handlers) CreateFlight(c *gin.Context) {
	var req models.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.services.Flights.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create flight")
		return
	}

	c.JSON(http.StatusCreated, flight)
}

// UpdateFlight - PUT /admin/update/:id
func (h *Handlers) UpdateFlight(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.services.Flights.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update flight")
		return
	}

	c.JSON(http.StatusOK, flight)
}

// DeleteFlight - DELETE /admin/delete/:id
func (h *Handlers) DeleteFlight(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Flights.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete flight")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
