package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "skybook/internal/errors"
	"skybook/internal/service"
	"skybook/internal/session"
)

type Handlers struct {
	services     *service.Services
	sessionStore session.Store
	sessionCfg   session.Config
}

func NewHandlers(services *service.Services, store session.Store, sessionCfg session.Config) *Handlers {
	return &Handlers{
		services:     services,
		sessionStore: store,
		sessionCfg:   sessionCfg,
	}
}

// respondError maps service errors onto HTTP statuses. Unrecognized
// errors become an opaque 500; the detail only goes to the log.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidSeatNumber):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden) ||
		errors.Is(err, apperrors.ErrUnauthorized) ||
		errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrFlightNotFound) ||
		errors.Is(err, apperrors.ErrReservationNotFound) ||
		errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSeatTaken) ||
		errors.Is(err, apperrors.ErrDuplicateEmail) ||
		errors.Is(err, apperrors.ErrDuplicateFlightNumber) ||
		errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// pathID parses a numeric path parameter, writing the 400 itself
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// caller pulls the authenticated identity placed by the session middleware
func caller(c *gin.Context) (int64, string) {
	var userID int64
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(int64); ok {
			userID = id
		}
	}

	var role string
	if v, exists := c.Get("user_role"); exists {
		if r, ok := v.(string); ok {
			role = r
		}
	}

	return userID, role
}
