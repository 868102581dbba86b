package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "skybook/internal/errors"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrInvalidSeatNumber, http.StatusBadRequest},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrInvalidCredentials, http.StatusForbidden},
		{apperrors.ErrFlightNotFound, http.StatusNotFound},
		{apperrors.ErrReservationNotFound, http.StatusNotFound},
		{apperrors.ErrSeatTaken, http.StatusConflict},
		{apperrors.ErrDuplicateEmail, http.StatusConflict},
		{apperrors.ErrInvalidTransition, http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, w := testContext()
		respondError(c, tc.err, "operation failed")
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

func TestRespondErrorMapsWrappedErrors(t *testing.T) {
	c, w := testContext()
	respondError(c, fmt.Errorf("seat 12A on flight 3: %w", apperrors.ErrSeatTaken), "operation failed")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	c, w := testContext()
	respondError(c, fmt.Errorf("pq: connection refused"), "Failed to create reservation")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
	assert.Contains(t, w.Body.String(), "Failed to create reservation")
}

func TestPathID(t *testing.T) {
	c, w := testContext()
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	id, ok := pathID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	for _, value := range []string{"abc", "-1", "0", ""} {
		c, w := testContext()
		c.Params = gin.Params{{Key: "id", Value: value}}

		_, ok := pathID(c, "id")
		assert.False(t, ok, "value %q", value)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}
