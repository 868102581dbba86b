package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

func newCatalogFixture() (*FlightService, *fakeFlightStore) {
	store := newFakeFlightStore()
	_ = store.Create(context.Background(), &models.Flight{
		FlightNumber:  "AA1001",
		Origin:        "Manila",
		Destination:   "Hong Kong",
		DepartureDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DepartureTime: "08:00",
		ArrivalTime:   "10:15",
		Aircraft:      "Airbus A320",
		SeatCapacity:  180,
		Price:         4500,
		Status:        models.FlightScheduled,
	})
	_ = store.Create(context.Background(), &models.Flight{
		FlightNumber:  "AA1004",
		Origin:        "Hong Kong",
		Destination:   "Manila",
		DepartureDate: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		DepartureTime: "11:30",
		ArrivalTime:   "13:45",
		Aircraft:      "Airbus A320",
		SeatCapacity:  180,
		Price:         4500,
		Status:        models.FlightScheduled,
	})
	return NewFlightService(store, nil), store
}

func TestSearchManilaHongKong(t *testing.T) {
	svc, _ := newCatalogFixture()

	response, err := svc.Search(context.Background(), "Manila", "Hong Kong", "2026-09-10", "", models.TripOneWay)
	assert.NoError(t, err)
	assert.Len(t, response.OutboundFlights, 1)
	assert.Equal(t, "AA1001", response.OutboundFlights[0].FlightNumber)
	assert.Empty(t, response.ReturnFlights)
}

func TestSearchRoundTripFindsReverseRoute(t *testing.T) {
	svc, _ := newCatalogFixture()

	response, err := svc.Search(context.Background(), "Manila", "Hong Kong", "2026-09-10", "2026-09-20", models.TripRoundTrip)
	assert.NoError(t, err)
	assert.Len(t, response.OutboundFlights, 1)
	assert.Len(t, response.ReturnFlights, 1)
	assert.Equal(t, "AA1004", response.ReturnFlights[0].FlightNumber)
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	svc, _ := newCatalogFixture()

	response, err := svc.Search(context.Background(), "Manila", "Tokyo", "2026-09-10", "", models.TripOneWay)
	assert.NoError(t, err)
	assert.NotNil(t, response.OutboundFlights)
	assert.Empty(t, response.OutboundFlights)
}

func TestSearchRejectsBadDate(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.Search(context.Background(), "Manila", "Hong Kong", "10-09-2026", "", models.TripOneWay)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestCreateFlightDuplicateNumber(t *testing.T) {
	svc, _ := newCatalogFixture()

	req := &models.CreateFlightRequest{
		FlightNumber:  "aa1001",
		Origin:        "Manila",
		Destination:   "Cebu",
		DepartureDate: "2026-10-01",
		DepartureTime: "06:00",
		ArrivalTime:   "07:20",
		Aircraft:      "Airbus A320",
		SeatCapacity:  180,
		Price:         2100,
	}

	_, err := svc.Create(context.Background(), req)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateFlightNumber))
}

func TestGetByFlightNumberNotFound(t *testing.T) {
	svc, _ := newCatalogFixture()

	_, err := svc.GetByFlightNumber(context.Background(), "ZZ9999")
	assert.True(t, errors.Is(err, apperrors.ErrFlightNotFound))
}
