package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"skybook/internal/models"
)

func TestComputeFareSinglePassenger(t *testing.T) {
	passengers := []models.Passenger{
		{SeatNumber: "10A", Meal: "None", BaggageKg: 0},
	}

	// base fare + economy seat surcharge only
	total := ComputeFare(2000, 0, passengers)
	assert.Equal(t, 2000+SeatSurchargeEconomy, total)
}

func TestComputeFareSurcharges(t *testing.T) {
	passengers := []models.Passenger{
		{SeatNumber: "1A", Meal: "Vegetarian", BaggageKg: 20},
	}

	total := ComputeFare(1000, 0, passengers)
	expected := 1000 + SeatSurchargeFirst + MealSurcharge + 20*BaggageRatePkg
	assert.Equal(t, expected, total)
}

func TestComputeFareSeatTiers(t *testing.T) {
	base := 0.0

	assert.Equal(t, SeatSurchargeFirst,
		ComputeFare(base, 0, []models.Passenger{{SeatNumber: "2F"}}))
	assert.Equal(t, SeatSurchargeBusiness,
		ComputeFare(base, 0, []models.Passenger{{SeatNumber: "4C"}}))
	assert.Equal(t, SeatSurchargeEconomy,
		ComputeFare(base, 0, []models.Passenger{{SeatNumber: "5A"}}))
}

func TestComputeFareRoundTrip(t *testing.T) {
	passengers := []models.Passenger{
		{SeatNumber: "20B", Meal: "None"},
		{SeatNumber: "20C", Meal: "Vegan", BaggageKg: 10},
	}

	total := ComputeFare(3000, 2500, passengers)
	expected := (3000 + 2500 + SeatSurchargeEconomy) +
		(3000 + 2500 + SeatSurchargeEconomy + MealSurcharge + 10*BaggageRatePkg)
	assert.Equal(t, expected, total)
}

func TestComputeFareIsPure(t *testing.T) {
	passengers := []models.Passenger{
		{SeatNumber: "3D", Meal: "Gluten-Free", BaggageKg: 15},
		{SeatNumber: "18F", Meal: "None", BaggageKg: 5},
	}

	first := ComputeFare(4500, 4500, passengers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeFare(4500, 4500, passengers))
	}
}

func TestFlattenSeatsUnion(t *testing.T) {
	returnFlight := int64(2)
	reservations := []models.Reservation{
		{
			FlightID: 1,
			Status:   models.ReservationPending,
			Passengers: []models.Passenger{
				{SeatNumber: "12A"}, {SeatNumber: "12B"},
			},
		},
		{
			FlightID: 1,
			Status:   models.ReservationConfirmed,
			Passengers: []models.Passenger{
				{SeatNumber: "12B"}, {SeatNumber: "1a"},
			},
		},
		{
			FlightID:       3,
			ReturnFlightID: &returnFlight,
			Status:         models.ReservationPending,
			Passengers:     []models.Passenger{{SeatNumber: "5C"}},
		},
	}

	seats := FlattenSeats(reservations, 1)
	assert.Equal(t, []string{"12A", "12B", "1A"}, seats)
}

func TestFlattenSeatsSkipsCancelled(t *testing.T) {
	reservations := []models.Reservation{
		{
			FlightID:   1,
			Status:     models.ReservationCancelled,
			Passengers: []models.Passenger{{SeatNumber: "12A"}},
		},
		{
			FlightID:   1,
			Status:     models.ReservationConfirmed,
			Passengers: []models.Passenger{{SeatNumber: "14C"}},
		},
	}

	seats := FlattenSeats(reservations, 1)
	assert.Equal(t, []string{"14C"}, seats)
}

func TestFlattenSeatsMatchesReturnLeg(t *testing.T) {
	returnFlight := int64(7)
	reservations := []models.Reservation{
		{
			FlightID:       3,
			ReturnFlightID: &returnFlight,
			Status:         models.ReservationPending,
			Passengers:     []models.Passenger{{SeatNumber: "8D"}},
		},
	}

	assert.Equal(t, []string{"8D"}, FlattenSeats(reservations, 7))
	assert.Empty(t, FlattenSeats(reservations, 9))
}
