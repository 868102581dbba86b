package service

import (
	"sort"

	"skybook/internal/models"
)

// Fare surcharges, per passenger. The seat surcharge is looked up by the
// seat's row tier, not by the reservation's travel class.
const (
	MealSurcharge  = 150.0
	BaggageRatePkg = 50.0

	SeatSurchargeFirst    = 5000.0
	SeatSurchargeBusiness = 3000.0
	SeatSurchargeEconomy  = 1500.0
)

func seatSurcharge(seatNumber string) float64 {
	row, _, err := models.ParseSeatNumber(seatNumber)
	if err != nil {
		return SeatSurchargeEconomy
	}

	switch models.SeatClassForRow(row) {
	case models.ClassFirst:
		return SeatSurchargeFirst
	case models.ClassBusiness:
		return SeatSurchargeBusiness
	default:
		return SeatSurchargeEconomy
	}
}

// ComputeFare totals a booking: per passenger, the base fare of each leg
// plus the seat-tier surcharge, a flat meal fee when a meal is chosen, and
// a per-kg baggage fee. Pure; same inputs always produce the same total.
func ComputeFare(baseFare, returnFare float64, passengers []models.Passenger) float64 {
	var total float64
	for _, p := range passengers {
		total += baseFare + returnFare
		total += seatSurcharge(p.SeatNumber)
		if p.Meal != "" && p.Meal != "None" {
			total += MealSurcharge
		}
		total += float64(p.BaggageKg) * BaggageRatePkg
	}
	return total
}

// FlattenSeats derives the occupied-seat set for a flight: the union of
// passenger seat numbers over non-cancelled reservations referencing the
// flight on either leg. Returned sorted for stable output.
func FlattenSeats(reservations []models.Reservation, flightID int64) []string {
	seen := make(map[string]struct{})
	for _, res := range reservations {
		if res.Status == models.ReservationCancelled {
			continue
		}
		if res.FlightID != flightID &&
			(res.ReturnFlightID == nil || *res.ReturnFlightID != flightID) {
			continue
		}
		for _, p := range res.Passengers {
			seen[models.NormalizeSeatNumber(p.SeatNumber)] = struct{}{}
		}
	}

	seats := make([]string, 0, len(seen))
	for seat := range seen {
		seats = append(seats, seat)
	}
	sort.Strings(seats)

	return seats
}
