package repository

import (
	"errors"

	"github.com/lib/pq"

	"skybook/internal/database"
)

type Repositories struct {
	Flights      *FlightRepository
	Reservations *ReservationRepository
	Users        *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Flights:      NewFlightRepository(db),
		Reservations: NewReservationRepository(db),
		Users:        NewUserRepository(db),
	}
}

// isUniqueViolation reports whether err is a postgres duplicate-key error,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && (constraint == "" || pqErr.Constraint == constraint)
	}
	return false
}
