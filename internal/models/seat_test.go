package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeatNumber(t *testing.T) {
	row, col, err := ParseSeatNumber("12A")
	assert.NoError(t, err)
	assert.Equal(t, 12, row)
	assert.Equal(t, byte('A'), col)

	row, col, err = ParseSeatNumber(" 7c ")
	assert.NoError(t, err)
	assert.Equal(t, 7, row)
	assert.Equal(t, byte('C'), col)

	_, _, err = ParseSeatNumber("A")
	assert.Error(t, err)

	_, _, err = ParseSeatNumber("12G")
	assert.Error(t, err)

	_, _, err = ParseSeatNumber("0A")
	assert.Error(t, err)

	_, _, err = ParseSeatNumber("xA")
	assert.Error(t, err)
}

func TestSeatClassForRow(t *testing.T) {
	assert.Equal(t, ClassFirst, SeatClassForRow(1))
	assert.Equal(t, ClassFirst, SeatClassForRow(2))
	assert.Equal(t, ClassBusiness, SeatClassForRow(3))
	assert.Equal(t, ClassBusiness, SeatClassForRow(4))
	assert.Equal(t, ClassEconomy, SeatClassForRow(5))
	assert.Equal(t, ClassEconomy, SeatClassForRow(30))
}

func TestNormalizeSeatNumber(t *testing.T) {
	assert.Equal(t, "7C", NormalizeSeatNumber("7c "))
	assert.Equal(t, "12A", NormalizeSeatNumber("12A"))
}

func TestReservationTransitions(t *testing.T) {
	pending := &Reservation{Status: ReservationPending}
	assert.True(t, pending.CanTransitionTo(ReservationConfirmed))
	assert.True(t, pending.CanTransitionTo(ReservationCancelled))

	confirmed := &Reservation{Status: ReservationConfirmed}
	assert.False(t, confirmed.CanTransitionTo(ReservationPending))
	assert.True(t, confirmed.CanTransitionTo(ReservationCancelled))

	// Cancelled is terminal
	cancelled := &Reservation{Status: ReservationCancelled}
	assert.False(t, cancelled.CanTransitionTo(ReservationPending))
	assert.False(t, cancelled.CanTransitionTo(ReservationConfirmed))
	assert.False(t, cancelled.CanTransitionTo(ReservationCancelled))
}
