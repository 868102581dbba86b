package models

import "time"

// NATS event subjects
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventSeatAssigned         = "seat.assigned"
	EventSeatReleased         = "seat.released"
)

// ReservationCreatedEvent is published after a booking is persisted
type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	BookingRef    string    `json:"booking_ref"`
	FlightID      int64     `json:"flight_id"`
	UserID        *int64    `json:"user_id"`
	Seats         []string  `json:"seats"`
	TotalAmount   float64   `json:"total_amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationConfirmedEvent is published when moderation confirms a booking
type ReservationConfirmedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	FlightID      int64     `json:"flight_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReservationCancelledEvent is published when a booking is cancelled
type ReservationCancelledEvent struct {
	ReservationID int64     `json:"reservation_id"`
	FlightID      int64     `json:"flight_id"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// SeatAssignedEvent is published per seat claimed by a reservation
type SeatAssignedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	FlightID      int64     `json:"flight_id"`
	SeatNumber    string    `json:"seat_number"`
	Timestamp     time.Time `json:"timestamp"`
}

// SeatReleasedEvent is published per seat freed by a cancellation or edit
type SeatReleasedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	FlightID      int64     `json:"flight_id"`
	SeatNumber    string    `json:"seat_number"`
	Timestamp     time.Time `json:"timestamp"`
}
