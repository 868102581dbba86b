package models

import (
	"time"
)

// Flight statuses
const (
	FlightScheduled = "Scheduled"
	FlightOnTime    = "On Time"
	FlightDelayed   = "Delayed"
	FlightCancelled = "Cancelled"
)

// Reservation statuses
const (
	ReservationPending   = "Pending"
	ReservationConfirmed = "Confirmed"
	ReservationCancelled = "Cancelled"
)

// Trip types
const (
	TripOneWay    = "One-Way"
	TripRoundTrip = "Round-Trip"
)

// Travel classes
const (
	ClassEconomy        = "Economy"
	ClassPremiumEconomy = "Premium Economy"
	ClassBusiness       = "Business"
	ClassFirst          = "First"
)

// User roles
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Flight represents a scheduled flight in the catalog
type Flight struct {
	ID            int64     `json:"id" db:"id"`
	FlightNumber  string    `json:"flightNumber" db:"flight_number"`
	Origin        string    `json:"origin" db:"origin"`
	Destination   string    `json:"destination" db:"destination"`
	DepartureDate time.Time `json:"departureDate" db:"departure_date"`
	DepartureTime string    `json:"departureTime" db:"departure_time"`
	ArrivalTime   string    `json:"arrivalTime" db:"arrival_time"`
	Aircraft      string    `json:"aircraft" db:"aircraft"`
	SeatCapacity  int       `json:"seatCapacity" db:"seat_capacity"`
	Price         float64   `json:"price" db:"price"`
	Status        string    `json:"status" db:"status"`
}

// Passenger is embedded in a reservation and has no independent identity.
// Position preserves the order the passengers were submitted in.
type Passenger struct {
	ID            int64  `json:"-" db:"id"`
	ReservationID int64  `json:"-" db:"reservation_id"`
	Position      int    `json:"-" db:"position"`
	FullName      string `json:"fullName" db:"full_name"`
	Age           int    `json:"age" db:"age"`
	Gender        string `json:"gender" db:"gender"`
	Passport      string `json:"passport" db:"passport"`
	SeatNumber    string `json:"seatNumber" db:"seat_number"`
	Meal          string `json:"meal" db:"meal"`
	BaggageKg     int    `json:"baggageAllowance" db:"baggage_kg"`
}

// Reservation references one or two flights and embeds its passenger list
type Reservation struct {
	ID             int64     `json:"id" db:"id"`
	BookingRef     string    `json:"bookingRef" db:"booking_ref"`
	UserID         *int64    `json:"userId" db:"user_id"`
	FlightID       int64     `json:"flightId" db:"flight_id"`
	ReturnFlightID *int64    `json:"returnFlightId" db:"return_flight_id"`
	TripType       string    `json:"tripType" db:"trip_type"`
	TravelClass    string    `json:"travelClass" db:"travel_class"`
	TotalAmount    float64   `json:"totalAmount" db:"total_amount"`
	BookingDate    time.Time `json:"bookingDate" db:"booking_date"`
	Status         string    `json:"status" db:"status"`

	// Not from the reservations table, filled separately
	Passengers   []Passenger `json:"passengers,omitempty"`
	Flight       *Flight     `json:"flight,omitempty"`
	ReturnFlight *Flight     `json:"returnFlight,omitempty"`
}

// CanTransitionTo reports whether a status change is legal.
// Cancelled is terminal; no path returns from it.
func (r *Reservation) CanTransitionTo(status string) bool {
	switch r.Status {
	case ReservationPending:
		return status == ReservationConfirmed || status == ReservationCancelled
	case ReservationConfirmed:
		return status == ReservationCancelled
	default:
		return false
	}
}

// User represents an account holder
type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DateOfBirth  time.Time `json:"dateOfBirth" db:"date_of_birth"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PopularFlight is a curated promotion shown on the catalog landing page
type PopularFlight struct {
	ID          int64     `json:"id" db:"id"`
	FlightID    int64     `json:"flightId" db:"flight_id"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	TravelClass string    `json:"travelClass" db:"travel_class"`
	TripType    string    `json:"tripType" db:"trip_type"`
	Image       *string   `json:"image" db:"image"`

	Flight *Flight `json:"flight,omitempty"`
}
