package errors

import "errors"

var (
	ErrUnauthorized = errors.New("user is not authorized")
	ErrForbidden    = errors.New("operation is forbidden for user")

	ErrFlightNotFound      = errors.New("flight not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateFlightNumber = errors.New("flight number already exists")

	// ErrSeatTaken is returned when a seat assignment collides with an
	// existing non-cancelled reservation on the same flight.
	ErrSeatTaken = errors.New("seat is already taken")

	// ErrValidation marks request payloads that fail domain validation;
	// handlers map it to a 400 response.
	ErrValidation = errors.New("validation failed")

	ErrInvalidSeatNumber  = errors.New("invalid seat number")
	ErrInvalidTransition  = errors.New("invalid reservation status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
