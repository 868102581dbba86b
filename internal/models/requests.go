package models

// PassengerInput carries one passenger entry of a booking form
type PassengerInput struct {
	FullName         string `json:"fullName" binding:"required"`
	Age              int    `json:"age" binding:"required,gte=0"`
	Gender           string `json:"gender"`
	Passport         string `json:"passport" binding:"required"`
	SeatNumber       string `json:"seatNumber" binding:"required"`
	Meal             string `json:"meal"`
	BaggageAllowance int    `json:"baggageAllowance" binding:"gte=0"`
}

// CreateReservationRequest is the booking form payload
type CreateReservationRequest struct {
	Flight       int64            `json:"flight" binding:"required"`
	ReturnFlight *int64           `json:"returnFlight"`
	TripType     string           `json:"tripType"`
	TravelClass  string           `json:"travelClass"`
	Passengers   []PassengerInput `json:"passengers" binding:"required,min=1,dive"`
	TotalAmount  float64          `json:"totalAmount"`
}

// CreateReservationResponse points the client at the confirmation view
type CreateReservationResponse struct {
	ID         int64  `json:"id"`
	BookingRef string `json:"bookingRef"`
	Redirect   string `json:"redirect"`
}

// EditReservationRequest replaces the passenger list wholesale
type EditReservationRequest struct {
	Passengers []PassengerInput `json:"passengersJSON" binding:"required,min=1,dive"`
	TotalPrice float64          `json:"totalPrice"`
}

// CancelReservationResponse reports the outcome of a cancellation
type CancelReservationResponse struct {
	Success              bool         `json:"success"`
	Message              string       `json:"message"`
	CancelledReservation *Reservation `json:"cancelledReservation,omitempty"`
}

// SearchFlightsResponse holds both legs of a search
type SearchFlightsResponse struct {
	OutboundFlights []Flight `json:"outboundFlights"`
	ReturnFlights   []Flight `json:"returnFlights"`
}

// OccupiedSeatsResponse is advisory data for the seat map UI
type OccupiedSeatsResponse struct {
	FlightNumber  string   `json:"flightNumber"`
	OccupiedSeats []string `json:"occupiedSeats"`
}

// CreateFlightRequest is the admin flight form
type CreateFlightRequest struct {
	FlightNumber  string  `json:"flightNumber" binding:"required"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureDate string  `json:"departureDate" binding:"required"`
	DepartureTime string  `json:"departureTime" binding:"required"`
	ArrivalTime   string  `json:"arrivalTime" binding:"required"`
	Aircraft      string  `json:"aircraft" binding:"required"`
	SeatCapacity  int     `json:"seatCapacity" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Status        string  `json:"status"`
}

// UpdateFlightRequest carries partial flight updates; nil fields are kept
type UpdateFlightRequest struct {
	Origin        *string  `json:"origin"`
	Destination   *string  `json:"destination"`
	DepartureDate *string  `json:"departureDate"`
	DepartureTime *string  `json:"departureTime"`
	ArrivalTime   *string  `json:"arrivalTime"`
	Aircraft      *string  `json:"aircraft"`
	SeatCapacity  *int     `json:"seatCapacity"`
	Price         *float64 `json:"price"`
	Status        *string  `json:"status"`
}

// RegisterRequest is the signup form
type RegisterRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EditProfileRequest updates account details
type EditProfileRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
}

// ChangePasswordRequest rotates an account password
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=8"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required"`
}

// ForgotPasswordRequest asks for a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}
