package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/metrics"
	"skybook/internal/models"
)

// ReservationStore is the persistence contract of the reservation service.
// The postgres repository implements it; tests substitute a fake.
type ReservationStore interface {
	Create(ctx context.Context, res *models.Reservation, passengers []models.Passenger) error
	GetByID(ctx context.Context, id int64) (*models.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error)
	ListAll(ctx context.Context) ([]models.Reservation, error)
	ListByFlight(ctx context.Context, flightID int64) ([]models.Reservation, error)
	ReplacePassengers(ctx context.Context, res *models.Reservation, passengers []models.Passenger, totalAmount float64) error
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Reservation, error)
}

// EventPublisher sends domain events; the NATS client implements it
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

type ReservationService struct {
	reservationRepo ReservationStore
	flightRepo      FlightStore
	events          EventPublisher
}

func NewReservationService(reservationRepo ReservationStore, flightRepo FlightStore, events EventPublisher) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		flightRepo:      flightRepo,
		events:          events,
	}
}

var validMeals = map[string]bool{
	"Vegetarian":     true,
	"Non-Vegetarian": true,
	"Vegan":          true,
	"Gluten-Free":    true,
	"None":           true,
}

var validTravelClasses = map[string]bool{
	models.ClassEconomy:        true,
	models.ClassPremiumEconomy: true,
	models.ClassBusiness:       true,
	models.ClassFirst:          true,
}

// Create books a flight for a passenger list. The fare is recomputed
// server-side and is authoritative; the client-submitted total is only
// advisory. All rows are written in one transaction, so either the whole
// reservation exists with every seat claimed, or nothing does.
func (s *ReservationService) Create(ctx context.Context, userID *int64, req *models.CreateReservationRequest) (*models.Reservation, error) {
	tripType := req.TripType
	if tripType == "" {
		tripType = models.TripOneWay
	}
	if tripType != models.TripOneWay && tripType != models.TripRoundTrip {
		return nil, fmt.Errorf("invalid trip type %q: %w", tripType, apperrors.ErrValidation)
	}

	travelClass := req.TravelClass
	if travelClass == "" {
		travelClass = models.ClassEconomy
	}
	if !validTravelClasses[travelClass] {
		return nil, fmt.Errorf("invalid travel class %q: %w", travelClass, apperrors.ErrValidation)
	}

	flight, err := s.flightRepo.GetByID(ctx, req.Flight)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if flight == nil {
		return nil, apperrors.ErrFlightNotFound
	}

	var returnFlight *models.Flight
	var returnFlightID *int64
	if tripType == models.TripRoundTrip {
		if req.ReturnFlight == nil {
			return nil, fmt.Errorf("round-trip booking requires a return flight: %w", apperrors.ErrValidation)
		}
		returnFlight, err = s.flightRepo.GetByID(ctx, *req.ReturnFlight)
		if err != nil {
			return nil, fmt.Errorf("failed to get return flight: %w", err)
		}
		if returnFlight == nil {
			return nil, apperrors.ErrFlightNotFound
		}
		returnFlightID = &returnFlight.ID
	}

	passengers, err := buildPassengers(req.Passengers, flight, returnFlight)
	if err != nil {
		return nil, err
	}

	var returnFare float64
	if returnFlight != nil {
		returnFare = returnFlight.Price
	}
	total := ComputeFare(flight.Price, returnFare, passengers)
	if req.TotalAmount != 0 && req.TotalAmount != total {
		logger.WithContext(ctx).Warn("Client fare differs from computed fare",
			"client_total", req.TotalAmount,
			"computed_total", total)
	}

	reservation := &models.Reservation{
		BookingRef:     uuid.New().String(),
		UserID:         userID,
		FlightID:       flight.ID,
		ReturnFlightID: returnFlightID,
		TripType:       tripType,
		TravelClass:    travelClass,
		TotalAmount:    total,
		Status:         models.ReservationPending,
	}

	if err := s.reservationRepo.Create(ctx, reservation, passengers); err != nil {
		if isSeatConflict(err) {
			metrics.SeatConflicts.Inc()
		}
		return nil, err
	}

	metrics.ReservationsCreated.Inc()
	s.publishCreated(ctx, reservation)

	reservation.Flight = flight
	reservation.ReturnFlight = returnFlight
	return reservation, nil
}

func isSeatConflict(err error) bool {
	return errors.Is(err, apperrors.ErrSeatTaken)
}

// buildPassengers normalizes and validates the submitted passenger list
// against the aircraft layout before any row is written.
func buildPassengers(inputs []models.PassengerInput, flight *models.Flight, returnFlight *models.Flight) ([]models.Passenger, error) {
	rows := seatRows(flight.SeatCapacity)
	if returnFlight != nil && seatRows(returnFlight.SeatCapacity) < rows {
		rows = seatRows(returnFlight.SeatCapacity)
	}

	seen := make(map[string]struct{}, len(inputs))
	passengers := make([]models.Passenger, 0, len(inputs))

	for _, in := range inputs {
		seat := models.NormalizeSeatNumber(in.SeatNumber)
		row, _, err := models.ParseSeatNumber(seat)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidSeatNumber)
		}
		if row > rows {
			return nil, fmt.Errorf("seat %s does not exist on this aircraft: %w", seat, apperrors.ErrInvalidSeatNumber)
		}

		if _, dup := seen[seat]; dup {
			return nil, fmt.Errorf("seat %s requested twice: %w", seat, apperrors.ErrSeatTaken)
		}
		seen[seat] = struct{}{}

		meal := in.Meal
		if meal == "" {
			meal = "None"
		}
		if !validMeals[meal] {
			return nil, fmt.Errorf("invalid meal preference %q: %w", meal, apperrors.ErrValidation)
		}

		passengers = append(passengers, models.Passenger{
			FullName:   in.FullName,
			Age:        in.Age,
			Gender:     in.Gender,
			Passport:   in.Passport,
			SeatNumber: seat,
			Meal:       meal,
			BaggageKg:  in.BaggageAllowance,
		})
	}

	return passengers, nil
}

// seatRows derives the row count of a six-abreast cabin
func seatRows(capacity int) int {
	return (capacity + 5) / 6
}

// reservationLegs lists the flights a reservation claims seats on
func reservationLegs(res *models.Reservation) []int64 {
	legs := []int64{res.FlightID}
	if res.ReturnFlightID != nil {
		legs = append(legs, *res.ReturnFlightID)
	}
	return legs
}

// Get loads a reservation with its flights populated for the confirmation
// view. Owners see their own bookings; admins see everything. Guest
// bookings (no owner) are visible to any authenticated caller.
func (s *ReservationService) Get(ctx context.Context, id int64, callerID int64, callerRole string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, apperrors.ErrReservationNotFound
	}

	if !canAccess(reservation, callerID, callerRole) {
		return nil, apperrors.ErrForbidden
	}

	if err := s.populateFlights(ctx, reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}

func canAccess(reservation *models.Reservation, callerID int64, callerRole string) bool {
	if callerRole == models.RoleAdmin {
		return true
	}
	return reservation.UserID == nil || *reservation.UserID == callerID
}

func (s *ReservationService) populateFlights(ctx context.Context, reservation *models.Reservation) error {
	flight, err := s.flightRepo.GetByID(ctx, reservation.FlightID)
	if err != nil {
		return fmt.Errorf("failed to get flight: %w", err)
	}
	reservation.Flight = flight

	if reservation.ReturnFlightID != nil {
		returnFlight, err := s.flightRepo.GetByID(ctx, *reservation.ReturnFlightID)
		if err != nil {
			return fmt.Errorf("failed to get return flight: %w", err)
		}
		reservation.ReturnFlight = returnFlight
	}

	return nil
}

// ListByUser powers the my-bookings view
func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}

	for i := range reservations {
		if err := s.populateFlights(ctx, &reservations[i]); err != nil {
			return nil, err
		}
	}

	return reservations, nil
}

// ListAll powers the admin moderation view
func (s *ReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	return reservations, nil
}

// Edit replaces the passenger list wholesale and recomputes the fare.
// Seat conflicts introduced by the edit abort the whole update.
func (s *ReservationService) Edit(ctx context.Context, id int64, callerID int64, callerRole string, req *models.EditReservationRequest) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, apperrors.ErrReservationNotFound
	}

	if !canAccess(reservation, callerID, callerRole) {
		return nil, apperrors.ErrForbidden
	}

	if reservation.Status == models.ReservationCancelled {
		return nil, fmt.Errorf("cannot edit a cancelled reservation: %w", apperrors.ErrInvalidTransition)
	}

	flight, err := s.flightRepo.GetByID(ctx, reservation.FlightID)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if flight == nil {
		return nil, apperrors.ErrFlightNotFound
	}

	var returnFlight *models.Flight
	if reservation.ReturnFlightID != nil {
		returnFlight, err = s.flightRepo.GetByID(ctx, *reservation.ReturnFlightID)
		if err != nil {
			return nil, fmt.Errorf("failed to get return flight: %w", err)
		}
	}

	released := make([]string, len(reservation.Passengers))
	for i, p := range reservation.Passengers {
		released[i] = p.SeatNumber
	}

	passengers, err := buildPassengers(req.Passengers, flight, returnFlight)
	if err != nil {
		return nil, err
	}

	var returnFare float64
	if returnFlight != nil {
		returnFare = returnFlight.Price
	}
	total := ComputeFare(flight.Price, returnFare, passengers)
	if req.TotalPrice != 0 && req.TotalPrice != total {
		logger.WithContext(ctx).Warn("Client fare differs from computed fare",
			"client_total", req.TotalPrice,
			"computed_total", total)
	}

	if err := s.reservationRepo.ReplacePassengers(ctx, reservation, passengers, total); err != nil {
		if isSeatConflict(err) {
			metrics.SeatConflicts.Inc()
		}
		return nil, err
	}

	for _, leg := range reservationLegs(reservation) {
		for _, seat := range released {
			s.publish(ctx, models.EventSeatReleased, models.SeatReleasedEvent{
				ReservationID: reservation.ID,
				FlightID:      leg,
				SeatNumber:    seat,
				Timestamp:     time.Now(),
			})
		}
		for _, p := range passengers {
			s.publish(ctx, models.EventSeatAssigned, models.SeatAssignedEvent{
				ReservationID: reservation.ID,
				FlightID:      leg,
				SeatNumber:    p.SeatNumber,
				Timestamp:     time.Now(),
			})
		}
	}

	reservation.Flight = flight
	reservation.ReturnFlight = returnFlight
	return reservation, nil
}

// Cancel moves a reservation to its terminal state and releases its seats
// in the same transaction. Cancelling twice is an invalid transition.
func (s *ReservationService) Cancel(ctx context.Context, id int64, callerID int64, callerRole string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil {
		return nil, apperrors.ErrReservationNotFound
	}

	if !canAccess(reservation, callerID, callerRole) {
		return nil, apperrors.ErrForbidden
	}

	cancelled, err := s.reservationRepo.UpdateStatus(ctx, id, models.ReservationCancelled)
	if err != nil {
		return nil, err
	}

	metrics.ReservationsCancelled.Inc()

	s.publish(ctx, models.EventReservationCancelled, models.ReservationCancelledEvent{
		ReservationID: cancelled.ID,
		FlightID:      cancelled.FlightID,
		Reason:        "User cancellation",
		Timestamp:     time.Now(),
	})
	for _, leg := range reservationLegs(cancelled) {
		for _, p := range cancelled.Passengers {
			s.publish(ctx, models.EventSeatReleased, models.SeatReleasedEvent{
				ReservationID: cancelled.ID,
				FlightID:      leg,
				SeatNumber:    p.SeatNumber,
				Timestamp:     time.Now(),
			})
		}
	}

	return cancelled, nil
}

// Confirm is the explicit Pending -> Confirmed moderation step
func (s *ReservationService) Confirm(ctx context.Context, id int64) (*models.Reservation, error) {
	confirmed, err := s.reservationRepo.UpdateStatus(ctx, id, models.ReservationConfirmed)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.EventReservationConfirmed, models.ReservationConfirmedEvent{
		ReservationID: confirmed.ID,
		FlightID:      confirmed.FlightID,
		Timestamp:     time.Now(),
	})

	return confirmed, nil
}

// OccupiedSeats answers "which seats on this flight are taken" for the
// seat map UI. Derived per request from the reservation rows; a query
// failure is returned, not masked as an empty set.
func (s *ReservationService) OccupiedSeats(ctx context.Context, flightNumber string) (*models.OccupiedSeatsResponse, error) {
	flight, err := s.flightRepo.GetByFlightNumber(ctx, flightNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if flight == nil {
		return nil, apperrors.ErrFlightNotFound
	}

	reservations, err := s.reservationRepo.ListByFlight(ctx, flight.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	return &models.OccupiedSeatsResponse{
		FlightNumber:  flight.FlightNumber,
		OccupiedSeats: FlattenSeats(reservations, flight.ID),
	}, nil
}

func (s *ReservationService) publishCreated(ctx context.Context, reservation *models.Reservation) {
	seats := make([]string, len(reservation.Passengers))
	for i, p := range reservation.Passengers {
		seats[i] = p.SeatNumber
	}

	s.publish(ctx, models.EventReservationCreated, models.ReservationCreatedEvent{
		ReservationID: reservation.ID,
		BookingRef:    reservation.BookingRef,
		FlightID:      reservation.FlightID,
		UserID:        reservation.UserID,
		Seats:         seats,
		TotalAmount:   reservation.TotalAmount,
		Timestamp:     time.Now(),
	})
	for _, leg := range reservationLegs(reservation) {
		for _, p := range reservation.Passengers {
			s.publish(ctx, models.EventSeatAssigned, models.SeatAssignedEvent{
				ReservationID: reservation.ID,
				FlightID:      leg,
				SeatNumber:    p.SeatNumber,
				Timestamp:     time.Now(),
			})
		}
	}
}

// publish sends a domain event; failures are logged, never surfaced
func (s *ReservationService) publish(ctx context.Context, subject string, event interface{}) {
	if err := s.events.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish event",
			"error", err,
			"event_type", subject)
	}
}
