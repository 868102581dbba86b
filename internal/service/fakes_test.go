package service

import (
	"context"
	"fmt"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

// In-memory store fakes. The reservation fake enforces the same rules the
// postgres repository enforces with constraints and row locks: one holder
// per (flight, seat), and no passenger writes onto a cancelled reservation.

type fakeFlightStore struct {
	flights map[int64]*models.Flight
	nextID  int64
}

func newFakeFlightStore() *fakeFlightStore {
	return &fakeFlightStore{flights: make(map[int64]*models.Flight)}
}

func (f *fakeFlightStore) Create(_ context.Context, flight *models.Flight) error {
	for _, existing := range f.flights {
		if existing.FlightNumber == flight.FlightNumber {
			return apperrors.ErrDuplicateFlightNumber
		}
	}
	f.nextID++
	flight.ID = f.nextID
	f.flights[flight.ID] = flight
	return nil
}

func (f *fakeFlightStore) GetByID(_ context.Context, id int64) (*models.Flight, error) {
	flight, ok := f.flights[id]
	if !ok {
		return nil, nil
	}
	copied := *flight
	return &copied, nil
}

func (f *fakeFlightStore) GetByFlightNumber(_ context.Context, flightNumber string) (*models.Flight, error) {
	for _, flight := range f.flights {
		if flight.FlightNumber == flightNumber {
			copied := *flight
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFlightStore) GetByIDs(_ context.Context, ids []int64) ([]models.Flight, error) {
	var flights []models.Flight
	for _, id := range ids {
		if flight, ok := f.flights[id]; ok {
			flights = append(flights, *flight)
		}
	}
	return flights, nil
}

func (f *fakeFlightStore) List(_ context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	for _, flight := range f.flights {
		flights = append(flights, *flight)
	}
	return flights, nil
}

func (f *fakeFlightStore) Search(_ context.Context, origin, destination string, date *time.Time) ([]models.Flight, error) {
	var flights []models.Flight
	for _, flight := range f.flights {
		if origin != "" && flight.Origin != origin {
			continue
		}
		if destination != "" && flight.Destination != destination {
			continue
		}
		if date != nil && !flight.DepartureDate.Equal(*date) {
			continue
		}
		flights = append(flights, *flight)
	}
	return flights, nil
}

func (f *fakeFlightStore) Update(_ context.Context, flight *models.Flight) error {
	if _, ok := f.flights[flight.ID]; !ok {
		return apperrors.ErrFlightNotFound
	}
	copied := *flight
	f.flights[flight.ID] = &copied
	return nil
}

func (f *fakeFlightStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.flights[id]; !ok {
		return apperrors.ErrFlightNotFound
	}
	delete(f.flights, id)
	return nil
}

func (f *fakeFlightStore) ListPopular(_ context.Context) ([]models.PopularFlight, error) {
	return nil, nil
}

type fakeReservationStore struct {
	reservations map[int64]*models.Reservation
	seats        map[string]int64 // (flight, seat) -> holding reservation
	nextID       int64

	// afterGet runs once a GetByID snapshot has been taken, before it is
	// returned. Tests use it to commit a concurrent change in the gap
	// between a caller's read and its write.
	afterGet func()
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{
		reservations: make(map[int64]*models.Reservation),
		seats:        make(map[string]int64),
	}
}

func seatLockKey(flightID int64, seat string) string {
	return fmt.Sprintf("%d:%s", flightID, seat)
}

func (f *fakeReservationStore) claimSeats(res *models.Reservation, passengers []models.Passenger) error {
	for _, leg := range reservationLegs(res) {
		for _, p := range passengers {
			if _, taken := f.seats[seatLockKey(leg, p.SeatNumber)]; taken {
				return fmt.Errorf("seat %s on flight %d: %w", p.SeatNumber, leg, apperrors.ErrSeatTaken)
			}
		}
	}
	for _, leg := range reservationLegs(res) {
		for _, p := range passengers {
			f.seats[seatLockKey(leg, p.SeatNumber)] = res.ID
		}
	}
	return nil
}

func (f *fakeReservationStore) releaseSeats(reservationID int64) {
	for key, holder := range f.seats {
		if holder == reservationID {
			delete(f.seats, key)
		}
	}
}

func (f *fakeReservationStore) Create(_ context.Context, res *models.Reservation, passengers []models.Passenger) error {
	f.nextID++
	res.ID = f.nextID
	res.BookingDate = time.Now()

	for i := range passengers {
		passengers[i].ReservationID = res.ID
		passengers[i].Position = i
	}

	if err := f.claimSeats(res, passengers); err != nil {
		res.ID = 0
		return err
	}

	res.Passengers = passengers
	stored := *res
	f.reservations[res.ID] = &stored
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, id int64) (*models.Reservation, error) {
	stored, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}

	copied := *stored
	copied.Passengers = append([]models.Passenger(nil), stored.Passengers...)

	if f.afterGet != nil {
		hook := f.afterGet
		f.afterGet = nil
		hook()
	}

	return &copied, nil
}

func (f *fakeReservationStore) ListByUser(_ context.Context, userID int64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for _, res := range f.reservations {
		if res.UserID != nil && *res.UserID == userID {
			reservations = append(reservations, *res)
		}
	}
	return reservations, nil
}

func (f *fakeReservationStore) ListAll(_ context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for _, res := range f.reservations {
		reservations = append(reservations, *res)
	}
	return reservations, nil
}

func (f *fakeReservationStore) ListByFlight(_ context.Context, flightID int64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	for _, res := range f.reservations {
		if res.FlightID == flightID ||
			(res.ReturnFlightID != nil && *res.ReturnFlightID == flightID) {
			reservations = append(reservations, *res)
		}
	}
	return reservations, nil
}

func (f *fakeReservationStore) ReplacePassengers(_ context.Context, res *models.Reservation, passengers []models.Passenger, totalAmount float64) error {
	stored, ok := f.reservations[res.ID]
	if !ok {
		return apperrors.ErrReservationNotFound
	}
	if stored.Status == models.ReservationCancelled {
		return fmt.Errorf("cannot edit a cancelled reservation: %w", apperrors.ErrInvalidTransition)
	}

	f.releaseSeats(res.ID)
	for i := range passengers {
		passengers[i].ReservationID = res.ID
		passengers[i].Position = i
	}
	if err := f.claimSeats(stored, passengers); err != nil {
		return err
	}

	stored.Passengers = passengers
	stored.TotalAmount = totalAmount
	res.Passengers = passengers
	res.TotalAmount = totalAmount
	return nil
}

func (f *fakeReservationStore) UpdateStatus(_ context.Context, id int64, status string) (*models.Reservation, error) {
	stored, ok := f.reservations[id]
	if !ok {
		return nil, apperrors.ErrReservationNotFound
	}
	if !stored.CanTransitionTo(status) {
		return nil, fmt.Errorf("%s -> %s: %w", stored.Status, status, apperrors.ErrInvalidTransition)
	}

	stored.Status = status
	if status == models.ReservationCancelled {
		f.releaseSeats(id)
	}

	copied := *stored
	return &copied, nil
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email && existing.ID != user.ID {
			return apperrors.ErrDuplicateEmail
		}
	}
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type publishedEvent struct {
	subject string
	payload interface{}
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(subject string, data interface{}) error {
	p.events = append(p.events, publishedEvent{subject: subject, payload: data})
	return nil
}

func (p *recordingPublisher) bySubject(subject string) []publishedEvent {
	var matched []publishedEvent
	for _, e := range p.events {
		if e.subject == subject {
			matched = append(matched, e)
		}
	}
	return matched
}
