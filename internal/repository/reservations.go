package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
)

type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, booking_ref, user_id, flight_id, return_flight_id,
       trip_type, travel_class, total_amount, booking_date, status`

func scanReservation(row interface{ Scan(...interface{}) error }, res *models.Reservation) error {
	return row.Scan(
		&res.ID,
		&res.BookingRef,
		&res.UserID,
		&res.FlightID,
		&res.ReturnFlightID,
		&res.TripType,
		&res.TravelClass,
		&res.TotalAmount,
		&res.BookingDate,
		&res.Status,
	)
}

// Create persists the reservation, its passengers and their seat
// assignments in a single transaction. The UNIQUE(flight_id, seat_number)
// constraint on seat_assignments rejects a seat already held by another
// non-cancelled reservation, so two concurrent bookings for the same seat
// cannot both succeed: one commits, the other rolls back with ErrSeatTaken.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation, passengers []models.Passenger) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reservations (booking_ref, user_id, flight_id, return_flight_id,
		                          trip_type, travel_class, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, booking_date`

	err = tx.QueryRowContext(ctx, query,
		res.BookingRef,
		res.UserID,
		res.FlightID,
		res.ReturnFlightID,
		res.TripType,
		res.TravelClass,
		res.TotalAmount,
		res.Status,
	).Scan(&res.ID, &res.BookingDate)
	if err != nil {
		return err
	}

	if err := insertPassengers(ctx, tx, res, passengers); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	res.Passengers = passengers
	return nil
}

// insertPassengers writes the passenger rows and claims their seats on the
// outbound leg and, for round trips, the return leg as well.
func insertPassengers(ctx context.Context, tx *sql.Tx, res *models.Reservation, passengers []models.Passenger) error {
	for i := range passengers {
		p := &passengers[i]
		p.ReservationID = res.ID
		p.Position = i

		query := `
			INSERT INTO passengers (reservation_id, position, full_name, age, gender,
			                        passport, seat_number, meal, baggage_kg)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`

		err := tx.QueryRowContext(ctx, query,
			p.ReservationID, p.Position, p.FullName, p.Age, p.Gender,
			p.Passport, p.SeatNumber, p.Meal, p.BaggageKg,
		).Scan(&p.ID)
		if err != nil {
			return err
		}

		legs := []int64{res.FlightID}
		if res.ReturnFlightID != nil {
			legs = append(legs, *res.ReturnFlightID)
		}

		for _, flightID := range legs {
			// seat_assignments carries a single unique constraint, so any
			// duplicate-key error here is a seat conflict.
			_, err := tx.ExecContext(ctx,
				`INSERT INTO seat_assignments (flight_id, seat_number, reservation_id) VALUES ($1, $2, $3)`,
				flightID, p.SeatNumber, res.ID)
			if isUniqueViolation(err, "") {
				return fmt.Errorf("seat %s on flight %d: %w", p.SeatNumber, flightID, apperrors.ErrSeatTaken)
			}
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// ReplacePassengers swaps the passenger list wholesale, releasing the old
// seat assignments and claiming the new ones in the same transaction. The
// reservation row is locked and its status re-read inside the transaction:
// a cancellation committed after the caller's read would otherwise let the
// edit re-claim seats on a cancelled reservation.
func (r *ReservationRepository) ReplacePassengers(ctx context.Context, res *models.Reservation, passengers []models.Passenger, totalAmount float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, res.ID).Scan(&status)
	if err == sql.ErrNoRows {
		return apperrors.ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if status == models.ReservationCancelled {
		return fmt.Errorf("cannot edit a cancelled reservation: %w", apperrors.ErrInvalidTransition)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM seat_assignments WHERE reservation_id = $1`, res.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM passengers WHERE reservation_id = $1`, res.ID); err != nil {
		return err
	}

	if err := insertPassengers(ctx, tx, res, passengers); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET total_amount = $1 WHERE id = $2`, totalAmount, res.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	res.TotalAmount = totalAmount
	res.Passengers = passengers
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, error) {
	res := &models.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	err := scanReservation(r.db.QueryRowContext(ctx, query, id), res)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	res.Passengers, err = r.getPassengers(ctx, id)
	return res, err
}

func (r *ReservationRepository) getPassengers(ctx context.Context, reservationID int64) ([]models.Passenger, error) {
	query := `
		SELECT id, reservation_id, position, full_name, age, gender,
		       passport, seat_number, meal, baggage_kg
		FROM passengers
		WHERE reservation_id = $1
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passengers []models.Passenger
	for rows.Next() {
		var p models.Passenger
		err := rows.Scan(
			&p.ID, &p.ReservationID, &p.Position, &p.FullName, &p.Age, &p.Gender,
			&p.Passport, &p.SeatNumber, &p.Meal, &p.BaggageKg,
		)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}

	return passengers, rows.Err()
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE user_id = $1
		ORDER BY booking_date DESC`

	return r.queryReservations(ctx, query, userID)
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		ORDER BY booking_date DESC`

	return r.queryReservations(ctx, query)
}

// ListByFlight returns reservations referencing the flight on either leg
func (r *ReservationRepository) ListByFlight(ctx context.Context, flightID int64) ([]models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
		WHERE flight_id = $1 OR return_flight_id = $1
		ORDER BY booking_date`

	return r.queryReservations(ctx, query, flightID)
}

func (r *ReservationRepository) queryReservations(ctx context.Context, query string, args ...interface{}) ([]models.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reservations {
		reservations[i].Passengers, err = r.getPassengers(ctx, reservations[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return reservations, nil
}

// UpdateStatus moves a reservation through its lifecycle under a row lock
// so concurrent transitions cannot interleave. Cancellation releases the
// seat assignments in the same transaction.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res := &models.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	err = scanReservation(tx.QueryRowContext(ctx, query, id), res)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	if !res.CanTransitionTo(status) {
		return nil, fmt.Errorf("%s -> %s: %w", res.Status, status, apperrors.ErrInvalidTransition)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = $1 WHERE id = $2`, status, id); err != nil {
		return nil, err
	}

	if status == models.ReservationCancelled {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM seat_assignments WHERE reservation_id = $1`, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	res.Status = status
	res.Passengers, err = r.getPassengers(ctx, id)
	return res, err
}
