package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"

	"github.com/lib/pq"
)

type FlightRepository struct {
	db *database.DB
}

func NewFlightRepository(db *database.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, departure_date,
       departure_time, arrival_time, aircraft, seat_capacity, price, status`

func scanFlight(row interface{ Scan(...interface{}) error }, f *models.Flight) error {
	return row.Scan(
		&f.ID,
		&f.FlightNumber,
		&f.Origin,
		&f.Destination,
		&f.DepartureDate,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.Aircraft,
		&f.SeatCapacity,
		&f.Price,
		&f.Status,
	)
}

func (r *FlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	query := `
		INSERT INTO flights (flight_number, origin, destination, departure_date,
		                     departure_time, arrival_time, aircraft, seat_capacity, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		flight.FlightNumber,
		flight.Origin,
		flight.Destination,
		flight.DepartureDate,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.Aircraft,
		flight.SeatCapacity,
		flight.Price,
		flight.Status,
	).Scan(&flight.ID)

	if isUniqueViolation(err, "flights_flight_number_key") {
		return apperrors.ErrDuplicateFlightNumber
	}

	return err
}

func (r *FlightRepository) GetByID(ctx context.Context, id int64) (*models.Flight, error) {
	flight := &models.Flight{}
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`

	err := scanFlight(r.db.QueryRowContext(ctx, query, id), flight)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return flight, err
}

func (r *FlightRepository) GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	flight := &models.Flight{}
	query := `SELECT ` + flightColumns + ` FROM flights WHERE flight_number = $1`

	err := scanFlight(r.db.QueryRowContext(ctx, query, flightNumber), flight)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	return flight, err
}

func (r *FlightRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Flight, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + flightColumns + ` FROM flights
		WHERE id = ANY($1)
		ORDER BY departure_date, departure_time`

	return r.queryFlights(ctx, query, pq.Array(ids))
}

func (r *FlightRepository) List(ctx context.Context) ([]models.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights
		ORDER BY departure_date, departure_time`

	return r.queryFlights(ctx, query)
}

// Search filters by route, and optionally a single departure day.
// Empty result sets are not an error.
func (r *FlightRepository) Search(ctx context.Context, origin, destination string, date *time.Time) ([]models.Flight, error) {
	var args []interface{}
	argIndex := 1

	query := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`

	if origin != "" {
		query += fmt.Sprintf(" AND origin = $%d", argIndex)
		args = append(args, origin)
		argIndex++
	}

	if destination != "" {
		query += fmt.Sprintf(" AND destination = $%d", argIndex)
		args = append(args, destination)
		argIndex++
	}

	if date != nil {
		query += fmt.Sprintf(" AND departure_date = $%d", argIndex)
		args = append(args, date.Format("2006-01-02"))
		argIndex++
	}

	query += " ORDER BY departure_date, departure_time"

	return r.queryFlights(ctx, query, args...)
}

func (r *FlightRepository) Update(ctx context.Context, flight *models.Flight) error {
	query := `
		UPDATE flights
		SET origin = $1, destination = $2, departure_date = $3, departure_time = $4,
		    arrival_time = $5, aircraft = $6, seat_capacity = $7, price = $8, status = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		flight.Origin,
		flight.Destination,
		flight.DepartureDate,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.Aircraft,
		flight.SeatCapacity,
		flight.Price,
		flight.Status,
		flight.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrFlightNotFound
	}

	return nil
}

func (r *FlightRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrFlightNotFound
	}

	return nil
}

func (r *FlightRepository) queryFlights(ctx context.Context, query string, args ...interface{}) ([]models.Flight, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flights []models.Flight
	for rows.Next() {
		var flight models.Flight
		if err := scanFlight(rows, &flight); err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}

	return flights, rows.Err()
}

// ListPopular returns curated promotions joined with their flights
func (r *FlightRepository) ListPopular(ctx context.Context) ([]models.PopularFlight, error) {
	query := `
		SELECT p.id, p.flight_id, p.start_date, p.end_date, p.travel_class, p.trip_type, p.image,
		       f.id, f.flight_number, f.origin, f.destination, f.departure_date,
		       f.departure_time, f.arrival_time, f.aircraft, f.seat_capacity, f.price, f.status
		FROM popular_flights p
		JOIN flights f ON f.id = p.flight_id
		ORDER BY p.start_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var popular []models.PopularFlight
	for rows.Next() {
		var p models.PopularFlight
		var f models.Flight
		err := rows.Scan(
			&p.ID, &p.FlightID, &p.StartDate, &p.EndDate, &p.TravelClass, &p.TripType, &p.Image,
			&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureDate,
			&f.DepartureTime, &f.ArrivalTime, &f.Aircraft, &f.SeatCapacity, &f.Price, &f.Status,
		)
		if err != nil {
			return nil, err
		}
		p.Flight = &f
		popular = append(popular, p)
	}

	return popular, rows.Err()
}

func (r *FlightRepository) CreatePopular(ctx context.Context, p *models.PopularFlight) error {
	query := `
		INSERT INTO popular_flights (flight_id, start_date, end_date, travel_class, trip_type, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		p.FlightID, p.StartDate, p.EndDate, p.TravelClass, p.TripType, p.Image,
	).Scan(&p.ID)
}
