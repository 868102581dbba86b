package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createFlightsTable,
		createReservationsTable,
		createPassengersTable,
		createSeatAssignmentsTable,
		createPopularFlightsTable,
		createFlightRouteIndex,
		createReservationFlightIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    first_name VARCHAR(100) NOT NULL,
    last_name VARCHAR(100) NOT NULL,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(100) NOT NULL,
    date_of_birth DATE NOT NULL,
    role VARCHAR(10) NOT NULL DEFAULT 'User',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (role IN ('Admin', 'User'))
);`

const createFlightsTable = `
CREATE TABLE IF NOT EXISTS flights (
    id SERIAL PRIMARY KEY,
    flight_number VARCHAR(10) UNIQUE NOT NULL,
    origin VARCHAR(100) NOT NULL,
    destination VARCHAR(100) NOT NULL,
    departure_date DATE NOT NULL,
    departure_time VARCHAR(5) NOT NULL,
    arrival_time VARCHAR(5) NOT NULL,
    aircraft VARCHAR(100) NOT NULL,
    seat_capacity INTEGER NOT NULL,
    price DECIMAL(10,2) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Scheduled',

    CHECK (status IN ('Scheduled', 'On Time', 'Delayed', 'Cancelled')),
    CHECK (seat_capacity > 0)
);`

const createReservationsTable = `
CREATE TABLE IF NOT EXISTS reservations (
    id SERIAL PRIMARY KEY,
    booking_ref UUID NOT NULL UNIQUE,
    user_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
    flight_id INTEGER NOT NULL REFERENCES flights(id),
    return_flight_id INTEGER REFERENCES flights(id),
    trip_type VARCHAR(10) NOT NULL DEFAULT 'One-Way',
    travel_class VARCHAR(20) NOT NULL DEFAULT 'Economy',
    total_amount DECIMAL(10,2) NOT NULL DEFAULT 0,
    booking_date TIMESTAMP NOT NULL DEFAULT NOW(),
    status VARCHAR(10) NOT NULL DEFAULT 'Pending',

    CHECK (trip_type IN ('One-Way', 'Round-Trip')),
    CHECK (travel_class IN ('Economy', 'Premium Economy', 'Business', 'First')),
    CHECK (status IN ('Pending', 'Confirmed', 'Cancelled'))
);`

const createPassengersTable = `
CREATE TABLE IF NOT EXISTS passengers (
    id SERIAL PRIMARY KEY,
    reservation_id INTEGER NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    full_name VARCHAR(200) NOT NULL,
    age INTEGER NOT NULL,
    gender VARCHAR(20),
    passport VARCHAR(50) NOT NULL,
    seat_number VARCHAR(4) NOT NULL,
    meal VARCHAR(20) NOT NULL DEFAULT 'None',
    baggage_kg INTEGER NOT NULL DEFAULT 0,

    UNIQUE(reservation_id, position),
    CHECK (meal IN ('Vegetarian', 'Non-Vegetarian', 'Vegan', 'Gluten-Free', 'None')),
    CHECK (baggage_kg >= 0)
);`

// seat_assignments is the storage-enforced seat lock: rows exist only for
// non-cancelled reservations, so the unique constraint makes a double
// booking impossible regardless of request interleaving.
const createSeatAssignmentsTable = `
CREATE TABLE IF NOT EXISTS seat_assignments (
    id SERIAL PRIMARY KEY,
    flight_id INTEGER NOT NULL REFERENCES flights(id),
    seat_number VARCHAR(4) NOT NULL,
    reservation_id INTEGER NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,

    UNIQUE(flight_id, seat_number)
);`

const createPopularFlightsTable = `
CREATE TABLE IF NOT EXISTS popular_flights (
    id SERIAL PRIMARY KEY,
    flight_id INTEGER NOT NULL REFERENCES flights(id) ON DELETE CASCADE,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,
    travel_class VARCHAR(20) NOT NULL DEFAULT 'Economy',
    trip_type VARCHAR(10) NOT NULL,
    image VARCHAR(500),

    CHECK (trip_type IN ('One-Way', 'Round-Trip'))
);`

const createFlightRouteIndex = `
CREATE INDEX IF NOT EXISTS flights_route_date_idx
ON flights (origin, destination, departure_date);`

const createReservationFlightIndex = `
CREATE INDEX IF NOT EXISTS reservations_flight_status_idx
ON reservations (flight_id, status);`
