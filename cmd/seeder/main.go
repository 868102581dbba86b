package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"skybook/internal/config"
	"skybook/internal/database"
	apperrors "skybook/internal/errors"
	"skybook/internal/models"
	"skybook/internal/repository"
)

var (
	days    = flag.Int("days", 30, "Number of departure days to seed flights for")
	perDay  = flag.Int("per-day", 1, "Flights per route per day")
	dryRun  = flag.Bool("dry-run", false, "Show what would be seeded without making changes")
	noAdmin = flag.Bool("no-admin", false, "Skip creating the default admin account")
)

type Seeder struct {
	repos *repository.Repositories
}

var routes = []struct {
	origin      string
	destination string
	departs     string
	arrives     string
	price       float64
}{
	{"Manila", "Hong Kong", "08:00", "10:15", 4500},
	{"Manila", "Singapore", "09:30", "13:10", 5200},
	{"Manila", "Tokyo", "07:45", "12:30", 7800},
	{"Hong Kong", "Manila", "11:30", "13:45", 4500},
	{"Singapore", "Manila", "14:20", "18:00", 5200},
	{"Tokyo", "Manila", "13:40", "17:25", 7800},
	{"Manila", "Seoul", "06:15", "11:05", 6900},
	{"Seoul", "Manila", "12:30", "16:20", 6900},
	{"Cebu", "Manila", "10:00", "11:20", 2100},
	{"Manila", "Cebu", "16:45", "18:05", 2100},
}

var aircraft = []string{"Airbus A320", "Airbus A330", "Boeing 737", "Boeing 777"}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	slog.Info("Starting seeder...")

	cfg := config.Load()
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := &Seeder{repos: repository.NewRepositories(db)}
	ctx := context.Background()

	if !*noAdmin {
		if err := seeder.seedAdmin(ctx); err != nil {
			slog.Error("Failed to seed admin account", "error", err)
			os.Exit(1)
		}
	}

	if err := seeder.seedFlights(ctx); err != nil {
		slog.Error("Failed to seed flights", "error", err)
		os.Exit(1)
	}

	if err := seeder.seedPopularFlights(ctx); err != nil {
		slog.Error("Failed to seed popular flights", "error", err)
		os.Exit(1)
	}

	slog.Info("Seeding completed successfully!")
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
		slog.Warn("ADMIN_PASSWORD not set, using the default")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        "admin@skybook.local",
		PasswordHash: string(hash),
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Role:         models.RoleAdmin,
	}

	if *dryRun {
		slog.Info("Would create admin account", "email", admin.Email)
		return nil
	}

	err = s.repos.Users.Create(ctx, admin)
	if errors.Is(err, apperrors.ErrDuplicateEmail) {
		slog.Info("Admin account already exists", "email", admin.Email)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Created admin account", "email", admin.Email)
	return nil
}

func (s *Seeder) seedFlights(ctx context.Context) error {
	created := 0
	number := 1001

	for day := 0; day < *days; day++ {
		departureDate := time.Now().AddDate(0, 0, day).Truncate(24 * time.Hour)

		for _, route := range routes {
			for n := 0; n < *perDay; n++ {
				flight := &models.Flight{
					FlightNumber:  fmt.Sprintf("AA%d", number),
					Origin:        route.origin,
					Destination:   route.destination,
					DepartureDate: departureDate,
					DepartureTime: route.departs,
					ArrivalTime:   route.arrives,
					Aircraft:      aircraft[rand.Intn(len(aircraft))],
					SeatCapacity:  180,
					Price:         route.price,
					Status:        models.FlightScheduled,
				}
				number++

				if *dryRun {
					continue
				}

				err := s.repos.Flights.Create(ctx, flight)
				if errors.Is(err, apperrors.ErrDuplicateFlightNumber) {
					continue
				}
				if err != nil {
					return err
				}
				created++
			}
		}
	}

	slog.Info("Seeded flights", "created", created, "dry_run", *dryRun)
	return nil
}

// seedPopularFlights promotes the first flight of a few routes on the
// catalog landing page.
func (s *Seeder) seedPopularFlights(ctx context.Context) error {
	promoted := []string{"AA1001", "AA1002", "AA1003"}

	for _, flightNumber := range promoted {
		flight, err := s.repos.Flights.GetByFlightNumber(ctx, flightNumber)
		if err != nil {
			return err
		}
		if flight == nil {
			continue
		}

		popular := &models.PopularFlight{
			FlightID:    flight.ID,
			StartDate:   time.Now().Truncate(24 * time.Hour),
			EndDate:     time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour),
			TravelClass: models.ClassEconomy,
			TripType:    models.TripRoundTrip,
		}

		if *dryRun {
			slog.Info("Would promote flight", "flight_number", flightNumber)
			continue
		}

		if err := s.repos.Flights.CreatePopular(ctx, popular); err != nil {
			return err
		}
		slog.Info("Promoted flight", "flight_number", flightNumber)
	}

	return nil
}
