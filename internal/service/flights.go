package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "skybook/internal/errors"
	"skybook/internal/logger"
	"skybook/internal/models"
	"skybook/internal/search"
)

// FlightStore is the persistence contract of the flight service. The
// postgres repository implements it; tests substitute a fake.
type FlightStore interface {
	Create(ctx context.Context, flight *models.Flight) error
	GetByID(ctx context.Context, id int64) (*models.Flight, error)
	GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Flight, error)
	List(ctx context.Context) ([]models.Flight, error)
	Search(ctx context.Context, origin, destination string, date *time.Time) ([]models.Flight, error)
	Update(ctx context.Context, flight *models.Flight) error
	Delete(ctx context.Context, id int64) error
	ListPopular(ctx context.Context) ([]models.PopularFlight, error)
}

type FlightService struct {
	flightRepo   FlightStore
	searchClient *search.Client // nil when Elasticsearch is not configured
}

func NewFlightService(flightRepo FlightStore, searchClient *search.Client) *FlightService {
	return &FlightService{
		flightRepo:   flightRepo,
		searchClient: searchClient,
	}
}

var validFlightStatuses = map[string]bool{
	models.FlightScheduled: true,
	models.FlightOnTime:    true,
	models.FlightDelayed:   true,
	models.FlightCancelled: true,
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, apperrors.ErrValidation)
	}
	return day, nil
}

func (s *FlightService) Create(ctx context.Context, req *models.CreateFlightRequest) (*models.Flight, error) {
	departureDate, err := parseDay(req.DepartureDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.FlightScheduled
	}
	if !validFlightStatuses[status] {
		return nil, fmt.Errorf("invalid flight status %q: %w", status, apperrors.ErrValidation)
	}

	flight := &models.Flight{
		FlightNumber:  strings.ToUpper(strings.TrimSpace(req.FlightNumber)),
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: departureDate,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Aircraft:      req.Aircraft,
		SeatCapacity:  req.SeatCapacity,
		Price:         req.Price,
		Status:        status,
	}

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.indexFlight(ctx, flight)
	return flight, nil
}

func (s *FlightService) indexFlight(ctx context.Context, flight *models.Flight) {
	if s.searchClient == nil {
		return
	}
	if err := s.searchClient.IndexFlight(ctx, flight); err != nil {
		logger.WithContext(ctx).Error("Failed to index flight",
			"error", err,
			"flight_number", flight.FlightNumber)
	}
}

func (s *FlightService) List(ctx context.Context) ([]models.Flight, error) {
	flights, err := s.flightRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	return flights, nil
}

func (s *FlightService) GetByFlightNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	flight, err := s.flightRepo.GetByFlightNumber(ctx, strings.ToUpper(strings.TrimSpace(flightNumber)))
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if flight == nil {
		return nil, apperrors.ErrFlightNotFound
	}
	return flight, nil
}

// Search filters by route at day granularity. For round trips the reverse
// route is searched on the return date as a second leg. No matches is an
// empty result, not an error.
func (s *FlightService) Search(ctx context.Context, origin, destination, departureDate, returnDate, tripType string) (*models.SearchFlightsResponse, error) {
	outbound, err := s.searchLeg(ctx, origin, destination, departureDate)
	if err != nil {
		return nil, err
	}

	response := &models.SearchFlightsResponse{
		OutboundFlights: outbound,
		ReturnFlights:   []models.Flight{},
	}

	if strings.EqualFold(tripType, models.TripRoundTrip) && returnDate != "" {
		returning, err := s.searchLeg(ctx, destination, origin, returnDate)
		if err != nil {
			return nil, err
		}
		response.ReturnFlights = returning
	}

	return response, nil
}

func (s *FlightService) searchLeg(ctx context.Context, origin, destination, date string) ([]models.Flight, error) {
	var day *time.Time
	if date != "" {
		parsed, err := parseDay(date)
		if err != nil {
			return nil, err
		}
		day = &parsed
	}

	// Prefer the search index; fall back to SQL when it is not configured
	// or the query fails.
	if s.searchClient != nil {
		ids, err := s.searchClient.SearchFlights(ctx, origin, destination, date)
		if err == nil {
			flights, err := s.flightRepo.GetByIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("failed to load flights: %w", err)
			}
			if flights == nil {
				flights = []models.Flight{}
			}
			return flights, nil
		}
		logger.WithContext(ctx).Error("Search index query failed, falling back to SQL", "error", err)
	}

	flights, err := s.flightRepo.Search(ctx, origin, destination, day)
	if err != nil {
		return nil, fmt.Errorf("failed to search flights: %w", err)
	}
	if flights == nil {
		flights = []models.Flight{}
	}
	return flights, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, req *models.UpdateFlightRequest) (*models.Flight, error) {
	flight, err := s.flightRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	if flight == nil {
		return nil, apperrors.ErrFlightNotFound
	}

	if req.Origin != nil {
		flight.Origin = *req.Origin
	}
	if req.Destination != nil {
		flight.Destination = *req.Destination
	}
	if req.DepartureDate != nil {
		departureDate, err := parseDay(*req.DepartureDate)
		if err != nil {
			return nil, err
		}
		flight.DepartureDate = departureDate
	}
	if req.DepartureTime != nil {
		flight.DepartureTime = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		flight.ArrivalTime = *req.ArrivalTime
	}
	if req.Aircraft != nil {
		flight.Aircraft = *req.Aircraft
	}
	if req.SeatCapacity != nil {
		if *req.SeatCapacity <= 0 {
			return nil, fmt.Errorf("seat capacity must be positive: %w", apperrors.ErrValidation)
		}
		flight.SeatCapacity = *req.SeatCapacity
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be positive: %w", apperrors.ErrValidation)
		}
		flight.Price = *req.Price
	}
	if req.Status != nil {
		if !validFlightStatuses[*req.Status] {
			return nil, fmt.Errorf("invalid flight status %q: %w", *req.Status, apperrors.ErrValidation)
		}
		flight.Status = *req.Status
	}

	if err := s.flightRepo.Update(ctx, flight); err != nil {
		return nil, err
	}

	s.indexFlight(ctx, flight)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.flightRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchClient != nil {
		if err := s.searchClient.DeleteFlight(ctx, id); err != nil {
			logger.WithContext(ctx).Error("Failed to remove flight from index",
				"error", err,
				"flight_id", id)
		}
	}

	return nil
}

func (s *FlightService) ListPopular(ctx context.Context) ([]models.PopularFlight, error) {
	popular, err := s.flightRepo.ListPopular(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular flights: %w", err)
	}
	if popular == nil {
		popular = []models.PopularFlight{}
	}
	return popular, nil
}
