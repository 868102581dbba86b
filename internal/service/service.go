package service

import (
	"skybook/internal/messaging"
	"skybook/internal/repository"
	"skybook/internal/search"
)

type Services struct {
	Flights      *FlightService
	Reservations *ReservationService
	Users        *UserService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, searchClient *search.Client) *Services {
	return &Services{
		Flights:      NewFlightService(repos.Flights, searchClient),
		Reservations: NewReservationService(repos.Reservations, repos.Flights, natsClient),
		Users:        NewUserService(repos.Users),
	}
}
