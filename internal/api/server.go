package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/internal/config"
	"skybook/internal/database"
	"skybook/internal/handlers"
	"skybook/internal/logger"
	"skybook/internal/messaging"
	"skybook/internal/metrics"
	"skybook/internal/middleware"
	"skybook/internal/repository"
	"skybook/internal/search"
	"skybook/internal/service"
	"skybook/internal/session"
)

type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	sessions *session.RedisStore
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	sessionStore, err := session.NewRedisStore(cfg.Session)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Optional; a nil client makes flight search fall back to SQL
	var searchClient *search.Client
	if cfg.Search.URL != "" {
		searchClient, err = search.NewClient(cfg.Search)
		if err != nil {
			logger.Get().Error("Search index unavailable, continuing without it", "error", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, searchClient)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		sessions: sessionStore,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.sessions, s.config.Session)
	auth := middleware.SessionAuth(s.sessions, s.config.Session.CookieName)

	flights := s.router.Group("/flights")
	{
		flights.GET("", h.ListFlights)
		flights.GET("/search", h.SearchFlights)
		flights.GET("/popular", h.PopularFlights)
		flights.GET("/:flightNumber", h.GetFlight)
		flights.GET("/:flightNumber/occupied-seats", h.OccupiedSeats)
	}

	reservations := s.router.Group("/reservations")
	reservations.Use(auth)
	{
		reservations.POST("/create", h.CreateReservation)
		reservations.GET("/my-bookings", h.MyBookings)
		reservations.GET("/:id", h.GetReservation)
		reservations.POST("/:id/edit", h.EditReservation)
		reservations.POST("/cancel/:id", h.CancelReservation)
	}

	users := s.router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/forgot-password", h.ForgotPassword)

		users.POST("/logout", auth, h.Logout)
		users.GET("/profile", auth, h.Profile)
		users.POST("/edit/:id", auth, h.EditProfile)
		users.POST("/change-password/:id", auth, h.ChangePassword)
		users.POST("/delete/:id", auth, h.DeleteAccount)
	}

	admin := s.router.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/create", h.CreateFlight)
		admin.PUT("/update/:id", h.UpdateFlight)
		admin.DELETE("/delete/:id", h.DeleteFlight)

		admin.GET("/reservations", h.ListReservations)
		admin.POST("/reservations/:id/confirm", h.ConfirmReservation)
		admin.POST("/reservations/:id/cancel", h.AdminCancelReservation)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", metrics.Handler())
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":    dbHealth.Status,
		"service":   "skybook-api",
		"database":  dbHealth,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) Cleanup() error {
	if err := s.nats.Close(); err != nil {
		return err
	}
	if err := s.sessions.Close(); err != nil {
		return err
	}
	return s.db.Close()
}
