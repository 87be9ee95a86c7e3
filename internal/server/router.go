// Package server wires the development backend: routes, middleware and background jobs.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dabi61/opensky/internal/config"
	"github.com/dabi61/opensky/internal/server/handlers"
	"github.com/dabi61/opensky/internal/server/middleware"
	"github.com/dabi61/opensky/internal/server/storage"
)

const healthPath = "/api/v1/health"

// Store is everything the HTTP layer needs from persistence
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.CatalogStorage
	storage.BookingStorage
	handlers.Pinger
}

// Deps собирает зависимости роутера
type Deps struct {
	Logger    *slog.Logger
	Store     Store
	JWT       handlers.JWTConfig
	RateLimit config.RateLimitConfig
	Version   string
}

// NewRouter builds the REST API. The returned func stops the rate limiter janitors.
func NewRouter(d Deps) (http.Handler, func()) {
	authHandler := handlers.NewAuthHandler(d.Logger, d.Store, d.Store, d.JWT)
	profileHandler := handlers.NewProfileHandler(d.Logger, d.Store)
	catalogHandler := handlers.NewCatalogHandler(d.Logger, d.Store, d.Store)
	bookingHandler := handlers.NewBookingHandler(d.Logger, d.Store, d.Store)
	healthHandler := handlers.NewHealthHandler(d.Logger, d.Store, d.Version)

	// Подбор пароля ограничиваем жестче остального API
	credentialLimit := max(d.RateLimit.RequestsPerMinute/12, 1)
	rateLimit, stopRateLimit := middleware.RateLimitMiddleware(d.Logger,
		d.RateLimit.RequestsPerMinute, d.RateLimit.Burst,
		middleware.PathRateLimit{Path: "/api/v1/auth/login", PerMinute: credentialLimit, Burst: 5},
		middleware.PathRateLimit{Path: "/api/v1/auth/register", PerMinute: credentialLimit, Burst: 5},
	)

	router := mux.NewRouter()
	router.NotFoundHandler = errorHandler(d.Logger, "not found", http.StatusNotFound)
	router.MethodNotAllowedHandler = errorHandler(d.Logger, "method not allowed", http.StatusMethodNotAllowed)

	router.Use(middleware.RecoveryMiddleware(d.Logger))
	router.Use(middleware.LoggingMiddleware(d.Logger, healthPath))
	router.Use(rateLimit)

	router.HandleFunc(healthPath, healthHandler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(d.Logger, d.JWT))
	protected.Use(middleware.RecordUser)

	protected.HandleFunc("/me", profileHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/me", profileHandler.Update).Methods(http.MethodPut)

	protected.HandleFunc("/hotels", catalogHandler.ListHotels).Methods(http.MethodGet)
	protected.HandleFunc("/hotels/{id}", catalogHandler.GetHotel).Methods(http.MethodGet)
	protected.HandleFunc("/hotels/{id}/rooms", catalogHandler.ListRooms).Methods(http.MethodGet)

	protected.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/pay", bookingHandler.Pay).Methods(http.MethodPost)

	return router, stopRateLimit
}

func errorHandler(logger *slog.Logger, message string, code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.SendError(w, logger, message, code)
	})
}
