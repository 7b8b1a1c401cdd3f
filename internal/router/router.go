package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dreamtrip-app/dreamtrip-api/internal/api/auth"
	"github.com/dreamtrip-app/dreamtrip-api/internal/api/discover"
	"github.com/dreamtrip-app/dreamtrip-api/internal/api/trip"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler            *auth.AuthHandler
	TripHandler            *trip.HandlerImpl
	DiscoverHandler        *discover.HandlerImpl
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:19006"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Public auth routes
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.RefreshSession)
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)

			r.Route("/trips", func(r chi.Router) {
				r.Post("/generate", cfg.TripHandler.GenerateTrip)
				r.Get("/", cfg.TripHandler.ListTrips)
				r.Route("/{tripID}", func(r chi.Router) {
					r.Get("/", cfg.TripHandler.GetTrip)
					r.Put("/plan", cfg.TripHandler.UpdatePlan)
					r.Put("/notes", cfg.TripHandler.UpdateNotes)
					r.Delete("/", cfg.TripHandler.DeleteTrip)
				})
			})

			r.Route("/discover", func(r chi.Router) {
				r.Get("/packages", cfg.DiscoverHandler.GetPackages)
				r.Get("/places", cfg.DiscoverHandler.GetPlaces)
				r.Post("/quick-trip", cfg.DiscoverHandler.QuickTrip)
			})
		})
	})

	return r
}
