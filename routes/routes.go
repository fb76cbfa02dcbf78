package routes

import (
	"net/http"
	"time"

	"github.com/autotrack/vehicle-records/app"
	"github.com/autotrack/vehicle-records/handlers"
	"github.com/autotrack/vehicle-records/middleware"
	"github.com/autotrack/vehicle-records/models"
	"github.com/autotrack/vehicle-records/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const defaultRequestTimeout = 60 * time.Second

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	timeout := defaultRequestTimeout
	if deps.Config != nil && deps.Config.Server.RequestTimeout > 0 {
		timeout = deps.Config.Server.RequestTimeout
	}

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var db handlers.DatabaseChecker
	if deps.DB != nil {
		db = deps.DB
	}
	health := handlers.NewHealthHandler(db, deps.Logger)

	users := handlers.NewUserHandler(deps.Users, deps.Logger)
	cars := handlers.NewCarHandler(deps.Cars, deps.Logger)
	tunings := handlers.NewRecordHandler[models.Tuning]("tuning", deps.Tunings, deps.Logger)
	maintenances := handlers.NewRecordHandler[models.Maintenance]("maintenance", deps.Maintenances, deps.Logger)
	fuelEfficiencies := handlers.NewRecordHandler[models.FuelEfficiency]("fuel efficiency", deps.FuelEfficiencies, deps.Logger)
	accidents := handlers.NewRecordHandler[models.Accident]("accident", deps.Accidents, deps.Logger)
	inspections := handlers.NewRecordHandler[models.PeriodicInspection]("periodic inspection", deps.PeriodicInspections, deps.Logger)
	upload := handlers.NewUploadHandler(deps.Images, handlers.DefaultMaxImageBytes, deps.Logger)

	// Public endpoints
	r.Get("/", handlers.Hello)
	r.Post("/", handlers.Hello)
	r.Get("/healthz", health.HandleHealth)
	r.Get("/readyz", health.HandleReadiness)

	// Everything else requires a verified Firebase ID token
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreate)
			r.Get("/", users.HandleList)
			r.Get("/{id}", users.HandleGet)
			r.Put("/{id}", users.HandleUpdate)
			r.Delete("/{id}", users.HandleDelete)
			r.Get("/{user_id}/cars", cars.HandleListByUser)
		})

		r.Route("/cars", func(r chi.Router) {
			r.Post("/", cars.HandleCreate)
			r.Get("/", cars.HandleList)
			r.Get("/{id}", cars.HandleGet)
			r.Put("/{id}", cars.HandleUpdate)
			r.Delete("/{id}", cars.HandleDelete)
			r.Put("/{id}/image", cars.HandleUpdateImage)
		})

		r.Route("/tunings", recordRoutes(tunings))
		r.Route("/maintenances", recordRoutes(maintenances))
		r.Route("/fuel_efficiencies", recordRoutes(fuelEfficiencies))
		r.Route("/accidents", recordRoutes(accidents))
		r.Route("/periodic_inspections", recordRoutes(inspections))

		r.Post("/upload_image", upload.HandleUpload)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// recordRoutes mounts the five CRUD endpoints of a RecordHandler
func recordRoutes[T any](h *handlers.RecordHandler[T]) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	}
}
