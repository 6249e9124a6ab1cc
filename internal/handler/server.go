// Package handler implements the HTTP handlers for the RoamLog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, etc.) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/roamlog/backend/internal/auth"
	"github.com/pkordes/roamlog/backend/internal/domain"
	"github.com/pkordes/roamlog/backend/internal/middleware"
)

// AuthServicer defines the account operations the auth handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Signup(ctx context.Context, username, password string) (domain.Session, error)
	Login(ctx context.Context, username, password string) (domain.Session, error)
	CurrentUser(token string) *domain.Identity
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// EntryServicer defines the business operations the entry handlers depend on.
type EntryServicer interface {
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Entry, error)
	Create(ctx context.Context, userID uuid.UUID, entry domain.Entry) (domain.Entry, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Entry, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch domain.EntryPatch) (domain.Entry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExportServicer builds the flat export of one trip.
type ExportServicer interface {
	Export(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// PlannerServicer generates itineraries and saves them as trips.
type PlannerServicer interface {
	Generate(ctx context.Context, req domain.ItineraryRequest) (string, error)
	Plan(ctx context.Context, userID uuid.UUID, req domain.PlanRequest) (domain.Plan, error)
}

// Deps collects everything the Server needs. Nil services are allowed in
// tests that never hit the corresponding routes.
type Deps struct {
	Auth    AuthServicer
	Trips   TripServicer
	Entries EntryServicer
	Export  ExportServicer
	Planner PlannerServicer

	// Tokens verifies the session cookie on protected routes.
	Tokens  middleware.TokenVerifier
	Cookies auth.Cookies

	// AILimiter throttles the /ai routes per caller. Nil disables it.
	AILimiter *middleware.RateLimiter

	Logger *slog.Logger
}

// Server holds the handler dependencies. Build one with NewServer and serve
// it through Routes.
type Server struct {
	auth    AuthServicer
	trips   TripServicer
	entries EntryServicer
	export  ExportServicer
	planner PlannerServicer

	tokens    middleware.TokenVerifier
	cookies   auth.Cookies
	aiLimiter *middleware.RateLimiter
	log       *slog.Logger
	validate  *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:      d.Auth,
		trips:     d.Trips,
		entries:   d.Entries,
		export:    d.Export,
		planner:   d.Planner,
		tokens:    d.Tokens,
		cookies:   d.Cookies,
		aiLimiter: d.AILimiter,
		log:       log,
		validate:  newValidator(),
	}
}

// Routes returns the API router. main.go mounts it under /api.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "not_found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "method_not_allowed")
	})

	r.Get("/healthz", s.GetHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.Get("/me", s.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(s.tokens))

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Get("/{id}/export", s.ExportTrip)
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.ListEntries)
			r.Post("/", s.CreateEntry)
			r.Get("/{id}", s.GetEntry)
			r.Put("/{id}", s.UpdateEntry)
			r.Delete("/{id}", s.DeleteEntry)
		})

		r.Route("/ai", func(r chi.Router) {
			if s.aiLimiter != nil {
				r.Use(s.aiLimiter.Handler)
			}
			r.Post("/itinerary", s.GenerateItinerary)
			r.Post("/plans", s.CreatePlan)
		})
	})

	return r
}

// callerID returns the authenticated user. RequireAuth guarantees it is
// present on every protected route.
func callerID(r *http.Request) uuid.UUID {
	id, _ := auth.IdentityFromContext(r.Context())
	return id.UserID
}
