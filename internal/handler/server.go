// Package handler implements the HTTP handlers for the vacation planner.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, vacation.go, leg.go, etc.) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/vacation-planner/internal/domain"
	"github.com/pkordes/vacation-planner/internal/middleware"
	"github.com/pkordes/vacation-planner/internal/session"
)

// VacationServicer defines the vacation operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type VacationServicer interface {
	Create(ctx context.Context, owner domain.User, fields map[string]string) (domain.Vacation, error)
	Profile(ctx context.Context, owner domain.User) (domain.ProfileView, error)
	Detail(ctx context.Context, owner domain.User, id uuid.UUID) (domain.VacationView, error)
	UpdateBudget(ctx context.Context, owner domain.User, id uuid.UUID, fields map[string]string) error
}

// LegServicer defines the leg operations the handlers depend on.
type LegServicer interface {
	AddLeg(ctx context.Context, owner domain.User, vacationID uuid.UUID, fields map[string]string) (domain.Leg, error)
	UpdateAccommodation(ctx context.Context, id uuid.UUID, fields map[string]string) error
	UpdateTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error
	SubmitTransportation(ctx context.Context, id uuid.UUID, fields map[string]string) error
}

// AuthServicer defines the account operations the handlers depend on.
type AuthServicer interface {
	Signup(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Connect(ctx context.Context, user domain.User, email, password string) (domain.User, error)
	Unlink(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// ExportServicer defines the export operation the handlers depend on.
type ExportServicer interface {
	Export(ctx context.Context, owner domain.User, id uuid.UUID) ([]domain.ExportRow, error)
}

// SessionStore is the session persistence the handlers depend on.
type SessionStore interface {
	middleware.SessionLoader
	Save(ctx context.Context, sess *session.Session) error
	Delete(ctx context.Context, id string) error
	Rotate(ctx context.Context, sess *session.Session) error
}

// Deps groups the dependencies of a Server.
type Deps struct {
	Vacations VacationServicer
	Legs      LegServicer
	Auth      AuthServicer
	Export    ExportServicer
	Sessions  SessionStore
	Cookie    session.Cookie
	Views     *Renderer
	Logger    *slog.Logger
}

// Server serves every page and form endpoint of the application.
type Server struct {
	vacations VacationServicer
	legs      LegServicer
	auth      AuthServicer
	export    ExportServicer
	sessions  SessionStore
	cookie    session.Cookie
	views     *Renderer
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil Logger falls back to slog.Default().
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		vacations: d.Vacations,
		legs:      d.Legs,
		auth:      d.Auth,
		export:    d.Export,
		sessions:  d.Sessions,
		cookie:    d.Cookie,
		views:     d.Views,
		log:       log,
	}
}

// Routes returns the application router. Every route runs with a session in
// its context; the group behind requireUser also has the current user.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NewSessionHandler(s.sessions, s.cookie, s.log))

	r.Get("/healthz", s.getHealth)
	r.Get("/", s.getIndex)

	r.Get("/login", s.getLogin)
	r.Post("/login", s.postLogin)
	r.Get("/signup", s.getSignup)
	r.Post("/signup", s.postSignup)
	r.Get("/connect/local", s.getConnectLocal)
	r.Post("/connect/local", s.postConnectLocal)
	r.Get("/logout", s.getLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/unlink/local", s.getUnlinkLocal)

		r.Get("/profile", s.getProfile)
		r.Get("/vacation/{id}", s.getVacation)
		r.Get("/vacation/{id}/export", s.getExport)
		r.Get("/create", s.getCreate)
		r.Post("/create", s.postCreate)
		r.Post("/updateBudget/{id}", s.postUpdateBudget)

		r.Post("/accommodationSubmit", s.postAccommodationSubmit)
		r.Post("/updateAccommodationLeg/{id}", s.postUpdateAccommodation)
		r.Post("/updateTransportationLeg/{id}", s.postUpdateTransportation)
		r.Post("/transportationSubmit/{id}", s.postTransportationSubmit)
	})

	return r
}
