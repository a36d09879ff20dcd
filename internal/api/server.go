// Package api serves the dashboard HTTP API: scorecards, filters,
// forecast tiles and series, and CRM records.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/truckline/bdm-console/internal/auth"
	"github.com/truckline/bdm-console/internal/crm"
	"github.com/truckline/bdm-console/internal/forecast"
	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/store"
)

// RefDataStore is the slice of the reference-data layer the API reads.
type RefDataStore interface {
	ListDealerships(ctx context.Context) ([]model.Dealership, error)
	ListBDMs(ctx context.Context) ([]model.BDM, error)
}

// ForecastStore is the slice of the forecast layer the API uses.
type ForecastStore interface {
	ListActuals(ctx context.Context, year int) ([]forecast.Row, error)
	ListForecast(ctx context.Context, year, week int) ([]forecast.Row, error)
	UpsertForecast(ctx context.Context, r forecast.Row) error
	UpsertActuals(ctx context.Context, r forecast.Row) error
}

// CRMStore is the slice of the CRM layer the API uses.
type CRMStore interface {
	CreateCompany(ctx context.Context, c *crm.Company) error
	UpdateCompany(ctx context.Context, c *crm.Company) error
	GetCompany(ctx context.Context, id int64) (*crm.Company, error)
	ListCompanies(ctx context.Context, bdmID string) ([]crm.Company, error)
	DeleteCompany(ctx context.Context, id int64) error
	UpsertStakeholder(ctx context.Context, st *crm.Stakeholder) error
	ListStakeholders(ctx context.Context, companyID int64) ([]crm.Stakeholder, error)
	DeleteStakeholder(ctx context.Context, id int64) error
	UpsertFleetItem(ctx context.Context, fi *crm.FleetItem) error
	ListFleet(ctx context.Context, companyID int64) ([]crm.FleetItem, error)
	DeleteFleetItem(ctx context.Context, id int64) error
}

// Server wires the stores and auth manager into an HTTP handler.
type Server struct {
	Scorecards store.Store
	RefData    RefDataStore
	Forecast   ForecastStore
	CRM        CRMStore
	Auth       *auth.Manager

	// RequestsPerSecond caps the request rate across all clients.
	// Zero disables the limiter.
	RequestsPerSecond float64

	// AllowedOrigins for CORS; empty allows none.
	AllowedOrigins []string
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if s.RequestsPerSecond > 0 {
		burst := int(s.RequestsPerSecond) * 2
		if burst < 1 {
			burst = 1
		}
		r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(s.RequestsPerSecond), burst)))
	}

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.Auth != nil {
			r.Use(authMiddleware(s.Auth))
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/scorecards", func(r chi.Router) {
				r.Get("/", s.handleListScorecards)
				r.Post("/", s.handleCreateScorecard)
				r.Get("/{id}", s.handleGetScorecard)
				r.Put("/{id}", s.handleUpdateScorecard)
				r.Post("/{id}/versions", s.handleNewVersion)
				r.Get("/{id}/versions", s.handleListVersions)
				r.Get("/{id}/diff", s.handleDiff)
			})

			r.Route("/frameworks", func(r chi.Router) {
				r.Get("/", s.handleListFrameworks)
				r.Get("/{id}", s.handleGetFramework)
			})

			r.Route("/filters", func(r chi.Router) {
				r.Get("/groups", s.handleDealerGroups)
				r.Get("/dealerships", s.handleDealerships)
				r.Get("/bdm", s.handleSoleCandidateBDM)
			})

			r.Route("/forecast", func(r chi.Router) {
				r.Get("/tiles", s.handleForecastTiles)
				r.Get("/series", s.handleForecastSeries)
				r.Post("/entries", s.handleUpsertForecast)
				r.Post("/actuals", s.handleUpsertActuals)
			})

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", s.handleListCompanies)
				r.Post("/", s.handleCreateCompany)
				r.Get("/{id}", s.handleGetCompany)
				r.Put("/{id}", s.handleUpdateCompany)
				r.Delete("/{id}", s.handleDeleteCompany)
				r.Get("/{id}/stakeholders", s.handleListStakeholders)
				r.Post("/{id}/stakeholders", s.handleUpsertStakeholder)
				r.Get("/{id}/fleet", s.handleListFleet)
				r.Post("/{id}/fleet", s.handleUpsertFleetItem)
			})
			r.Delete("/stakeholders/{id}", s.handleDeleteStakeholder)
			r.Delete("/fleet/{id}", s.handleDeleteFleetItem)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
