package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/contacts"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/platform/httpx"
	"github.com/YevheniiaMushyk/goit-node-rest-api/internal/users"
	"github.com/YevheniiaMushyk/goit-node-rest-api/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	UsersHandler    *users.Handler
	ContactsHandler *contacts.Handler
	SessionGuard    *users.Guard
	JobHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/contacts", func(r chi.Router) {
			r.Use(params.SessionGuard.Middleware)
			params.ContactsHandler.MountRoutes(r)
		})
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, http.StatusNotFound, "Route not found")
	})

	return r
}
