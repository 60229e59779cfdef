package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dashinbox/internal/http/handler"
)

// Handlers groups the route handlers of the gateway.
type Handlers struct {
	Control    *handler.ControlHandler
	Inbox      *handler.InboxHandler
	Preference *handler.PreferenceHandler
	Stats      *handler.StatsHandler
}

// NewRouter wires HTTP routes.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/control", func(r chi.Router) {
		r.Get("/", h.Control.Status)
		r.Post("/start", h.Control.Start)
		r.Post("/stop", h.Control.Stop)
		r.Post("/refresh", h.Control.Refresh)
	})

	r.Route("/inbox", func(r chi.Router) {
		r.Get("/", h.Inbox.List)
		r.Post("/sync", h.Inbox.Sync)
		r.Post("/{id}/toggle", h.Inbox.Toggle)
		r.Delete("/{id}", h.Inbox.Delete)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/dark-mode", h.Preference.DarkMode)
		r.Post("/dark-mode/toggle", h.Preference.ToggleDarkMode)
	})

	r.Get("/stats/{feed}", h.Stats.Feed)

	return r
}
