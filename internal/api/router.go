package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	r.Post("/forward_to_python", s.handleForwardToScheduler)
	r.Get(s.wsPath(), s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/events", s.handleListEvents)
		r.Get("/ws", s.handleWebSocket)

		r.Route("/people", func(r chi.Router) {
			r.Get("/location/{personId}", s.handlePersonLocation)
			r.Get("/getActions/{personId}", s.handlePersonActions)
			r.Get("/description/{personId}", s.handlePersonDescription)
			r.Post("/move/{personId}/{roomName}", s.handleMovePerson)
		})

		r.Get("/thingDescriptions/all", s.handleListThingDescriptions)
		r.Get("/thing_description/{applianceId}", s.handleGetThingDescription)
		r.Post("/thing_descriptions", s.handleUpsertThingDescriptions)

		r.Route("/things", func(r chi.Router) {
			r.Get("/status/{thingID}", s.handleThingStatus)
			r.Post("/toggle/{thingID}", s.handleToggleThing)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", s.handleListRooms)
			r.Get("/{roomName}/things", s.handleRoomThings)
		})
	})

	return r
}

// wsPath returns the configured root-level WebSocket path.
func (s *Server) wsPath() string {
	if s.wsCfg.Path == "" || s.wsCfg.Path[0] != '/' {
		return "/ws"
	}
	return s.wsCfg.Path
}

// pathParam returns the unescaped URL parameter name.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"clients": s.hub.ClientCount(),
		"store":   s.store.Stats(),
	})
}
