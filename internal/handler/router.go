/*
Package handler provides the HTTP surface through which views read the profile record,
trigger lookups, and subscribe to changes.

This file defines the Router, which applies CORS, request ids, logging and panic recovery,
and mounts the profile API and the WebSocket feed.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"ghprofile/internal/pkg/logx"
	"ghprofile/internal/pkg/resp"
)

// Router builds the application's routing table.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if deps.Config.IsDevelopment() || origin == "" {
				return true
			}
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "ghprofile",
		})
	})

	r.Route("/api/profile", func(api chi.Router) {
		api.Get("/", HandleGetProfile(deps))
		api.With(deps.LookupLimiter.Middleware).Post("/lookup", HandleLookup(deps))
		api.Post("/dispatch", HandleDispatch(deps))
	})

	r.Get("/ws/profile", HandleWebSocket(deps, wsUpgrader))

	return r
}
