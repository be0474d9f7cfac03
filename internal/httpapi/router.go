// Package httpapi exposes the conversation pipeline and weekly reports as a
// small JSON API.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/edgard/mindfulbot/internal/chat"
	"github.com/edgard/mindfulbot/internal/keywords"
	"github.com/edgard/mindfulbot/internal/logger"
	"github.com/edgard/mindfulbot/internal/report"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds the services the API routes call into.
type Deps struct {
	Logger       *slog.Logger
	Store        Pinger
	Chat         *chat.Service
	Reports      *report.Aggregator
	Tables       *keywords.Tables
	ReplyTimeout time.Duration
}

// NewRouter wires the API routes to the conversation services.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.HTTPMiddleware(deps.Logger))
	r.Use(middleware.Recoverer)

	h := &handler{deps: deps, log: deps.Logger.With("component", "http_api")}

	r.Get("/healthz", h.handleHealth)
	r.Route("/api/conversations/{conversationID}", func(api chi.Router) {
		api.Get("/messages", h.handleHistory)
		api.Post("/messages", h.handleSend)
		api.Get("/report", h.handleReport)
	})

	return r
}

// NewServer builds the HTTP server for the API.
func NewServer(addr string, readTimeout, writeTimeout time.Duration, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}
}
