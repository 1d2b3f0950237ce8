// Package api provides the HTTP surface for FitQuest.
//
// It exposes the chat endpoint backed by the coaching pipeline, the house
// classification endpoint, and the per-user chat history. The API is the
// caller of the core: it persists messages after the pipeline returns, the
// pipeline itself never touches storage.
package api

import (
	"log/slog"
	"net/http"

	"github.com/fabianfernandess/FitQuest/internal/coach"
	"github.com/fabianfernandess/FitQuest/internal/store"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr            string // listen address
	AllowAllOrigins bool   // permissive CORS for app development builds
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// WithAllowAllOrigins enables permissive CORS.
func WithAllowAllOrigins() Option {
	return func(o *Opts) {
		o.AllowAllOrigins = true
	}
}

// Server wires the coaching pipeline and the chat store behind HTTP handlers.
type Server struct {
	coach      *coach.Coach
	classifier *coach.Classifier
	st         store.Store
	opts       Opts
}

// NewServer creates an API server, applying any provided options.
func NewServer(c *coach.Coach, classifier *coach.Classifier, st store.Store, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{coach: c, classifier: classifier, st: st, opts: cfg}
}

// Handler builds the routed and CORS-wrapped handler tree.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/chat", s.chatHandler).Methods(http.MethodPost)
	r.HandleFunc("/classify", s.classifyHandler).Methods(http.MethodPost)
	r.HandleFunc("/history", s.historyHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	if s.opts.AllowAllOrigins {
		return cors.AllowAll().Handler(r)
	}
	return cors.Default().Handler(r)
}

// Run starts the HTTP server and blocks until it exits.
func (s *Server) Run() error {
	slog.Info("FitQuest API listening", "addr", s.opts.Addr)
	return http.ListenAndServe(s.opts.Addr, s.Handler())
}
