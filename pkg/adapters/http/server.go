// Package http exposes a model registry as a JSON API: decode requests,
// model CRUD, health and Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/lattice"
	"github.com/aretw0/lattice/pkg/markov"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/aretw0/lattice/pkg/schema"
)

// Service defines the registry operations the server needs. Implemented by
// *registry.Registry.
type Service interface {
	Decode(ctx context.Context, name string, observations []int) (*registry.DecodeResult, error)
	DecodeTokens(ctx context.Context, name string, tokens []string) (*registry.DecodeResult, error)
	Register(ctx context.Context, doc *schema.Document) error
	Document(ctx context.Context, name string) (*schema.Document, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Server handles the HTTP surface around a model registry.
type Server struct {
	service  Service
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts a Prometheus scrape endpoint at /metrics for the
// given gatherer.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler for a model service.
func NewHandler(service Service, opts ...Option) http.Handler {
	s := &Server{service: service}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Post("/decode", s.Decode)
	r.Get("/models", s.ListModels)
	r.Get("/models/{name}", s.GetModel)
	r.Put("/models/{name}", s.PutModel)
	r.Delete("/models/{name}", s.DeleteModel)
	r.Get("/healthz", s.GetHealth)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DecodeRequest is the body of POST /decode. Exactly one of Observations
// or Sequence must be set; Sequence entries are encoded through the model's
// symbol labels.
type DecodeRequest struct {
	Model        string   `json:"model"`
	Observations []int    `json:"observations,omitempty"`
	Sequence     []string `json:"sequence,omitempty"`
}

// Decode handles the POST /decode request.
func (s *Server) Decode(w http.ResponseWriter, r *http.Request) {
	var body DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Model == "" {
		s.writeError(w, http.StatusBadRequest, "model is required")
		return
	}
	if body.Observations != nil && body.Sequence != nil {
		s.writeError(w, http.StatusBadRequest, "set either observations or sequence, not both")
		return
	}

	var result *registry.DecodeResult
	var err error
	if body.Sequence != nil {
		result, err = s.service.DecodeTokens(r.Context(), body.Model, body.Sequence)
	} else {
		result, err = s.service.Decode(r.Context(), body.Model, body.Observations)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// ListModels handles the GET /models request.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.service.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"models": names})
}

// GetModel handles the GET /models/{name} request.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.Document(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// PutModel handles the PUT /models/{name} request. The name in the URL
// wins over the one in the body.
func (s *Server) PutModel(w http.ResponseWriter, r *http.Request) {
	var doc schema.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc.Name = chi.URLParam(r, "name")

	if err := s.service.Register(r.Context(), &doc); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.logger.Info("model registered", "model", doc.Name)
	s.writeJSON(w, http.StatusCreated, map[string]string{"status": "registered", "model": doc.Name})
}

// DeleteModel handles the DELETE /models/{name} request.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Remove(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": strings.TrimSpace(lattice.Version)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps registry errors onto status codes: unknown models
// are 404, rejected input is 400, everything else is 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var decodeErr *markov.DecodeError
	var configErr *markov.ConfigurationError
	var aggrErr *schema.AggregateError

	switch {
	case errors.Is(err, markov.ErrModelNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &decodeErr), errors.As(err, &configErr), errors.As(err, &aggrErr):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}
