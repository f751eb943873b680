package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/admission/internal/logging"
	"github.com/aretw0/admission/pkg/auth"
	"github.com/aretw0/admission/pkg/domain"
)

// TemplatePath is the admin download route.
const TemplatePath = "/admin/scores/template"

//go:embed openapi.yaml
var rawSpec []byte

// Generator defines the interface for the template generator.
type Generator interface {
	Generate(ctx context.Context) (*domain.Document, error)
	Format() domain.Format
}

// Server serves the template download and operational endpoints.
type Server struct {
	Generator Generator
	Version   string

	gate    func(http.Handler) http.Handler
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGate sets the middleware guarding admin routes.
func WithGate(gate func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.gate = gate
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithVersion sets the version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the generator.
// Admin routes are closed (403) unless a gate is supplied.
func NewHandler(gen Generator, opts ...Option) http.Handler {
	server := &Server{
		Generator: gen,
		Version:   "dev",
		gate:      denyAll,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(server.gate)
		r.Get(TemplatePath, server.GetScoreTemplate)
	})

	return r
}

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

// GetScoreTemplate handles the GET /admin/scores/template request.
func (s *Server) GetScoreTemplate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Generator.Generate(r.Context())
	if err != nil {
		http.Error(w, "Failed to generate template", http.StatusInternalServerError)
		s.logger.Error("Template generation failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		return
	}

	h := w.Header()
	h.Set("Content-Type", doc.ContentType())
	h.Set("Content-Disposition", fmt.Sprintf("attachment;filename=%q", doc.FileName()))
	h.Set("Cache-Control", "max-age=0")
	h.Set("Content-Length", strconv.Itoa(len(doc.Body)))

	if _, err := w.Write(doc.Body); err != nil {
		s.logger.Warn("Template download interrupted", "error", err)
		return
	}

	attrs := []any{"format", doc.Format, "bytes", len(doc.Body)}
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		attrs = append(attrs, "user_id", session.UserID)
	}
	s.logger.Info("Score template downloaded", attrs...)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if spec, err := LoadSpec(); err == nil && spec.Info != nil {
		apiVersion = spec.Info.Version
	} else if err != nil {
		s.logger.Error("Failed to load OpenAPI spec", "error", err)
	}

	resp := map[string]string{
		"app":         "admission-http",
		"version":     s.Version,
		"api_version": apiVersion,
		"format":      string(s.Generator.Format()),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// LoadSpec parses the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	return openapi3.NewLoader().LoadFromData(rawSpec)
}
