// Package http exposes the BOM tree service over HTTP: a JSON API for tree
// data, small HTML pages for browsing, and health/metrics endpoints.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partstack/bomtree"
	"github.com/partstack/bomtree/pkg/builder"
	"github.com/partstack/bomtree/pkg/domain"
)

// Engine defines the interface for the bomtree core consumed by this adapter.
type Engine interface {
	BuildTree(ctx context.Context, partID int, opts builder.Options) (*domain.TreeNode, error)
	GetPart(ctx context.Context, id int) (domain.Part, error)
	ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error)
	Defaults() builder.Options
}

// defaultListLimit caps the assembly listing on the landing page and API.
const defaultListLimit = 25

// Server holds the adapter state: engine, templates and metrics.
type Server struct {
	engine   Engine
	logger   *slog.Logger
	metrics  *metrics
	registry *prometheus.Registry
	home     *template.Template
	tree     *template.Template
}

// ServerOption configures the HTTP server.
type ServerOption func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry injects a custom Prometheus registry. Useful in tests to
// avoid collector name collisions.
func WithRegistry(reg *prometheus.Registry) ServerOption {
	return func(s *Server) {
		s.registry = reg
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...ServerOption) http.Handler {
	server := &Server{
		engine: engine,
		logger: slog.Default(),
		home:   template.Must(template.New("home").Parse(homeHTML)),
		tree:   template.Must(template.New("tree").Parse(treeHTML)),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.registry == nil {
		server.registry = prometheus.NewRegistry()
	}
	server.metrics = newMetrics(server.registry)

	r := chi.NewRouter()
	r.Get("/", server.handleHome)
	r.Get("/tree/{id}", server.handleTreePage)
	r.Get("/api/tree/{id}", server.handleTreeData)
	r.Get("/api/parts", server.handleParts)
	r.Get("/health", server.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// partID parses the {id} path parameter. An unparsable id is treated the
// same as an id with no matching part.
func partID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleTreeData handles GET /api/tree/{id}.
// Optional query params: max_depth (clamped, silent fallback) and
// include_substitutes (truthy flag).
func (s *Server) handleTreeData(w http.ResponseWriter, r *http.Request) {
	id, ok := partID(r)
	if !ok {
		s.metrics.builds.WithLabelValues(outcomeNotFound).Inc()
		writeJSONError(w, http.StatusNotFound, "Part not found")
		return
	}

	opts := s.engine.Defaults()
	query := r.URL.Query()
	if query.Has("max_depth") {
		opts.MaxDepth = domain.ParseDepth(query.Get("max_depth"))
	}
	opts.IncludeSubstitutes = domain.ParseFlag(query.Get("include_substitutes"), false)

	timer := prometheus.NewTimer(s.metrics.duration)
	tree, err := s.engine.BuildTree(r.Context(), id, opts)
	timer.ObserveDuration()

	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			s.metrics.builds.WithLabelValues(outcomeNotFound).Inc()
			writeJSONError(w, http.StatusNotFound, "Part not found")
			return
		}
		s.metrics.builds.WithLabelValues(outcomeError).Inc()
		s.logger.Error("tree build failed", "part_id", id, "err", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	stats := domain.ComputeMetrics(tree)
	s.metrics.builds.WithLabelValues(outcomeOK).Inc()
	s.metrics.nodes.Observe(float64(stats.TotalNodes))

	writeJSON(w, http.StatusOK, treeJSON(tree))
}

// handleTreePage handles GET /tree/{id}: the rendered hierarchy page with
// depth and node-count summary.
func (s *Server) handleTreePage(w http.ResponseWriter, r *http.Request) {
	id, ok := partID(r)
	if !ok {
		http.Error(w, "Part not found", http.StatusNotFound)
		return
	}

	part, err := s.engine.GetPart(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPartNotFound) {
			http.Error(w, "Part not found", http.StatusNotFound)
			return
		}
		s.logger.Error("part lookup failed", "part_id", id, "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	tree, err := s.engine.BuildTree(r.Context(), id, s.engine.Defaults())
	if err != nil {
		s.logger.Error("tree build failed", "part_id", id, "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Part    domain.Part
		Tree    *domain.TreeNode
		Metrics domain.Metrics
		Warning string
	}{
		Part:    part,
		Tree:    tree,
		Metrics: domain.ComputeMetrics(tree),
	}
	if !part.Assembly {
		data.Warning = "This part is not flagged as an assembly but may still have a BOM."
	}

	s.renderTemplate(w, s.tree, data)
}

// handleHome handles GET /: assembly listing plus a part picker.
// A ?part= query that resolves redirects to the tree page; one that does not
// re-renders the page with an error message.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assemblies, err := s.engine.ListAssemblies(ctx, defaultListLimit)
	if err != nil {
		s.logger.Error("assembly listing failed", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Assemblies []domain.Part
		Error      string
	}{Assemblies: assemblies}

	if query := r.URL.Query().Get("part"); query != "" {
		id, err := strconv.Atoi(query)
		if err == nil {
			if part, err := s.engine.GetPart(ctx, id); err == nil {
				http.Redirect(w, r, fmt.Sprintf("/tree/%d", part.ID), http.StatusFound)
				return
			}
		}
		data.Error = fmt.Sprintf("No part found with id %q.", query)
	}

	s.renderTemplate(w, s.home, data)
}

// handleParts handles GET /api/parts?assembly=true&limit=N.
func (s *Server) handleParts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	assemblies, err := s.engine.ListAssemblies(r.Context(), limit)
	if err != nil {
		s.logger.Error("assembly listing failed", "err", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	out := make([]map[string]any, 0, len(assemblies))
	for _, part := range assemblies {
		out = append(out, partJSON(part))
	}
	writeJSON(w, http.StatusOK, map[string]any{"parts": out})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": bomtree.Version,
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("template render failed", "template", tmpl.Name(), "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
