package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/nfasim"
	"github.com/aretw0/nfasim/internal/presentation/graph"
	"github.com/aretw0/nfasim/internal/validator"
	"github.com/aretw0/nfasim/pkg/domain"
	"github.com/aretw0/nfasim/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the HTTP surface needs from the simulation engine.
type Engine interface {
	ports.Simulator
	Invalidate(name string)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves the REST API.
type Server struct {
	Engine  Engine
	Store   ports.DefinitionStore
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithStore enables PUT and DELETE on /automata/{name}.
// The store should be the loader the engine reads from.
func WithStore(store ports.DefinitionStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithMetricsHandler replaces the default Prometheus handler served on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine:  engine,
		Metrics: promhttp.Handler(),
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/events", server.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", server.Metrics)

	r.Route("/automata", func(r chi.Router) {
		r.Get("/", server.ListAutomata)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.DescribeAutomaton)
			r.Put("/", server.SaveAutomaton)
			r.Delete("/", server.DeleteAutomaton)
			r.Post("/evaluate", server.Evaluate)
			r.Get("/closure/{state}", server.EpsilonClosure)
			r.Get("/graph", server.Graph)
		})
	})

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

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>nfasim API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// EvaluateRequest is the body of POST /automata/{name}/evaluate.
type EvaluateRequest struct {
	Input *string `json:"input"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "nfasim-http",
		"version":     strings.TrimSpace(nfasim.Version),
		"api_version": apiVersion,
	})
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// DescribeAutomaton handles the GET /automata/{name} request.
func (s *Server) DescribeAutomaton(w http.ResponseWriter, r *http.Request) {
	def, err := s.Engine.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, def)
}

// SaveAutomaton handles the PUT /automata/{name} request.
// The definition is compiled before it is stored; the response is its report.
func (s *Server) SaveAutomaton(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorBody("definitions are read-only"))
		return
	}

	var def domain.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		s.Logger.Warn("SaveAutomaton: invalid request body", "error", err)
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	def.Name = chi.URLParam(r, "name")

	report, _, err := validator.Validate(def)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	if err := s.Store.Save(r.Context(), &def); err != nil {
		s.writeError(w, err)
		return
	}
	s.Engine.Invalidate(def.Name)
	s.Logger.Info("definition saved", "automaton", def.Name, "states", report.States)
	s.writeJSON(w, http.StatusOK, report)
}

// DeleteAutomaton handles the DELETE /automata/{name} request.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.writeJSON(w, http.StatusMethodNotAllowed, errorBody("definitions are read-only"))
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.Store.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.Engine.Invalidate(name)
	w.WriteHeader(http.StatusNoContent)
}

// Evaluate handles the POST /automata/{name}/evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Input == nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody(`request body must be {"input": "..."}`))
		return
	}

	verdict, err := s.Engine.Evaluate(r.Context(), chi.URLParam(r, "name"), *body.Input)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, verdict)
}

// EpsilonClosure handles the GET /automata/{name}/closure/{state} request.
func (s *Server) EpsilonClosure(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// Compile first so a broken definition is not reported as a missing state.
	if _, err := s.Engine.Describe(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}

	states, err := s.Engine.Closure(r.Context(), name, chi.URLParam(r, "state"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownState) {
			s.writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
			return
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, states)
}

// Graph handles the GET /automata/{name}/graph request.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, err := s.Engine.Describe(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		verdict, err := s.Engine.Evaluate(r.Context(), name, r.URL.Query().Get("input"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		overlay = graph.OverlayFromVerdict(verdict)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(*def, overlay))
}

// SubscribeEvents handles the GET /events request (SSE).
// Each event carries the name of a changed definition.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusNotImplemented, errorBody(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateState),
		errors.Is(err, domain.ErrUnknownState),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrEmptyTransition),
		errors.Is(err, domain.ErrNoStartState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorBody(err.Error()))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
