package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/logging"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
	"github.com/aretw0/superdense/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

// Server exposes the simulator over HTTP.
type Server struct {
	Engine   ports.StatelessEngine
	Sessions *session.Manager
	Streams  *StreamManager

	logger      *slog.Logger
	metrics     http.Handler
	cors        bool
	sessionOpts []session.Option
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithCORS toggles the permissive CORS headers (enabled by default).
func WithCORS(enabled bool) Option {
	return func(s *Server) {
		s.cors = enabled
	}
}

// WithSessionOptions configures the session manager created by the server.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// NewServer wires the session manager and stream fan-out around engine.
func NewServer(engine ports.StatelessEngine, opts ...Option) *Server {
	s := &Server{
		Engine: engine,
		logger: logging.NewNop(),
		cors:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	sessOpts := append([]session.Option{
		session.WithLogger(s.logger),
		session.WithSessionObserver(s.Streams.Observer),
	}, s.sessionOpts...)
	s.Sessions = session.NewManager(engine, sessOpts...)
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.StatelessEngine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.cors {
		r.Use(enableCORS)
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/phases", s.GetPhases)
	r.Get("/encodings", s.GetEncodings)
	r.Get("/tutorial", s.GetTutorial)
	r.Post("/simulate", s.Simulate)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Put("/input", s.UpdateInput)
			r.Post("/start", s.StartSession)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":      "superdense-http",
		"version":  strings.TrimSpace(superdense.Version),
		"sessions": s.Sessions.Len(),
	})
}

// GetPhases handles the GET /phases request.
func (s *Server) GetPhases(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Phases())
}

// GetEncodings handles the GET /encodings request. ?format=yaml switches the encoding.
func (s *Server) GetEncodings(w http.ResponseWriter, r *http.Request) {
	rows := domain.Encodings()
	switch r.URL.Query().Get("format") {
	case "", "json":
		s.writeJSON(w, http.StatusOK, rows)
	case "yaml":
		out, err := yaml.Marshal(rows)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported format"})
	}
}

// GetTutorial handles the GET /tutorial request.
func (s *Server) GetTutorial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(domain.TutorialMarkdown()))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
