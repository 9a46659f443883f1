// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	apperrors "nashville-eats/internal/common/errors"
	"nashville-eats/internal/common/logger"
	fetchrecommendations "nashville-eats/internal/pipeline/fetch-recommendations"
	normalizeanswers "nashville-eats/internal/pipeline/normalize-answers"
	"nashville-eats/internal/share"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionHeader names the client session whose latest request wins.
const SessionHeader = "X-Session-ID"

const maxBodyBytes = 64 << 10

type Config struct {
	MaintenanceMode bool
	AllowTestMode   bool
	RequestTimeout  time.Duration
	ReadyTimeout    time.Duration
}

// ReadinessCheck is one dependency probed by /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies wires the pipeline into the HTTP layer. Sessions and Share
// may be nil.
type Dependencies struct {
	Normalizer *normalizeanswers.Handler
	Fetcher    *fetchrecommendations.Handler
	Sessions   *fetchrecommendations.SessionStore
	Share      *share.Service
	Checks     []ReadinessCheck
}

type Server struct {
	config *Config
	deps   Dependencies
	logger logger.Logger
}

func NewServer(config *Config, deps Dependencies, log logger.Logger) *Server {
	return &Server{
		config: config,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Router builds the chi router with every route mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.healthHandler)
	r.Get("/ready", s.readyHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.maintenance)
		if s.config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.config.RequestTimeout))
		}
		r.Post("/recommendations", s.recommendationsHandler)
		r.Post("/share", s.shareHandler)
	})
	return r
}

// maintenance answers 503 unless the test-mode override is both requested
// and allowed.
func (s *Server) maintenance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.MaintenanceMode {
			override := s.config.AllowTestMode && r.URL.Query().Get("testMode") == "true"
			if !override {
				writeError(w, apperrors.NewMaintenanceModeError())
				return
			}
			s.logger.Debug("maintenance bypassed by test mode", map[string]interface{}{"path": r.URL.Path})
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request served", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"requestId":  middleware.GetReqID(r.Context()),
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	timeout := s.config.ReadyTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(s.deps.Checks))
	for _, c := range s.deps.Checks {
		if err := c.Check(ctx); err != nil {
			checks[c.Name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[c.Name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err *apperrors.StandardError) {
	writeJSON(w, apperrors.HTTPStatus(err.Code), map[string]interface{}{"error": err})
}
