// Package httpapi exposes the autocorrect engine over the /api/v1 JSON
// endpoints.
//
// Routes:
//
//   - POST   /api/v1/correct                           {text, language}
//   - POST   /api/v1/custom-word                       {word, language}
//   - DELETE /api/v1/custom-word/{language}/{word}
//   - GET    /healthz, GET /readyz
//
// Errors are JSON objects of the form {"error": "..."}.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"autocorrect/internal/corrector"
	"autocorrect/internal/lexicon"
	"autocorrect/internal/observe"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const checkTimeout = 5 * time.Second

// Engine is the subset of [corrector.Engine] served by the API.
type Engine interface {
	CorrectText(ctx context.Context, text, language string) (corrector.CorrectionResult, error)
	AddCustomWord(ctx context.Context, language, word string) error
	RemoveCustomWord(ctx context.Context, language, word string) error
}

// Checker is a named readiness probe.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server holds the API handlers.
type Server struct {
	engine   Engine
	logger   *slog.Logger
	metrics  *observe.Metrics
	checkers []Checker
}

// Option configures a [Server].
type Option func(*Server)

func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// WithMetrics records request latency through [observe.Middleware].
func WithMetrics(m *observe.Metrics) Option { return func(s *Server) { s.metrics = m } }

// WithReadiness adds probes evaluated by GET /readyz.
func WithReadiness(c ...Checker) Option {
	return func(s *Server) { s.checkers = append(s.checkers, c...) }
}

// New returns a Server for engine.
func New(engine Engine, opts ...Option) *Server {
	s := &Server{engine: engine, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed and instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/correct", s.handleCorrect)
	mux.HandleFunc("POST /api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("DELETE /api/v1/custom-word/{language}/{word}", s.handleRemoveWord)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	return observe.Middleware(s.metrics, s.logger)(mux)
}

type correctRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type customWordRequest struct {
	Word     string `json:"word"`
	Language string `json:"language"`
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req correctRequest
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Text) == "" || req.Language == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	res, err := s.engine.CorrectText(r.Context(), req.Text, req.Language)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req customWordRequest
	if err := decode(w, r, &req); err != nil || strings.TrimSpace(req.Word) == "" || req.Language == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.engine.AddCustomWord(r.Context(), req.Language, req.Word); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	language, word := r.PathValue("language"), r.PathValue("word")
	if strings.TrimSpace(word) == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.engine.RemoveCustomWord(r.Context(), language, word); err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(s.checkers))
	status, code := "ok", http.StatusOK
	for _, c := range s.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()
		if err != nil {
			checks[c.Name] = "fail: " + err.Error()
			status, code = "fail", http.StatusServiceUnavailable
			continue
		}
		checks[c.Name] = "ok"
	}
	writeJSON(w, code, struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks,omitempty"`
	}{status, checks})
}

// writeEngineError maps engine errors to status codes.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case lexicon.IsUnsupportedLanguage(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case lexicon.IsResourceLoad(err):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, corrector.ErrEmptyWord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, corrector.ErrNoCustomDictionary):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
