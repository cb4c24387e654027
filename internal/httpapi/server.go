package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tournotify/internal/domain"
	"tournotify/internal/httpapi/middleware"
)

// Runner executes one poll-and-notify cycle. Satisfied by checker.Checker.
type Runner interface {
	Run(ctx context.Context) domain.CheckReport
}

// Tester places a test notification to verify provider credentials.
type Tester interface {
	Send(ctx context.Context, title, text string) error
}

type Server struct {
	Logger  *zap.Logger
	Checks  Runner
	Tester  Tester
	APIKeys []string
	RateRPM int
	Burst   int
}

func NewServer(l *zap.Logger, checks Runner, tester Tester, apiKeys []string, rateRPM, burst int) *Server {
	return &Server{
		Logger:  l,
		Checks:  checks,
		Tester:  tester,
		APIKeys: apiKeys,
		RateRPM: rateRPM,
		Burst:   burst,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/", s.handleHealth)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(s.APIKeys))
		r.Use(middleware.RateLimit(s.RateRPM, s.Burst))

		// The scheduler triggers with GET; POST kept for manual curl use.
		r.Get("/check", s.handleCheck)
		r.Post("/check", s.handleCheck)
		r.Get("/test-call", s.handleTestCall)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "tournotify",
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	rep := s.Checks.Run(r.Context())

	code := http.StatusOK
	if rep.Status == domain.StatusError {
		// Upstream trouble is the scheduler's signal that this run did
		// not decide anything.
		code = http.StatusBadGateway
	}

	s.Logger.Info("check_handled",
		zap.String("status", string(rep.Status)),
		zap.String("message", rep.Message),
		zap.Int("tours_found", rep.ToursFound),
	)
	writeJSON(w, code, rep)
}

func (s *Server) handleTestCall(w http.ResponseWriter, r *http.Request) {
	err := s.Tester.Send(r.Context(),
		"Test call from tournotify",
		"If you hear this, notifications are working.",
	)
	if err != nil {
		s.Logger.Error("test_call_failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status": "failed",
			"error":  err.Error(),
		})
		return
	}
	s.Logger.Info("test_call_sent")
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
