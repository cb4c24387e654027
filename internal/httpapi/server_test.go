package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"tournotify/internal/domain"
	"tournotify/internal/notify"
)

type stubRunner struct {
	rep  domain.CheckReport
	runs int
}

func (s *stubRunner) Run(ctx context.Context) domain.CheckReport {
	s.runs++
	return s.rep
}

type stubTester struct{ err error }

func (s *stubTester) Send(ctx context.Context, title, text string) error { return s.err }

func newTestServer(rep domain.CheckReport, testErr error) (*Server, *stubRunner) {
	runner := &stubRunner{rep: rep}
	return NewServer(zap.NewNop(), runner, &stubTester{err: testErr}, nil, 0, 0), runner
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(domain.CheckReport{}, nil)
	h := s.Router()

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("/: want 200, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ok" || body["service"] != "tournotify" {
		t.Fatalf("unexpected health body: %v", body)
	}

	rec = get(t, h, "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("/healthz: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCheck_DecidedOutcomesAre200(t *testing.T) {
	for _, st := range []domain.Status{
		domain.StatusNotified, domain.StatusSuppressed, domain.StatusNoAvailability,
	} {
		s, runner := newTestServer(domain.CheckReport{
			Status:    st,
			CheckedAt: time.Now().UTC(),
		}, nil)

		rec := get(t, s.Router(), "/check")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", st, rec.Code)
		}
		if runner.runs != 1 {
			t.Fatalf("%s: runner invoked %d times", st, runner.runs)
		}
		var rep domain.CheckReport
		_ = json.NewDecoder(rec.Body).Decode(&rep)
		if rep.Status != st {
			t.Fatalf("want status %s, got %s", st, rep.Status)
		}
	}
}

func TestCheck_UpstreamErrorIs502(t *testing.T) {
	s, _ := newTestServer(domain.CheckReport{
		Status:  domain.StatusError,
		Message: "upstream error: timeout",
	}, nil)

	rec := get(t, s.Router(), "/check")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", rec.Code)
	}
}

func TestCheck_PostAlsoAccepted(t *testing.T) {
	s, runner := newTestServer(domain.CheckReport{Status: domain.StatusNoAvailability}, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/check", nil))
	if rec.Code != http.StatusOK || runner.runs != 1 {
		t.Fatalf("POST /check: got %d, runs=%d", rec.Code, runner.runs)
	}
}

func TestTestCall(t *testing.T) {
	s, _ := newTestServer(domain.CheckReport{}, nil)
	rec := get(t, s.Router(), "/test-call")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	s, _ = newTestServer(domain.CheckReport{}, errors.New("unverified destination"))
	rec = get(t, s.Router(), "/test-call")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("want 502 on failure, got %d", rec.Code)
	}
}

func TestTestCall_UnconfiguredProviderFails(t *testing.T) {
	// No Twilio/Slack env means cmd/api wires an empty fan-out; the
	// connectivity test must not claim success then.
	s := NewServer(zap.NewNop(), &stubRunner{}, notify.Multi{}, nil, 0, 0)

	rec := get(t, s.Router(), "/test-call")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("want 502 with no channels, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "failed" {
		t.Fatalf("want status failed, got %v", body)
	}
}

func TestCheck_RequiresKeyWhenConfigured(t *testing.T) {
	runner := &stubRunner{rep: domain.CheckReport{Status: domain.StatusNoAvailability}}
	s := NewServer(zap.NewNop(), runner, &stubTester{}, []string{"k1"}, 0, 0)
	h := s.Router()

	rec := get(t, h, "/check")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 without key, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("X-API-Key", "k1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 with key, got %d", rec.Code)
	}

	// Health stays open either way.
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz should not require a key, got %d", rec.Code)
	}
}
