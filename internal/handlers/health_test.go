package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/services"
)

type systemServiceStub struct {
	report domain.SystemHealthReport
	err    error
}

func (s *systemServiceStub) HealthReport(_ context.Context) (domain.SystemHealthReport, error) {
	if s.err != nil {
		return domain.SystemHealthReport{}, s.err
	}
	return s.report, nil
}

func TestHealthz(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	health := NewHealthHandlers(
		WithHealthClock(func() time.Time { return now }),
		WithHealthBuildInfo(services.BuildInfo{Version: "1.4.0", Environment: "staging", StartedAt: now.Add(-time.Hour)}),
	)
	router := NewRouter(WithHealthHandlers(health))

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]any
	decodeJSON(t, rec, &payload)
	if payload["status"] != domain.HealthStatusOK {
		t.Errorf("status = %v", payload["status"])
	}
	if payload["version"] != "1.4.0" || payload["environment"] != "staging" {
		t.Errorf("metadata = %v/%v", payload["version"], payload["environment"])
	}
	if payload["uptime"] != "1h0m0s" {
		t.Errorf("uptime = %v", payload["uptime"])
	}
}

func TestReadyz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		health := NewHealthHandlers(WithHealthSystemService(&systemServiceStub{report: domain.SystemHealthReport{
			Status: domain.HealthStatusOK,
			Checks: map[string]domain.SystemHealthCheck{
				"draftStore": {Status: domain.HealthStatusOK, Latency: 3 * time.Millisecond},
			},
			GeneratedAt: time.Now(),
		}}))
		router := NewRouter(WithHealthHandlers(health))

		rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var payload struct {
			Status string                    `json:"status"`
			Checks map[string]map[string]any `json:"checks"`
		}
		decodeJSON(t, rec, &payload)
		if payload.Status != domain.HealthStatusOK {
			t.Errorf("status = %q", payload.Status)
		}
		if _, ok := payload.Checks["draftStore"]; !ok {
			t.Error("expected the draftStore check in the payload")
		}
	})

	t.Run("critical dependency down", func(t *testing.T) {
		health := NewHealthHandlers(WithHealthSystemService(&systemServiceStub{report: domain.SystemHealthReport{
			Status: domain.HealthStatusError,
			Checks: map[string]domain.SystemHealthCheck{
				"firestore": {Status: domain.HealthStatusError, Detail: "probe timeout"},
			},
			GeneratedAt: time.Now(),
		}}))
		router := NewRouter(WithHealthHandlers(health))

		rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("report failure", func(t *testing.T) {
		health := NewHealthHandlers(WithHealthSystemService(&systemServiceStub{err: errors.New("collect failed")}))
		router := NewRouter(WithHealthHandlers(health))

		rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", rec.Code)
		}
		var envelope map[string]any
		decodeJSON(t, rec, &envelope)
		if envelope["error"] != "health_check_failed" {
			t.Errorf("error = %v", envelope["error"])
		}
	})

	t.Run("without system service falls back to liveness", func(t *testing.T) {
		router := NewRouter(WithHealthHandlers(NewHealthHandlers()))

		rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})
}
