package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestLiveness(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "", nil)

	if err := Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllDependenciesUp(t *testing.T) {
	h := &ReadinessHandler{probes: map[string]DependencyProbe{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return nil },
	}}

	c, rec := newTestContext(t, http.MethodGet, "/health/ready", "", nil)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	deps := resp["data"].(map[string]any)
	if deps["mongodb"] != "ok" || deps["redis"] != "ok" {
		t.Fatalf("unexpected dependency report: %+v", deps)
	}
}

func TestReadiness_DegradedOnAnyFailure(t *testing.T) {
	h := &ReadinessHandler{probes: map[string]DependencyProbe{
		"mongodb": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("connection refused") },
	}}

	c, rec := newTestContext(t, http.MethodGet, "/health/ready", "", nil)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != false || resp["message"] != "degraded" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	deps := resp["data"].(map[string]any)
	if deps["mongodb"] != "ok" || deps["redis"] != "connection refused" {
		t.Fatalf("unexpected dependency report: %+v", deps)
	}
}

func TestReadiness_ProbesShareTheDeadline(t *testing.T) {
	var sawDeadline bool
	h := &ReadinessHandler{probes: map[string]DependencyProbe{
		"mongodb": func(ctx context.Context) error {
			_, sawDeadline = ctx.Deadline()
			return nil
		},
	}}

	c, _ := newTestContext(t, http.MethodGet, "/health/ready", "", nil)

	if err := h.Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !sawDeadline {
		t.Fatal("probe context must carry the readiness deadline")
	}
}
