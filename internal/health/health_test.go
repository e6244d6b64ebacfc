package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// adminHandler builds the handler the admin server uses, wired to the real
// Gateway and Speech checkers over controllable fakes.
func adminHandler(configured, loaded bool) http.Handler {
	h := New(
		Gateway(fakeGateway{configured: configured}),
		Speech(fakeEngine{loaded: loaded}),
	)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func getJSON(t *testing.T, h http.Handler, path string) (int, result) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body result
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return rec.Code, body
}

func TestHealthzAlwaysPasses(t *testing.T) {
	// Liveness must hold even while nothing is configured.
	code, body := getJSON(t, adminHandler(false, false), "/healthz")
	if code != http.StatusOK {
		t.Errorf("status = %d, want %d", code, http.StatusOK)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want %q", body.Status, "ok")
	}
}

func TestReadyzReadyWhenBackendsAreUp(t *testing.T) {
	code, body := getJSON(t, adminHandler(true, true), "/readyz")
	if code != http.StatusOK {
		t.Errorf("status = %d, want %d", code, http.StatusOK)
	}
	if body.Checks["gateway"] != "ok" {
		t.Errorf("gateway check = %q, want ok", body.Checks["gateway"])
	}
	if body.Checks["speech"] != "ok" {
		t.Errorf("speech check = %q, want ok", body.Checks["speech"])
	}
}

func TestReadyzFailsWithoutModelCredential(t *testing.T) {
	code, body := getJSON(t, adminHandler(false, true), "/readyz")
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
	}
	if body.Status != "fail" {
		t.Errorf("status = %q, want fail", body.Status)
	}
	if body.Checks["gateway"] != "fail: no remote provider configured" {
		t.Errorf("gateway check = %q", body.Checks["gateway"])
	}
	if body.Checks["speech"] != "ok" {
		t.Errorf("speech check = %q, want ok", body.Checks["speech"])
	}
}

func TestReadyzFailsWhileVoiceCatalogueLoads(t *testing.T) {
	code, body := getJSON(t, adminHandler(true, false), "/readyz")
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", code, http.StatusServiceUnavailable)
	}
	if body.Checks["speech"] != "fail: voice catalogue not loaded" {
		t.Errorf("speech check = %q", body.Checks["speech"])
	}
}

func TestReadyzNoCheckersIsReady(t *testing.T) {
	h := New()
	req := httptest.NewRequest("GET", "/readyz", nil)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestReadyzRespectsContextCancellation(t *testing.T) {
	h := New(Checker{Name: "gateway", Check: func(ctx context.Context) error {
		// A hung credential check must not hold the endpoint past the
		// request's lifetime.
		<-ctx.Done()
		return ctx.Err()
	}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest("GET", "/readyz", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.Readyz(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
