package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"hrms-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Port:            "0",
		Env:             "test",
		CompanyName:     "Acme",
		StoreBackend:    "file",
		StorePath:       filepath.Join(dir, "hrms.json"),
		ObjectStoreType: "local",
		LocalStoreDir:   filepath.Join(dir, "files"),
		MailProvider:    "memory",
		MailFrom:        "hr@acme.test",
	}
	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "it-guest")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var out struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out.ID
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestRecruitmentPipelineOverHTTP(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodPost, "/api/v1/requirements", map[string]any{
		"title":      "Backend Engineer",
		"department": "Engineering",
		"budget":     90000,
		"positions":  2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create requirement = %d body=%s", w.Code, w.Body.String())
	}
	reqID := decodeID(t, w)

	// A posting on a pending requirement is rejected.
	w = doJSON(t, app, http.MethodPost, "/api/v1/postings", map[string]any{
		"requirementId": reqID,
		"title":         "Backend Engineer",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("posting before approval = %d", w.Code)
	}

	w = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/requirements/%d/approve", reqID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/postings", map[string]any{
		"requirementId": reqID,
		"title":         "Backend Engineer",
		"description":   "Build and run backend services.",
		"location":      "Remote",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create posting = %d body=%s", w.Code, w.Body.String())
	}
	postingID := decodeID(t, w)

	w = doJSON(t, app, http.MethodPost, "/api/v1/candidates", map[string]any{
		"jobPostingId": postingID,
		"name":         "Jane Doe",
		"email":        "jane@example.com",
		"skills":       "Go",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("apply = %d body=%s", w.Code, w.Body.String())
	}
	candidateID := decodeID(t, w)

	// Same email again on the same posting conflicts.
	w = doJSON(t, app, http.MethodPost, "/api/v1/candidates", map[string]any{
		"jobPostingId": postingID,
		"name":         "Jane Doe",
		"email":        "JANE@example.com",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate apply = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/postings/%d/candidates", postingID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list by posting = %d", w.Code)
	}
	var listed struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Total != 1 {
		t.Fatalf("total = %d, want 1", listed.Total)
	}

	w = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/candidates/%d/status", candidateID), map[string]any{
		"status": "shortlisted",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodGet, "/api/v1/reports/overview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("overview = %d", w.Code)
	}
	var overview struct {
		TotalCandidates int `json:"totalCandidates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.TotalCandidates != 1 {
		t.Fatalf("totalCandidates = %d, want 1", overview.TotalCandidates)
	}
}

func TestMutationsRequireIdentity(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requirements", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no identity = %d, want 401", w.Code)
	}
}
