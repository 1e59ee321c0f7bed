package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/incident-desk/backend/internal/config"
	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/registry"
	"github.com/incident-desk/backend/internal/service"
)

const testSecret = "handler-test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := db.NewMemory()
	reg := registry.Default()
	return NewRouter(
		config.ServerConfig{APIPrefix: "/api", AllowedOrigins: []string{"*"}},
		Services{
			Registry: reg,
			Records:  service.NewRecordService(store),
			Assist:   service.NewAssistService(store, reg, nil),
			Auth:     service.NewAuthResolver(service.AuthPolicy{Secret: testSecret}),
		},
	)
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = &bytes.Buffer{}
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestParseRoute(t *testing.T) {
	reg := registry.Default()
	tests := []struct {
		path     string
		kind     RouteKind
		entity   registry.Kind
		id       string
		function string
		notFound string
	}{
		{path: "", kind: RouteHealth},
		{path: "/", kind: RouteHealth},
		{path: "/index", kind: RouteHealth},
		{path: "/ai/invoke-llm", kind: RouteInvokeLLM},
		{path: "/ai", kind: RouteNotFound, notFound: "Unknown route"},
		{path: "/functions/generatePredictions", kind: RouteFunction, function: "generatePredictions"},
		{path: "/functions", kind: RouteNotFound, notFound: "Unknown function"},
		{path: "/incidents", kind: RouteCollection, entity: registry.KindIncident},
		{path: "/Incident/abc/", kind: RouteItem, entity: registry.KindIncident, id: "abc"},
		{path: "/audit-logs/x", kind: RouteItem, entity: registry.KindAuditLog, id: "x"},
		{path: "/users", kind: RouteNotFound, notFound: "Unknown route"},
		{path: "/incidents/a/b", kind: RouteNotFound, notFound: "Unknown route"},
	}
	for _, tt := range tests {
		got := ParseRoute(reg, tt.path)
		if got.Kind != tt.kind || got.ID != tt.id || got.Function != tt.function || got.NotFound != tt.notFound {
			t.Errorf("ParseRoute(%q) = %+v", tt.path, got)
			continue
		}
		if tt.entity != "" && (got.Entity == nil || got.Entity.Kind != tt.entity) {
			t.Errorf("ParseRoute(%q) entity = %v, want %s", tt.path, got.Entity, tt.entity)
		}
	}
}

func TestHealthAndPing(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api", "/api/", "/api/index"} {
		w := do(t, r, http.MethodGet, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		body := decodeObject(t, w)
		if body["ok"] != true || body["message"] != "API online" {
			t.Fatalf("%s: unexpected body %v", path, body)
		}
	}

	w := do(t, r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || decodeObject(t, w)["message"] != "pong" {
		t.Fatalf("unexpected ping response: %d %s", w.Code, w.Body.String())
	}
}

func TestCreateThenGetIncident(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/incidents", `{"title":"DB outage","severity":"critical"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeObject(t, w)
	if created["status"] != "analyzing" {
		t.Fatalf("status = %v", created["status"])
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("id missing: %v", created)
	}
	if _, ok := created["created_date"]; !ok {
		t.Fatalf("created_date missing: %v", created)
	}
	if _, ok := created["created_at"]; ok {
		t.Fatalf("created_at must not be duplicated: %v", created)
	}

	w = do(t, r, http.MethodGet, "/api/incidents/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeObject(t, w); !reflect.DeepEqual(got, created) {
		t.Fatalf("GET = %v, want %v", got, created)
	}

	w = do(t, r, http.MethodGet, "/api/Incident", "")
	if list := decodeArray(t, w); len(list) != 1 || list[0]["id"] != id {
		t.Fatalf("list via model name = %v", list)
	}
}

func TestUpdateDeleteLifecycle(t *testing.T) {
	r := newTestRouter(t)
	created := decodeObject(t, do(t, r, http.MethodPost, "/api/decisions", `{"incident_id":"inc-1","decision":"approve"}`))
	id := created["id"].(string)

	w := do(t, r, http.MethodPatch, "/api/decisions/"+id, `{"decision":"reject"}`)
	updated := decodeObject(t, w)
	if w.Code != http.StatusOK || updated["decision"] != "reject" || updated["incident_id"] != "inc-1" {
		t.Fatalf("unexpected patch result %d: %v", w.Code, updated)
	}

	w = do(t, r, http.MethodDelete, "/api/decisions/"+id, "")
	if w.Code != http.StatusOK || decodeObject(t, w)["ok"] != true {
		t.Fatalf("unexpected delete result %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/decisions/"+id, "")
	if w.Code != http.StatusNotFound || decodeObject(t, w)["error"] != "Not found" {
		t.Fatalf("expected 404 Not found, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUnknownRoutesAndMethods(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		status int
		error  string
		allow  string
	}{
		{http.MethodGet, "/api/users", http.StatusNotFound, "Unknown route", ""},
		{http.MethodGet, "/elsewhere", http.StatusNotFound, "Unknown route", ""},
		{http.MethodPost, "/api/functions/doMagic", http.StatusNotFound, "Unknown function", ""},
		{http.MethodGet, "/api/functions/generatePredictions", http.StatusMethodNotAllowed, "Method not allowed", "POST"},
		{http.MethodGet, "/api/ai/invoke-llm", http.StatusMethodNotAllowed, "Method not allowed", "POST"},
		{http.MethodDelete, "/api/incidents", http.StatusMethodNotAllowed, "Method not allowed", "GET, POST"},
		{http.MethodPost, "/api/incidents/abc", http.StatusMethodNotAllowed, "Method not allowed", "GET, PUT, PATCH, DELETE"},
		{http.MethodPost, "/api/incidents", http.StatusBadRequest, "Invalid JSON body", ""},
	}
	for _, tt := range tests {
		body := ""
		if tt.status == http.StatusBadRequest {
			body = `{"title":`
		}
		w := do(t, r, tt.method, tt.path, body)
		if w.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Code, tt.status)
			continue
		}
		if got := decodeObject(t, w)["error"]; got != tt.error {
			t.Errorf("%s %s: error = %v, want %q", tt.method, tt.path, got, tt.error)
		}
		if got := w.Header().Get("Allow"); got != tt.allow {
			t.Errorf("%s %s: Allow = %q, want %q", tt.method, tt.path, got, tt.allow)
		}
	}
}

func TestListRejectsUnknownSortField(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/incidents?_sort=-bogus", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestInvokeLLMWithoutProvider(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/ai/invoke-llm", `{"prompt":"hello"}`)
	if w.Code != http.StatusBadRequest || decodeObject(t, w)["error"] != "AI_API_KEY not set" {
		t.Fatalf("expected 400 AI_API_KEY not set, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFunctionsWithoutProvider(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/functions/automateIncidentResponse", `{}`)
	if w.Code != http.StatusBadRequest || decodeObject(t, w)["error"] != "Missing incident_id" {
		t.Fatalf("expected 400 Missing incident_id, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/functions/automateIncidentResponse", `{"incident_id":"missing"}`)
	if w.Code != http.StatusNotFound || decodeObject(t, w)["error"] != "Incident not found" {
		t.Fatalf("expected 404 Incident not found, got %d: %s", w.Code, w.Body.String())
	}
	if list := decodeArray(t, do(t, r, http.MethodGet, "/api/automations", "")); len(list) != 0 {
		t.Fatalf("no automation should be created, got %v", list)
	}

	inc := decodeObject(t, do(t, r, http.MethodPost, "/api/incidents", `{"title":"DB outage","severity":"P1"}`))
	w = do(t, r, http.MethodPost, "/api/functions/generatePostIncidentReview", `{"incidentId":"`+inc["id"].(string)+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	review := decodeObject(t, w)
	if review["confidence_score"] != 0.5 || review["root_cause_analysis"] != "TBD" || review["generation_source"] != "fallback" {
		t.Fatalf("unexpected review: %v", review)
	}

	w = do(t, r, http.MethodPost, "/api/functions/generatePredictions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if preds := decodeArray(t, w); len(preds) != 1 || preds[0]["likelihood"] != 0.7 {
		t.Fatalf("unexpected predictions: %v", preds)
	}

	w = do(t, r, http.MethodPost, "/api/functions/suggestKnowledgeArticles", `{"incident_id":"`+inc["id"].(string)+`"}`)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreatedByFromToken(t *testing.T) {
	r := newTestRouter(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	created := decodeObject(t, do(t, r, http.MethodPost, "/api/incidents", `{"title":"x"}`, "Authorization", "Bearer "+token))
	if created["created_by"] != "user-42" {
		t.Fatalf("created_by = %v", created["created_by"])
	}

	created = decodeObject(t, do(t, r, http.MethodPost, "/api/incidents", `{"title":"x"}`, "Authorization", "Bearer invalid"))
	if created["created_by"] != nil {
		t.Fatalf("invalid token must resolve anonymous, got %v", created["created_by"])
	}
}

func TestPanicBecomesInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.CustomRecovery(recoverInternal))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := do(t, r, http.MethodGet, "/boom", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeObject(t, w)
	if body["error"] != "Internal error" || body["detail"] != "kaboom" {
		t.Fatalf("unexpected body: %v", body)
	}
}
