package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keephy-check/pkg/auth"
	"keephy-check/pkg/model"
	"keephy-check/pkg/store"
)

func newTestGateway(t *testing.T) (*http.ServeMux, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	_, err := st.UpsertForm(model.Form{
		ID:    "f-demo",
		Title: "Demo Feedback",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Text: "How was it?", Required: true, Order: 0},
			{ID: "q2", Type: model.QuestionText, Text: "Anything else?", Order: 1},
		},
		Settings: model.FormSettings{AllowAnonymous: true},
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	RegisterRoutes(mux, st, nil)
	(&AuthHandler{}).RegisterRoutes(mux)
	return mux, st
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.Generate(1, "checker", "admin", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthEndpoints(t *testing.T) {
	mux, _ := newTestGateway(t)
	for _, path := range []string{"/health", "/api/health", "/api/status"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestStatusReportsFormCount(t *testing.T) {
	mux, _ := newTestGateway(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var status StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 1, status.Forms)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	mux, _ := newTestGateway(t)
	paths := []string{
		"/api/forms",
		"/api/organizations",
		"/api/notifications",
		"/api/submissions",
		"/api/analytics",
		"/api/v1/audit",
		"/api/auth/me",
	}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestListFormsWithToken(t *testing.T) {
	mux, _ := newTestGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/api/forms", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var forms []model.Form
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&forms))
	require.Len(t, forms, 1)
	assert.Equal(t, "f-demo", forms[0].ID)
}

func TestRenderEndpoint(t *testing.T) {
	mux, _ := newTestGateway(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forms/f-demo/render", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Form   model.Form               `json:"form"`
		Fields []map[string]interface{} `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "f-demo", resp.Form.ID)
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "rating", resp.Fields[0]["kind"])

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forms/ghost/render", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forms/f-demo/preview", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmissionValidation(t *testing.T) {
	mux, _ := newTestGateway(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing responses", `{"formId":"f-demo","deviceId":"device_1_abc"}`, http.StatusBadRequest},
		{"empty responses", `{"formId":"f-demo","deviceId":"device_1_abc","responses":[]}`, http.StatusBadRequest},
		{"missing device", `{"formId":"f-demo","responses":[{"questionId":"q1","answer":5}]}`, http.StatusBadRequest},
		{"bad contact email", `{"formId":"f-demo","deviceId":"device_1_abc","responses":[{"questionId":"q1","answer":5}],"contactInfo":{"name":"Jo","email":"nope"}}`, http.StatusBadRequest},
		{"unknown form", `{"formId":"ghost","deviceId":"device_1_abc","responses":[{"questionId":"q1","answer":5}]}`, http.StatusNotFound},
		{"not json", `{{{`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewBufferString(tc.body))
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestSubmissionAcceptedAndAudited(t *testing.T) {
	mux, st := newTestGateway(t)
	body := `{"formId":"f-demo","deviceId":"device_1_abc","responses":[{"questionId":"q1","answer":5},{"questionId":"q2","answer":"great"}]}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewBufferString(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp["id"])

	entries, err := st.ListAudit(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "submit", entries[0].Action)
	assert.Equal(t, "f-demo", entries[0].Target)
	assert.Equal(t, "device_1_abc", entries[0].Actor)
}

func TestAuditListWithToken(t *testing.T) {
	mux, st := newTestGateway(t)
	require.NoError(t, st.AppendAudit(model.AuditEntry{Action: "check_run", Target: "routes"}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []model.AuditEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "check_run", entries[0].Action)
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	mux, _ := newTestGateway(t)
	bodies := []string{``, `{}`, `{"username":"jo"}`, `{"password":"pw"}`}
	for _, path := range []string{"/api/auth/login", "/api/auth/register"} {
		for _, body := range bodies {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %q", path, body)
		}
	}
}

func TestAuthUnavailableWithoutDB(t *testing.T) {
	mux, _ := newTestGateway(t)
	body := `{"username":"jo","password":"pw"}`
	for _, path := range []string{"/api/auth/login", "/api/auth/register"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestAuthMeEchoesClaims(t *testing.T) {
	mux, _ := newTestGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var claims auth.Claims
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&claims))
	assert.Equal(t, "checker", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestRecoverConvertsPanicsToServerErrors(t *testing.T) {
	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSubmissionsUnavailableWithoutDB(t *testing.T) {
	mux, _ := newTestGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", bearer(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
