package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/job-marketplace/internal/api/handler"
	"github.com/99minutos/job-marketplace/internal/core/service"
	"github.com/99minutos/job-marketplace/internal/infrastructure/db/memory"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T, checks ...handler.DependencyCheck) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	svc := service.NewMarketplaceService(
		service.NewAuthService(store.Users, bcrypt.MinCost, log),
		service.NewJobService(store.Jobs, store.Users, log),
		service.NewApplicationService(store.Applications, store.Jobs, store.Users, log),
		service.NewTokenIssuer("router-test-secret-0123", time.Hour),
		memory.NewSessionRevoker(),
		log,
	)
	return &testServer{t: t, e: NewRouter(svc, log, checks...)}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(email, role string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/auth/register", "", `{"email":"`+email+`","password":"secret","role":"`+role+`"}`)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/v1/auth/login", "", `{"email":"`+email+`","password":"secret"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		Role      string `json:"role"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(s.t, "Bearer", resp.TokenType)
	require.Equal(s.t, role, resp.Role)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	assert.Equal(t, code, decode[errorEnvelope](t, rec).Error.Code)
}

const jobBody = `{"title":"Backend Engineer","company":"Acme","job_type":"full-time",
	"compensation":{"amount":"95000.00","currency":"USD","period":"year"},
	"contact":"jobs@acme.test","description":"Build APIs."}`

func TestRouter_Scenario(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")
	bob := s.login("bob@example.com", "seeker")

	rec := s.do(http.MethodPost, "/v1/jobs", alice, jobBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	job := decode[map[string]any](t, rec)
	jobID := job["id"].(string)
	assert.Equal(t, "/v1/jobs/"+jobID, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "95000", job["compensation"].(map[string]any)["amount"])

	assertError(t, s.do(http.MethodPost, "/v1/jobs", bob, jobBody), http.StatusForbidden, "role_mismatch")

	rec = s.do(http.MethodGet, "/v1/jobs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, list["count"])

	rec = s.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", bob, `{"message":"Hi!"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", bob, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assertError(t, s.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", alice, ""), http.StatusForbidden, "role_mismatch")

	rec = s.do(http.MethodGet, "/v1/jobs/"+jobID+"/applications", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode[map[string]any](t, rec)["count"])

	rec = s.do(http.MethodGet, "/v1/me/applications", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[listBody](t, rec)
	require.Len(t, mine.Items, 2)
	assert.Equal(t, "Backend Engineer", mine.Items[0]["job_title"])

	rec = s.do(http.MethodGet, "/v1/me", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "bob@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")
}

type listBody struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
}

func TestRouter_DeleteJob(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")
	carol := s.login("carol@example.com", "poster")
	bob := s.login("bob@example.com", "seeker")

	rec := s.do(http.MethodPost, "/v1/jobs", alice, jobBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decode[map[string]any](t, rec)["id"].(string)

	rec = s.do(http.MethodPost, "/v1/jobs/"+jobID+"/applications", bob, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	assertError(t, s.do(http.MethodDelete, "/v1/jobs/"+jobID, carol, ""), http.StatusForbidden, "forbidden")
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/v1/jobs/"+jobID, alice, "").Code)
	assertError(t, s.do(http.MethodDelete, "/v1/jobs/"+jobID, alice, ""), http.StatusNotFound, "not_found")
	assertError(t, s.do(http.MethodGet, "/v1/jobs/"+jobID, "", ""), http.StatusNotFound, "not_found")

	rec = s.do(http.MethodGet, "/v1/me/applications", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[listBody](t, rec)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, true, mine.Items[0]["job_deleted"])
}

func TestRouter_AuthErrors(t *testing.T) {
	s := newTestServer(t)
	s.login("alice@example.com", "poster")

	assertError(t, s.do(http.MethodPost, "/v1/auth/register", "", `{"email":"ALICE@example.com","password":"x","role":"seeker"}`),
		http.StatusConflict, "duplicate_email")
	assertError(t, s.do(http.MethodPost, "/v1/auth/register", "", `{"email":"nope","password":"x","role":"seeker"}`),
		http.StatusBadRequest, "invalid_input")
	assertError(t, s.do(http.MethodPost, "/v1/auth/register", "", `{"email":`),
		http.StatusBadRequest, "invalid_input")
	assertError(t, s.do(http.MethodPost, "/v1/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`),
		http.StatusUnauthorized, "invalid_credentials")
	assertError(t, s.do(http.MethodPost, "/v1/auth/login", "", `{"email":"ghost@example.com","password":"secret"}`),
		http.StatusUnauthorized, "invalid_credentials")

	assertError(t, s.do(http.MethodPost, "/v1/jobs", "", jobBody), http.StatusUnauthorized, "unauthenticated")
	assertError(t, s.do(http.MethodGet, "/v1/me", "", ""), http.StatusUnauthorized, "unauthenticated")
	assertError(t, s.do(http.MethodGet, "/v1/me", "forged.token.value", ""), http.StatusUnauthorized, "unauthenticated")
	assertError(t, s.do(http.MethodPost, "/v1/jobs", "forged.token.value", jobBody), http.StatusUnauthorized, "unauthenticated")
}

func TestRouter_UnusableTokenOnPublicRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")

	rec := s.do(http.MethodPost, "/v1/jobs", alice, jobBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decode[map[string]any](t, rec)["id"].(string)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/jobs", "forged.token.value", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/jobs/"+jobID, "forged.token.value", "").Code)
	assert.Equal(t, http.StatusOK,
		s.do(http.MethodPost, "/v1/auth/login", "forged.token.value", `{"email":"alice@example.com","password":"secret"}`).Code)
	assert.Equal(t, http.StatusCreated,
		s.do(http.MethodPost, "/v1/auth/register", "forged.token.value", `{"email":"dan@example.com","password":"secret","role":"seeker"}`).Code)
}

func TestRouter_ErrorMessagesAreFixedPerKind(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")
	carol := s.login("carol@example.com", "poster")
	bob := s.login("bob@example.com", "seeker")

	rec := s.do(http.MethodPost, "/v1/jobs", alice, jobBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decode[map[string]any](t, rec)["id"].(string)

	cases := []struct {
		name    string
		rec     *httptest.ResponseRecorder
		status  int
		code    string
		message string
	}{
		{"duplicate email",
			s.do(http.MethodPost, "/v1/auth/register", "", `{"email":"Alice@example.com","password":"x","role":"seeker"}`),
			http.StatusConflict, "duplicate_email", "email already registered"},
		{"invalid credentials",
			s.do(http.MethodPost, "/v1/auth/login", "", `{"email":"alice@example.com","password":"wrong"}`),
			http.StatusUnauthorized, "invalid_credentials", "invalid credentials"},
		{"unauthenticated",
			s.do(http.MethodGet, "/v1/me/jobs", "", ""),
			http.StatusUnauthorized, "unauthenticated", "authentication required"},
		{"role mismatch",
			s.do(http.MethodPost, "/v1/jobs", bob, jobBody),
			http.StatusForbidden, "role_mismatch", "operation not allowed for role"},
		{"forbidden",
			s.do(http.MethodGet, "/v1/jobs/"+jobID+"/applications", carol, ""),
			http.StatusForbidden, "forbidden", "access forbidden"},
		{"not found",
			s.do(http.MethodPost, "/v1/jobs/missing/applications", bob, ""),
			http.StatusNotFound, "not_found", "not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertError(t, tc.rec, tc.status, tc.code)
			assert.Equal(t, tc.message, decode[errorEnvelope](t, tc.rec).Error.Message)
		})
	}
}

func TestRouter_InvalidInputMessageIsVerbatim(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")

	rec := s.do(http.MethodPost, "/v1/jobs", alice, `{"title":"","contact":"c","description":"d"}`)
	assertError(t, rec, http.StatusBadRequest, "invalid_input")
	assert.Contains(t, decode[errorEnvelope](t, rec).Error.Message, "title is required")
}

func TestRouter_Logout(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice@example.com", "poster")

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/me", alice, "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/v1/auth/logout", alice, "").Code)
	assertError(t, s.do(http.MethodGet, "/v1/me", alice, ""), http.StatusUnauthorized, "unauthenticated")

	// Anonymous logout is a no-op.
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/v1/auth/logout", "", "").Code)

	// The ended token no longer identifies anyone but does not block public
	// routes or a repeated logout.
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/jobs", alice, "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/v1/auth/logout", alice, "").Code)
	assertError(t, s.do(http.MethodGet, "/v1/me/jobs", alice, ""), http.StatusUnauthorized, "unauthenticated")
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)
	assertError(t, s.do(http.MethodGet, "/v1/nope", "", ""), http.StatusNotFound, "not_found")
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t,
		handler.DependencyCheck{Name: "store", Ping: func(context.Context) error { return nil }},
		handler.DependencyCheck{Name: "sessions", Ping: func(context.Context) error { return errors.New("dial tcp: refused") }},
	)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)

	rec := s.do(http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "ok", deps["store"].(map[string]any)["status"])
	assert.Equal(t, "unhealthy", deps["sessions"].(map[string]any)["status"])

	rec = s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketplace_http_request_duration_seconds")
}
