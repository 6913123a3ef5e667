package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/clock"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/transport/http/mocks"
)

const testOrigin = "http://localhost:5173"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router       *gin.Engine
	availability *mocks.MockAvailabilityService
	reservations *mocks.MockReservationService
	conferences  *mocks.MockConferenceService
	admin        *mocks.MockAdminService
	staffToken   string
	managerToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		availability: mocks.NewMockAvailabilityService(ctrl),
		reservations: mocks.NewMockReservationService(ctrl),
		conferences:  mocks.NewMockConferenceService(ctrl),
		admin:        mocks.NewMockAdminService(ctrl),
	}

	authn, err := auth.NewAuthenticator("test-secret")
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	if env.staffToken, err = authn.Issue(auth.Identity{UserID: "ana", Name: "Ana"}, time.Hour); err != nil {
		t.Fatalf("issue staff token: %v", err)
	}
	if env.managerToken, err = authn.Issue(auth.Identity{UserID: "chefe", CanManageLimits: true}, time.Hour); err != nil {
		t.Fatalf("issue manager token: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(HandlerDeps{
		Availability: env.availability,
		Reservations: env.reservations,
		Conferences:  env.conferences,
		Admin:        env.admin,
		Clock:        clock.NewFixed(time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)),
		Logger:       logger,
	})
	env.router = NewRouter(RouterConfig{
		Handler:     h,
		Auth:        authn,
		CORSOrigins: []string{testOrigin},
		Logger:      logger,
	})
	return env
}

func (e *testEnv) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, token, "", nil)
}

func (e *testEnv) postForm(path, token string, values url.Values) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, token, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (e *testEnv) sendJSON(method, path, token, body string) *httptest.ResponseRecorder {
	return e.do(method, path, token, "application/json", strings.NewReader(body))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	resp := decodeError(t, rec)
	if resp.Code != code {
		t.Fatalf("expected code %s, got %s", code, resp.Code)
	}
	return resp
}
