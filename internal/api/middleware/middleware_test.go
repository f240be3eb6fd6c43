package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quizbingo/internal/api/apierr"
	"github.com/mcoot/quizbingo/internal/dependencies/mocks"
	"github.com/mcoot/quizbingo/internal/services/host"
	"github.com/mcoot/quizbingo/internal/testutil"
)

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	})
}

func TestLoggingLevels(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{"success", "/api/v1/session", http.StatusOK, "INFO"},
		{"quiet path", "/api/v1/health", http.StatusOK, "DEBUG"},
		{"client error", "/api/v1/session/answer", http.StatusBadRequest, "WARN"},
		{"server error", "/api/v1/health", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.CaptureLogger()
			handler := Logging(logger, "/api/v1/health")(statusHandler(tt.status))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			record := logs.Find("http request")
			require.NotNil(t, record)
			assert.Equal(t, tt.level, record["level"])
			assert.Equal(t, tt.path, record["path"])
			assert.EqualValues(t, tt.status, record["status"])
			assert.EqualValues(t, 4, record["size"])
		})
	}
}

func TestLoggingKeepsFlusher(t *testing.T) {
	var flushed bool
	handler := Logging(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		flushed = ok
		if ok {
			flusher.Flush()
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	assert.True(t, flushed)
	assert.True(t, rr.Flushed)
}

func TestRecoveryWritesJSONError(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	handler := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/session/reset", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)

	record := logs.Find("panic recovered")
	require.NotNil(t, record)
	assert.Equal(t, "boom", record["error"])
}

func newHostService(t *testing.T, password string) *host.Service {
	t.Helper()
	service, err := host.New(mocks.NewMockClock(time.Now()), host.Config{Password: password, Cost: 4})
	require.NoError(t, err)
	return service
}

func TestHostOnly(t *testing.T) {
	service := newHostService(t, "secret")
	session, err := service.Login("secret")
	require.NoError(t, err)
	handler := HostOnly(service)(statusHandler(http.StatusOK))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no credential", func(*http.Request) {}, http.StatusUnauthorized},
		{"wrong password", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"password", func(r *http.Request) { r.Header.Set("Authorization", "Bearer secret") }, http.StatusOK},
		{"session token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+session.Token) }, http.StatusOK},
		{"session cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: HostCookie, Value: session.Token}) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/session/reset", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestHostOnlyDisabledAllowsAll(t *testing.T) {
	handler := HostOnly(newHostService(t, ""))(statusHandler(http.StatusOK))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/session/reset", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
