package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/preferences-api/internal/application/service"
	"github.com/sangkips/preferences-api/internal/config"
	"github.com/sangkips/preferences-api/internal/domain/entity"
	"github.com/sangkips/preferences-api/internal/domain/repository/repotest"
	"github.com/sangkips/preferences-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/preferences-api/internal/infrastructure/repository"
	"github.com/sangkips/preferences-api/internal/presentation/http/handler"
	"github.com/sangkips/preferences-api/internal/presentation/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "preferences-service", Version: "1.0.0", Port: "0"},
		Auth:    config.AuthConfig{Mode: config.AuthModeHeader, UserIDHeader: "X-User-ID"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Tracing: config.TracingConfig{Exporter: config.TracingExporterNone},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

type testServer struct {
	router   *gin.Engine
	settings *repotest.Store[entity.UserSettings, entity.UserSettingsPatch]
	notifs   *repotest.Store[entity.NotificationPreferences, entity.NotificationPreferencesPatch]
	theme    *repotest.Store[entity.ThemeSettings, entity.ThemeSettingsPatch]
	pingErr  error
}

func (s *testServer) storeCalls() int64 {
	return s.settings.Calls() + s.notifs.Calls() + s.theme.Calls()
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	db := dbtest.NewSQLiteDB(t)

	ts := &testServer{
		settings: &repotest.Store[entity.UserSettings, entity.UserSettingsPatch]{Inner: repository.NewUserSettingsRepository(db)},
		notifs:   &repotest.Store[entity.NotificationPreferences, entity.NotificationPreferencesPatch]{Inner: repository.NewNotificationPreferencesRepository(db)},
		theme:    &repotest.Store[entity.ThemeSettings, entity.ThemeSettingsPatch]{Inner: repository.NewThemeSettingsRepository(db)},
	}

	reg := prometheus.NewRegistry()
	handlers := &Handlers{
		Preferences: handler.NewPreferencesHandler(
			service.NewGeneralSettingsService(ts.settings),
			service.NewNotificationService(ts.notifs),
			service.NewThemeService(ts.theme),
		),
		Health: handler.NewHealthHandler(cfg.App.Name, cfg.App.Version, handler.PingerFunc(func(_ context.Context) error {
			return ts.pingErr
		})),
	}

	ts.router = Setup(handlers, &Deps{
		Cfg:            cfg,
		Metrics:        middleware.NewHTTPMetrics(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return ts
}

func (s *testServer) do(t *testing.T, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	detail, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return detail["code"].(string)
}

func TestMissingUserIDIsUnauthorized(t *testing.T) {
	testCases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, BasePath, ""},
		{http.MethodPut, BasePath, `{"language":"fr"}`},
		{http.MethodGet, BasePath + "/notifications", ""},
		{http.MethodPut, BasePath + "/notifications", `{"preferences":{"email":true}}`},
		{http.MethodGet, BasePath + "/theme", ""},
		{http.MethodPut, BasePath + "/theme", `{"mode":"dark"}`},
	}

	ts := newTestServer(t, testConfig())
	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := ts.do(t, tc.method, tc.path, "", tc.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

			blank := ts.do(t, tc.method, tc.path, "   ", tc.body)
			assert.Equal(t, http.StatusUnauthorized, blank.Code)
		})
	}
	assert.Zero(t, ts.storeCalls())
}

func TestGeneralSettingsEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(t, http.MethodGet, BasePath, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"language":"en","timezone":"UTC","locale":"en-US"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath, "u1", `{"language":"fr","timezone":"Europe/Paris"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"language":"fr","timezone":"Europe/Paris","locale":"en-US"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, BasePath, "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"language":"fr","timezone":"Europe/Paris","locale":"en-US"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath, "u1", `{"language":"f"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = ts.do(t, http.MethodPut, BasePath, "u1", `{"language":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST_BODY", errorCode(t, w))
}

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(t, http.MethodGet, BasePath+"/notifications", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 4)
	assert.Equal(t, map[string]interface{}{
		"email": false, "push": true, "assignments": false, "skillUpdates": true,
	}, body["preferences"])

	w = ts.do(t, http.MethodPut, BasePath+"/notifications", "u1", `{"preferences":{"email":true}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"preferences":{"email":true,"push":true,"assignments":false,"skillUpdates":true}}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath+"/notifications", "u1", `{"sms":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"preferences":{"email":true,"push":true,"assignments":false,"skillUpdates":true}}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath+"/notifications", "u1", `{"push":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, BasePath+"/notifications", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"email": true, "push": false, "assignments": false, "skillUpdates": true,
	}, decode(t, w)["preferences"])
}

func TestThemeEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(t, http.MethodGet, BasePath+"/theme", "u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"system","accentColor":"#3b82f6"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath+"/theme", "u1", `{"mode":"dark","accent_color":"#111111"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"dark","accentColor":"#111111"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath+"/theme", "u1", `{"accentColor":"#222222","accent_color":"#333333"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"mode":"dark","accentColor":"#222222"}`, w.Body.String())

	w = ts.do(t, http.MethodPut, BasePath+"/theme", "u1", `{"mode":"purple"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_THEME_MODE", errorCode(t, w))

	w = ts.do(t, http.MethodGet, BasePath+"/theme", "u1", "")
	assert.JSONEq(t, `{"mode":"dark","accentColor":"#222222"}`, w.Body.String())
}

func TestStoreFailureIsGenericInternalError(t *testing.T) {
	ts := newTestServer(t, testConfig())
	ts.theme.Err = errors.New("dial tcp 10.0.0.5:5432: connection refused")

	w := ts.do(t, http.MethodGet, BasePath+"/theme", "u1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestErrorCarriesRequestID(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, BasePath, nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	detail := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "req-123", detail["request_id"])
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t, testConfig())

	w := ts.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"preferences-service","version":"1.0.0"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/health/live", "", "")
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())

	ts.pingErr = errors.New("database is closed")
	w = ts.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/", "", "")
	assert.JSONEq(t, `{"service":"preferences-service","version":"1.0.0","status":"running","health":"/health"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, testConfig())

	ts.do(t, http.MethodGet, "/health", "", "")

	w := ts.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, BasePath+"/theme", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Zero(t, ts.storeCalls())
}
