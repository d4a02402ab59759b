package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	}
}

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestIndex(t *testing.T) {
	h := NewIndexHandler(newTestServer())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "accounts.example.com"
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	c, rec := newContext(req)

	require.NoError(t, h.Index(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"name": "Account REST API Service",
		"version": "1.0",
		"paths": "https://accounts.example.com/accounts"
	}`, rec.Body.String())
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NoError(t, h.Liveness(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}

func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		checks map[string]CheckFunc
		status int
		state  string
	}{
		{
			name:   "no dependencies",
			checks: map[string]CheckFunc{},
			status: http.StatusOK,
			state:  "healthy",
		},
		{
			name: "all pass",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return nil },
			},
			status: http.StatusOK,
			state:  "healthy",
		},
		{
			name: "database down",
			checks: map[string]CheckFunc{
				"database": func(context.Context) error { return errors.New("connection refused") },
				"redis":    func(context.Context) error { return nil },
			},
			status: http.StatusServiceUnavailable,
			state:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer())
			h.checks = tt.checks

			c, rec := newContext(httptest.NewRequest(http.MethodGet, "/status", nil))
			require.NoError(t, h.CheckHealth(c))
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body["status"])
			assert.Equal(t, "test", body["environment"])
			assert.Len(t, body["checks"], len(tt.checks))
		})
	}
}

func TestCheckHealth_Timeout(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.timeout = 10 * time.Millisecond
	h.checks = map[string]CheckFunc{
		"database": func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/status", nil))
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "deadline exceeded")
}

func TestNewHealthHandler_NoDependencies(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	assert.Empty(t, h.checks)
	assert.Equal(t, defaultCheckTimeout, h.timeout)
}

func TestServeOpenAPIUI(t *testing.T) {
	h := NewOpenAPIHandler(newTestServer())
	c, rec := newContext(httptest.NewRequest(http.MethodGet, "/docs", nil))

	require.NoError(t, h.ServeOpenAPIUI(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, DocsContentSecurityPolicy, rec.Header().Get(echo.HeaderContentSecurityPolicy))

	// Every script is external, so the policy needs no 'unsafe-inline' for scripts.
	body := rec.Body.String()
	assert.Contains(t, body, `<script src="/static/openapi.js">`)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, DocsContentSecurityPolicy, "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, DocsContentSecurityPolicy, "https://unpkg.com")
}

func TestOpenAPIInitScript(t *testing.T) {
	raw, err := StaticFS.ReadFile("static/openapi.js")
	require.NoError(t, err)

	assert.Contains(t, string(raw), "SwaggerUIBundle")
	assert.Contains(t, string(raw), "/static/openapi.json")
}

func TestOpenAPIDocument(t *testing.T) {
	raw, err := StaticFS.ReadFile("static/openapi.json")
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Contains(t, doc.Paths["/accounts"], "post")
	assert.Contains(t, doc.Paths["/accounts/{id}"], "delete")
}

func TestNewRequest_FreshValuePerCall(t *testing.T) {
	prototype := &model.AccountRequest{Name: "stale"}

	first := newRequest(prototype)
	first.Name = "first"
	second := newRequest(prototype)

	assert.NotSame(t, first, second)
	assert.Empty(t, second.Name)
	assert.Equal(t, "stale", prototype.Name)
}
