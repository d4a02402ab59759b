package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/account-service/internal/config"
	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*server.Server, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			CORSAllowedOrigins: []string{"*"},
			ForceHTTPS:         false,
		},
	}
	if mutate != nil {
		mutate(cfg)
	}

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	return &server.Server{Config: cfg, Logger: &logger}, &logs
}

// newTestEcho wires the middleware chain the way the router does.
func newTestEcho(s *server.Server) *echo.Echo {
	mws := NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mws.Global.GlobalErrorHandler
	e.Use(
		mws.Global.Recover(),
		mws.Global.CORS(),
		mws.Global.Secure(),
		mws.Global.HTTPSRedirect(),
		mws.RateLimit.Limit(),
		RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
	)

	e.GET("/ok", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	e.GET("/missing", func(c echo.Context) error {
		return errs.NewNotFoundError("Account not found", true, nil)
	})
	e.GET("/db", func(c echo.Context) error {
		return errors.New("pool exhausted")
	})
	e.GET("/norows", func(c echo.Context) error {
		return pgx.ErrNoRows
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	e.GET("/ctx", func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return c.NoContent(http.StatusNoContent)
	})

	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t, nil)
	e := newTestEcho(s)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'self'; object-src 'none'", rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestSecurityHeaders_HSTSOverHTTPS(t *testing.T) {
	s, _ := newTestServer(t, nil)
	e := newTestEcho(s)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	rec := serve(e, req)

	assert.Equal(t, "max-age=31556926; includeSubdomains", rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_OnErrors(t *testing.T) {
	s, _ := newTestServer(t, nil)
	e := newTestEcho(s)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	s, _ := newTestServer(t, nil)
	e := newTestEcho(s)

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := serve(e, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	s, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.CORSAllowedOrigins = []string{"https://app.example.com"}
	})
	e := newTestEcho(s)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec := serve(e, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTPSRedirect(t *testing.T) {
	s, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.ForceHTTPS = true
	})
	e := newTestEcho(s)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/ok?x=1", rec.Header().Get(echo.HeaderLocation))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	rec = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGlobalErrorHandler(t *testing.T) {
	s, logs := newTestServer(t, nil)
	e := newTestEcho(s)

	tests := []struct {
		name   string
		method string
		path   string
		status int
		code   string
	}{
		{"handler http error", http.MethodGet, "/missing", http.StatusNotFound, "NOT_FOUND"},
		{"unknown route", http.MethodGet, "/nowhere", http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodDelete, "/ok", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"no rows", http.MethodGet, "/norows", http.StatusNotFound, "NOT_FOUND"},
		{"unknown error", http.MethodGet, "/db", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"panic", http.MethodGet, "/panic", http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.Code)
		})
	}

	assert.NotContains(t, logs.String(), `"message":"pool exhausted"`)
	assert.Contains(t, logs.String(), "pool exhausted")
}

func TestGlobalErrorHandler_HidesInternalDetails(t *testing.T) {
	s, _ := newTestServer(t, nil)
	e := newTestEcho(s)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/db", nil))
	body := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "pool exhausted")
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})
	e := newTestEcho(s)

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ok", nil)
		r.RemoteAddr = "203.0.113.9:4000"
		return r
	}

	assert.Equal(t, http.StatusOK, serve(e, req()).Code)

	rec := serve(e, req())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)

	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, ContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, ReferrerPolicy, rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_ReusesIncomingHeader(t *testing.T) {
	s, logs := newTestServer(t, nil)
	e := newTestEcho(s)

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := serve(e, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), `"request_id":"req-123"`)
	assert.Contains(t, logs.String(), "from request context")
	assert.Contains(t, logs.String(), `"message":"API"`)
}

func TestGetLogger_Fallback(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c))
	assert.Equal(t, "", GetRequestID(c))
}
