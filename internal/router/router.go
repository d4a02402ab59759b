// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/middleware"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance: global middleware, error handler and routes.
//
// Middleware order matters. Recovery is outermost, then the response headers
// so that redirects, rate-limit denials and errors carry them too, then the
// request id and tracing that the request-scoped logger reads.
func NewRouter(s *server.Server, h *handler.Handlers, mws *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Use(
		mws.Global.Recover(),
		mws.Global.CORS(),
		mws.Global.Secure(),
		mws.Global.HTTPSRedirect(),
		mws.RateLimit.Limit(),
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
	)

	registerSystemRoutes(router, h)
	registerAccountRoutes(router, h)

	return router
}
