package router

import (
	"github.com/deppfellow/account-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the account
// resource: index, probes and API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Index.Index)

	r.GET("/health", h.Health.Liveness)
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", echo.MustSubFS(handler.StaticFS, "static"))
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
