package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/account-service/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticFS holds the OpenAPI document and the docs UI.
//
//go:embed static
var StaticFS embed.FS

// DocsContentSecurityPolicy replaces the global policy on the docs page.
// Swagger UI is loaded from unpkg and injects inline styles; scripts stay
// limited to that CDN and files served by the service.
const DocsContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://unpkg.com; " +
	"style-src 'self' 'unsafe-inline' https://unpkg.com; " +
	"img-src 'self' data:; " +
	"object-src 'none'"

// OpenAPIHandler serves the OpenAPI UI.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves static/openapi.html. Caching is disabled so doc
// changes show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := StaticFS.ReadFile("static/openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set(echo.HeaderContentSecurityPolicy, DocsContentSecurityPolicy)

	if err := c.HTMLBlob(http.StatusOK, templateBytes); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
