package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/account-service/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	ServiceTitle   = "Account REST API Service"
	ServiceVersion = "1.0"
)

// IndexResponse describes the service and links to the accounts collection.
type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}

type IndexHandler struct {
	Handler
}

func NewIndexHandler(s *server.Server) *IndexHandler {
	return &IndexHandler{
		Handler: NewHandler(s),
	}
}

func (h *IndexHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, IndexResponse{
		Name:    ServiceTitle,
		Version: ServiceVersion,
		Paths:   fmt.Sprintf("%s://%s/accounts", c.Scheme(), c.Request().Host),
	})
}
