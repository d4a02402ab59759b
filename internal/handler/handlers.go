package handler

import (
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one object.
type Handlers struct {
	Index   *IndexHandler
	Account *AccountHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Index:   NewIndexHandler(s),
		Account: NewAccountHandler(s, services.Account),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
