package router

import (
	"net/http"

	"github.com/deppfellow/account-service/internal/handler"
	"github.com/deppfellow/account-service/internal/model"
	"github.com/labstack/echo/v4"
)

func registerAccountRoutes(r *echo.Echo, h *handler.Handlers) {
	accounts := r.Group("/accounts")
	base := h.Account.Handler

	accounts.POST("", handler.Handle(base, h.Account.CreateAccount, http.StatusCreated, &model.AccountRequest{}))
	accounts.GET("", handler.Handle(base, h.Account.ListAccounts, http.StatusOK, &model.EmptyRequest{}))
	accounts.GET("/:id", handler.Handle(base, h.Account.GetAccount, http.StatusOK, &model.AccountIDRequest{}))
	accounts.PUT("/:id", handler.Handle(base, h.Account.UpdateAccount, http.StatusOK, &model.UpdateAccountRequest{}))
	accounts.DELETE("/:id", handler.HandleNoContent(base, h.Account.DeleteAccount, http.StatusNoContent, &model.AccountIDRequest{}))
}
