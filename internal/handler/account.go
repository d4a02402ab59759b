package handler

import (
	"fmt"

	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/service"
	"github.com/labstack/echo/v4"
)

// AccountHandler serves the /accounts resource.
type AccountHandler struct {
	Handler
	accounts *service.AccountService
}

func NewAccountHandler(s *server.Server, accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{
		Handler:  NewHandler(s),
		accounts: accounts,
	}
}

// accountURL is the absolute URL of the account with the given id.
func accountURL(c echo.Context, id int64) string {
	return fmt.Sprintf("%s://%s/accounts/%d", c.Scheme(), c.Request().Host, id)
}

// CreateAccount persists a new account and points Location at it.
func (h *AccountHandler) CreateAccount(c echo.Context, req *model.AccountRequest) (*model.Account, error) {
	account, err := h.accounts.Create(c.Request().Context(), req.Fields())
	if err != nil {
		return nil, err
	}

	c.Response().Header().Set(echo.HeaderLocation, accountURL(c, account.ID))
	return account, nil
}

func (h *AccountHandler) ListAccounts(c echo.Context, _ *model.EmptyRequest) ([]model.Account, error) {
	return h.accounts.List(c.Request().Context())
}

func (h *AccountHandler) GetAccount(c echo.Context, req *model.AccountIDRequest) (*model.Account, error) {
	return h.accounts.Get(c.Request().Context(), req.ID)
}

func (h *AccountHandler) UpdateAccount(c echo.Context, req *model.UpdateAccountRequest) (*model.Account, error) {
	return h.accounts.Update(c.Request().Context(), req.ID, req.Body.Fields())
}

func (h *AccountHandler) DeleteAccount(c echo.Context, req *model.AccountIDRequest) error {
	return h.accounts.Delete(c.Request().Context(), req.ID)
}
