package model

import (
	"strconv"

	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// AccountRequest is the JSON body accepted by create and update.
//
// An "id" key in the body is ignored. Email is stored as given; its format
// is not checked.
type AccountRequest struct {
	Name        string `json:"name" validate:"required,max=64"`
	Email       string `json:"email" validate:"required,max=64"`
	Address     string `json:"address" validate:"required,max=256"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	DateJoined  *Date  `json:"date_joined"`
}

func (r *AccountRequest) Validate() error {
	return validation.Struct(r)
}

// Fields converts the request into AccountFields. A missing date_joined
// stays zero and is defaulted by the service.
func (r *AccountRequest) Fields() AccountFields {
	fields := AccountFields{
		Name:        r.Name,
		Email:       r.Email,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
	if r.DateJoined != nil {
		fields.DateJoined = *r.DateJoined
	}
	return fields
}

// AccountIDRequest addresses a single account by its path id.
type AccountIDRequest struct {
	ID int64
}

func (r *AccountIDRequest) Bind(c echo.Context) error {
	id, err := ParseAccountID(c.Param("id"))
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (r *AccountIDRequest) Validate() error {
	return nil
}

// UpdateAccountRequest is the path id plus the replacement body of a PUT.
type UpdateAccountRequest struct {
	ID   int64
	Body AccountRequest
}

func (r *UpdateAccountRequest) Bind(c echo.Context) error {
	id, err := ParseAccountID(c.Param("id"))
	if err != nil {
		return err
	}
	r.ID = id
	return validation.BindJSON(c, &r.Body)
}

func (r *UpdateAccountRequest) Validate() error {
	return r.Body.Validate()
}

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

var accountNotFoundCode = "ACCOUNT_NOT_FOUND"

// ParseAccountID parses a path id. Anything that is not an integer names no
// account, so it is reported as not found.
func ParseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError("Account not found", true, &accountNotFoundCode)
	}
	return id, nil
}
