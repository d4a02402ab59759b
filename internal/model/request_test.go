package model

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, contentType, body string) echo.Context {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestAccountRequest_Valid(t *testing.T) {
	c := newContext(http.MethodPost, "/accounts", echo.MIMEApplicationJSON,
		`{"name":"Ada","email":"ada@example.com","address":"London","phone_number":"555","date_joined":"2020-02-29"}`)

	req := &AccountRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))

	fields := req.Fields()
	assert.Equal(t, "Ada", fields.Name)
	assert.Equal(t, "2020-02-29", fields.DateJoined.String())
}

func TestAccountRequest_MissingDateStaysZero(t *testing.T) {
	req := &AccountRequest{Name: "Ada", Email: "ada@example.com", Address: "London"}
	require.NoError(t, req.Validate())
	assert.True(t, req.Fields().DateJoined.IsZero())
}

func TestAccountRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"email":"a@example.com","address":"x"}`, "name"},
		{"missing address", `{"name":"A","email":"a@example.com"}`, "address"},
		{"missing email", `{"name":"A","address":"x"}`, "email"},
		{"long phone", `{"name":"A","email":"a@example.com","address":"x","phone_number":"` + strings.Repeat("9", 33) + `"}`, "phone_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(http.MethodPost, "/accounts", echo.MIMEApplicationJSON, tt.body)
			httpErr := requireHTTPError(t, validation.BindAndValidate(c, &AccountRequest{}), http.StatusBadRequest)

			require.NotEmpty(t, httpErr.Errors)
			assert.Equal(t, tt.field, httpErr.Errors[0].Field)
		})
	}
}

func TestAccountRequest_AnyEmailString(t *testing.T) {
	c := newContext(http.MethodPost, "/accounts", echo.MIMEApplicationJSON,
		`{"name":"Bob","email":"bob","address":"x"}`)

	req := &AccountRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, "bob", req.Fields().Email)
}

func TestAccountRequest_BadDate(t *testing.T) {
	c := newContext(http.MethodPost, "/accounts", echo.MIMEApplicationJSON,
		`{"name":"A","email":"a@example.com","address":"x","date_joined":"yesterday"}`)
	requireHTTPError(t, validation.BindAndValidate(c, &AccountRequest{}), http.StatusBadRequest)
}

func TestAccountRequest_WrongContentType(t *testing.T) {
	c := newContext(http.MethodPost, "/accounts", echo.MIMETextPlain, `name=A`)
	requireHTTPError(t, validation.BindAndValidate(c, &AccountRequest{}), http.StatusUnsupportedMediaType)
}

func TestAccountIDRequest(t *testing.T) {
	c := newContext(http.MethodGet, "/accounts/17", "", "")
	c.SetParamNames("id")
	c.SetParamValues("17")

	req := &AccountIDRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, int64(17), req.ID)
}

func TestAccountIDRequest_NonIntegerIsNotFound(t *testing.T) {
	c := newContext(http.MethodGet, "/accounts/abc", "", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	httpErr := requireHTTPError(t, validation.BindAndValidate(c, &AccountIDRequest{}), http.StatusNotFound)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", httpErr.Code)
}

func TestUpdateAccountRequest_IgnoresBodyID(t *testing.T) {
	c := newContext(http.MethodPut, "/accounts/3", echo.MIMEApplicationJSONCharsetUTF8,
		`{"id":999,"name":"B","email":"b@example.com","address":"y"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	req := &UpdateAccountRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, int64(3), req.ID)
	assert.Equal(t, "B", req.Body.Name)
}

func TestUpdateAccountRequest_WrongContentType(t *testing.T) {
	c := newContext(http.MethodPut, "/accounts/3", echo.MIMEApplicationForm, "name=B")
	c.SetParamNames("id")
	c.SetParamValues("3")

	requireHTTPError(t, validation.BindAndValidate(c, &UpdateAccountRequest{}), http.StatusUnsupportedMediaType)
}
