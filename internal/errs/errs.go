// Package errs defines the error types returned to API clients.
//
// Every non-2xx response of the service is an HTTPError serialized as JSON,
// so clients always receive the same shape:
//
//	{"code":"NOT_FOUND","message":"...","status":404,"override":false,"errors":null,"action":null}
package errs
