package middleware

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/deppfellow/account-service/internal/errs"
	"github.com/deppfellow/account-service/internal/server"
	"github.com/deppfellow/account-service/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// HSTSMaxAge is one year in seconds.
	HSTSMaxAge = 31556926

	ContentSecurityPolicy = "default-src 'self'; object-src 'none'"
	ReferrerPolicy        = "strict-origin-when-cross-origin"
	FrameOptions          = "SAMEORIGIN"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns echo's CORS middleware configured by the server config.
//
// With a wildcard origin, Access-Control-Allow-Origin is sent on every
// response, including requests without an Origin header.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	origins := global.server.Config.Server.CORSAllowedOrigins
	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
	})

	if !slices.Contains(origins, "*") {
		return cors
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := cors(next)
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
			return h(c)
		}
	}
}

// Secure sets the security headers on every response.
//
// Strict-Transport-Security is only sent when the request came over HTTPS,
// directly or through a proxy setting X-Forwarded-Proto.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         FrameOptions,
		HSTSMaxAge:            HSTSMaxAge,
		ContentSecurityPolicy: ContentSecurityPolicy,
		ReferrerPolicy:        ReferrerPolicy,
	})
}

// HTTPSRedirect redirects plain HTTP requests to HTTPS with 302 Found.
// It passes everything through when server.force_https is off.
func (global *GlobalMiddlewares) HTTPSRedirect() echo.MiddlewareFunc {
	forceHTTPS := global.server.Config.Server.ForceHTTPS
	return middleware.HTTPSRedirectWithConfig(middleware.RedirectConfig{
		Skipper: func(echo.Context) bool { return !forceHTTPS },
		Code:    http.StatusFound,
	})
}

// RequestLogger writes one "API" log line per request, at a level picked
// from the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler writes the response after this runs, so derive
			// the status from the error.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// fromEchoError maps router and middleware errors onto the service's error shape.
func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	switch echoErr.Code {
	case http.StatusNotFound:
		return errs.NewNotFoundError("Route not found", false, nil)
	case http.StatusMethodNotAllowed:
		return errs.NewMethodNotAllowedError("Method not allowed")
	case http.StatusUnsupportedMediaType:
		return errs.NewUnsupportedMediaTypeError(fmt.Sprintf("Content-Type must be %s", echo.MIMEApplicationJSON))
	case http.StatusTooManyRequests:
		return errs.NewTooManyRequestsError("Rate limit exceeded")
	}

	message := http.StatusText(echoErr.Code)
	if msg, ok := echoErr.Message.(string); ok {
		message = msg
	}

	return &errs.HTTPError{
		Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Message: message,
		Status:  echoErr.Code,
	}
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error returned by a handler or middleware ends up here and is
// written once in the errs.HTTPError shape. Anything unrecognized is passed
// through sqlerr.HandleError, which maps driver errors and hides the rest
// behind a generic 500.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			httpErr = fromEchoError(echoErr)
		} else {
			err = sqlerr.HandleError(err)
			if !errors.As(err, &httpErr) {
				httpErr = errs.NewInternalServerError()
			}
		}
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, httpErr)
}
