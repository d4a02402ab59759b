// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as security headers, CORS, HTTPS redirection, request
// logging, rate limiting, and panic recovery
package middleware
