// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// authentication (via Clerk), request logging, CORS, rate limiting, New
// Relic tracing and panic recovery, and own the global error handler that
// renders self-service and integration error bodies.
package middleware
