// Package observability builds the process logger and the request scoped
// field helpers used by the HTTP middleware.
package observability
