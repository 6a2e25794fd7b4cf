// Package common contains shared constants and small helpers used by both the
// file-vault client and the development API server.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a client request with server logs.
	RequestIDHeaderName = "X-Request-ID"

	// APIBasePath is the context path every REST endpoint lives under.
	APIBasePath = "/api"
)
