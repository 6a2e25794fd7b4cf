// Package client is the HTTP client for the file-storage REST API.
//
// # Overview
//
// One Client is shared by every domain service. It is configured with a fixed
// base address (including the /api context path) and a request timeout, and
// its transport is a chain of Middleware decorating http.RoundTripper:
//
//   - Logging: one line per request with status and duration.
//   - RequestID: an X-Request-ID header for correlating with server logs.
//   - PurgeOnUnauthorized: drops stored credentials on a 401 response and
//     hands the response back unchanged.
//   - BearerToken: attaches the stored token as "Authorization: Bearer ...".
//
// Middlewares run in the order given to WithMiddleware: the first one sees
// the request first and the response last.
//
// # Responses
//
// Every endpoint answers with the envelope {success, data?, message?}.
// DoJSON and Upload return the decoded Envelope; Decode unmarshals its data.
// Download returns the raw body of file endpoints.
//
// # Error Handling
//
// Transport failures and timeouts wrap ErrUnavailable. Status 401/403 wraps
// ErrUnauthorized. Any other status >= 400 is an *APIError carrying the
// server's message. Match with errors.Is / errors.As.
package client
