package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/common"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/google/uuid"
)

// Middleware decorates a RoundTripper.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base so that mws[0] is the outermost layer.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// TokenSource yields the current bearer token, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Purger drops stored credentials.
type Purger interface {
	Purge(ctx context.Context) error
}

// BearerToken attaches the token from src to every request outside the
// auth endpoints. No token means the request goes out unauthenticated and the
// server decides.
func BearerToken(src TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if isAuthEndpoint(req.URL.Path) {
				return next.RoundTrip(req)
			}
			token, ok := src.Token(req.Context())
			if !ok {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
			return next.RoundTrip(req)
		})
	}
}

// isAuthEndpoint reports whether path addresses the credential-less /auth/
// group. An "auth" segment after "files" is a file id, not the group.
func isAuthEndpoint(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "auth":
			return true
		case "files":
			return false
		}
	}
	return false
}

// carriedCredential reports whether the request that reached the server had
// an Authorization header. Middlewares below this one may have added it, so
// the request recorded on the response wins.
func carriedCredential(req *http.Request, resp *http.Response) bool {
	if resp.Request != nil && resp.Request.Header.Get(common.AuthorizationHeaderName) != "" {
		return true
	}
	return req.Header.Get(common.AuthorizationHeaderName) != ""
}

// PurgeOnUnauthorized purges credentials when a request that carried them
// gets status 401. A 401 to an anonymous request (a failed login) leaves the
// store alone. The response is passed through untouched; nothing is retried.
func PurgeOnUnauthorized(p Purger, log logging.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}
			if !carriedCredential(req, resp) {
				return resp, nil
			}
			log.Warn(req.Context(), "server rejected credentials, purging local session", "path", req.URL.Path)
			if perr := p.Purge(req.Context()); perr != nil {
				log.Error(req.Context(), "credential purge failed", "error", perr)
			}
			return resp, nil
		})
	}
}

// RequestID sets X-Request-ID unless the caller set one. The ID comes from
// the request context (logging.WithRequestID) or is a fresh UUID.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(common.RequestIDHeaderName) != "" {
				return next.RoundTrip(req)
			}
			id, ok := logging.RequestIDFrom(req.Context())
			if !ok {
				id = uuid.NewString()
			}
			req = req.Clone(req.Context())
			req.Header.Set(common.RequestIDHeaderName, id)
			return next.RoundTrip(req)
		})
	}
}

// Logging records method, path, status and latency of every request.
func Logging(log logging.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)
			if err != nil {
				log.Warn(req.Context(), "http request failed",
					"method", req.Method, "path", req.URL.Path, "duration", elapsed, "error", err)
				return resp, err
			}
			log.Debug(req.Context(), "http request",
				"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode,
				"duration", elapsed, "request_id", req.Header.Get(common.RequestIDHeaderName))
			return resp, nil
		})
	}
}
