// Package fakeapi is an in-memory implementation of the file-storage REST
// API. It backs end-to-end tests of the client and can run standalone for
// local development (cmd/fakeapi).
package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/common"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/gorilla/mux"
)

const (
	maxUploadSize = 32 << 20
	resetTokenTTL = 15 * time.Minute
)

type ctxKey string

const emailKey ctxKey = "email"

type Server struct {
	store    *Store
	log      logging.Logger
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time

	// OnResetToken receives reset tokens instead of an email being sent.
	OnResetToken func(email, token string)
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func WithStore(st *Store) Option {
	return func(s *Server) { s.store = st }
}

func NewServer(secret []byte, tokenTTL time.Duration, log logging.Logger, opts ...Option) *Server {
	s := &Server{
		store:    NewStore(),
		log:      log,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) Store() *Store { return s.store }

// Handler routes the API under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.withLogging)

	api := r.PathPrefix(common.APIBasePath).Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil, "OK")
	}).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/validate-reset-token", s.handleValidateResetToken).Methods(http.MethodGet)

	files := api.PathPrefix("/files").Subrouter()
	files.Use(s.withAuth)
	files.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	files.HandleFunc("/my-files", s.handleMyFiles).Methods(http.MethodGet)
	files.HandleFunc("/my-files/{type}", s.handleMyFiles).Methods(http.MethodGet)
	files.HandleFunc("/download/{id}", s.handleContent("attachment")).Methods(http.MethodGet)
	files.HandleFunc("/preview/{id}", s.handleContent("inline")).Methods(http.MethodGet)
	files.HandleFunc("/info/{id}", s.handleInfo).Methods(http.MethodGet)
	files.HandleFunc("/{id}/rename", s.handleRename).Methods(http.MethodPut)
	files.HandleFunc("/{id}", s.handleDelete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(logging.WithRequestID(r.Context(), r.Header.Get(common.RequestIDHeaderName)))
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		email, err := EmailFromToken(token, s.secret, s.now())
		if err != nil || !s.store.HasUser(email) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func emailFrom(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "fake API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info(ctx, "shutting down")
	return srv.Shutdown(shutdownCtx)
}
