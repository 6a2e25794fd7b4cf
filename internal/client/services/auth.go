package services

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/client"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

// API is the part of *client.Client the services depend on.
type API interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, body any) (*client.Envelope, error)
	Upload(ctx context.Context, path, field, fileName string, r io.Reader) (*client.Envelope, error)
	Download(ctx context.Context, path string) (*models.FileContent, error)
}

// CredentialStore persists the active login.
type CredentialStore interface {
	Token(ctx context.Context) (string, bool)
	Profile(ctx context.Context) (*models.UserProfile, bool)
	Save(ctx context.Context, cred models.Credential) error
	Purge(ctx context.Context) error
}

const (
	msgLoginFailed       = "Login failed"
	msgRegisterFailed    = "Registration failed"
	msgForgotFailed      = "Could not send the reset email"
	msgResetFailed       = "Password reset failed"
	msgInvalidResetToken = "Invalid or expired token"
	msgLogoutFailed      = "Logout failed"
	msgLoggedOut         = "Logged out"
)

// LoginData is the payload of a successful login.
type LoginData struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile strips the token.
func (d LoginData) Profile() models.UserProfile {
	return models.UserProfile{Email: d.Email, FirstName: d.FirstName, LastName: d.LastName}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthService covers login, registration and password recovery.
type AuthService struct {
	api   API
	store CredentialStore
	log   logging.Logger
}

func NewAuthService(api API, store CredentialStore, log logging.Logger) *AuthService {
	return &AuthService{api: api, store: store, log: log.With("service", "auth")}
}

// Login authenticates and, on success, stores the token and profile. A store
// failure turns the result into a failure even though the server accepted.
func (s *AuthService) Login(ctx context.Context, email, password string) models.Result[LoginData] {
	email = strings.TrimSpace(email)
	if err := firstErr(required(email, password), validEmail(email), validPassword(password)); err != nil {
		return models.Fail[LoginData](err.Error())
	}

	env, err := s.api.DoJSON(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	res := fromEnvelope[LoginData](ctx, s.log, "login", msgLoginFailed, env, err)
	if !res.Success {
		return res
	}

	cred := models.Credential{Token: res.Data.Token, Profile: res.Data.Profile()}
	if err := s.store.Save(ctx, cred); err != nil {
		s.log.Error(ctx, "persist credential failed", "error", err)
		return models.Fail[LoginData](msgLoginFailed)
	}

	s.log.Info(ctx, "logged in", "email", res.Data.Email)
	return res
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) models.Result[models.Empty] {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	err := firstErr(
		required(req.Email, req.Password, req.ConfirmPassword),
		validEmail(req.Email),
		validPassword(req.Password),
		matching(req.Password, req.ConfirmPassword),
	)
	if err != nil {
		return models.Fail[models.Empty](err.Error())
	}

	env, err := s.api.DoJSON(ctx, http.MethodPost, "/auth/register", nil, req)
	return fromEnvelope[models.Empty](ctx, s.log, "register", msgRegisterFailed, env, err)
}

// ForgotPassword asks the server to mail a reset token.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) models.Result[models.Empty] {
	email = strings.TrimSpace(email)
	if err := firstErr(required(email), validEmail(email)); err != nil {
		return models.Fail[models.Empty](err.Error())
	}

	env, err := s.api.DoJSON(ctx, http.MethodPost, "/auth/forgot-password", nil, forgotRequest{Email: email})
	return fromEnvelope[models.Empty](ctx, s.log, "forgot password", msgForgotFailed, env, err)
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) models.Result[models.Empty] {
	token = strings.TrimSpace(token)
	err := firstErr(
		required(token, newPassword, confirmPassword),
		validPassword(newPassword),
		matching(newPassword, confirmPassword),
	)
	if err != nil {
		return models.Fail[models.Empty](err.Error())
	}

	body := resetRequest{Token: token, NewPassword: newPassword, ConfirmPassword: confirmPassword}
	env, err := s.api.DoJSON(ctx, http.MethodPost, "/auth/reset-password", nil, body)
	return fromEnvelope[models.Empty](ctx, s.log, "reset password", msgResetFailed, env, err)
}

func (s *AuthService) ValidateResetToken(ctx context.Context, token string) models.Result[models.Empty] {
	token = strings.TrimSpace(token)
	if err := required(token); err != nil {
		return models.Fail[models.Empty](err.Error())
	}

	q := url.Values{"token": {token}}
	env, err := s.api.DoJSON(ctx, http.MethodGet, "/auth/validate-reset-token", q, nil)
	return fromEnvelope[models.Empty](ctx, s.log, "validate reset token", msgInvalidResetToken, env, err)
}

// Logout drops the local credential. The server is not contacted, so it
// works offline and can be repeated.
func (s *AuthService) Logout(ctx context.Context) models.Result[models.Empty] {
	if err := s.store.Purge(ctx); err != nil {
		s.log.Error(ctx, "logout: purge failed", "error", err)
		return models.Fail[models.Empty](msgLogoutFailed)
	}
	return models.Ok(models.Empty{}, msgLoggedOut)
}

func (s *AuthService) IsLoggedIn(ctx context.Context) bool {
	_, ok := s.store.Token(ctx)
	return ok
}

// UserData returns the cached profile of the logged-in user.
func (s *AuthService) UserData(ctx context.Context) (*models.UserProfile, bool) {
	return s.store.Profile(ctx)
}

// Token exposes the stored bearer token, e.g. for expiry checks.
func (s *AuthService) Token(ctx context.Context) (string, bool) {
	return s.store.Token(ctx)
}
