// Package session holds the application's authentication state.
//
// A Session starts in Loading, resolves to Authenticated or Unauthenticated
// in Init from whatever the credential store holds, and afterwards changes
// only through its own Login/Logout or a credential purge event (for example
// the API client purging on a 401). Listeners are called synchronously after
// every transition, outside the session lock.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/services"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNotInitialized = errors.New("session not initialized")

// Auth is the authentication backend a Session delegates to.
type Auth interface {
	Login(ctx context.Context, email, password string) models.Result[services.LoginData]
	Register(ctx context.Context, req services.RegisterRequest) models.Result[models.Empty]
	ForgotPassword(ctx context.Context, email string) models.Result[models.Empty]
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) models.Result[models.Empty]
	Logout(ctx context.Context) models.Result[models.Empty]
	Token(ctx context.Context) (string, bool)
	UserData(ctx context.Context) (*models.UserProfile, bool)
}

// PurgeNotifier publishes credential purges.
type PurgeNotifier interface {
	OnPurge(fn func()) (unsubscribe func())
}

type Option func(*Session)

// WithPurgeEvents makes the session drop to Unauthenticated whenever the
// credential store is purged behind its back.
func WithPurgeEvents(n PurgeNotifier) Option {
	return func(s *Session) { s.purges = n }
}

// WithExpiryCheck makes Init discard a stored JWT whose exp claim has passed.
// The signature is not verified; only the server can do that.
func WithExpiryCheck() Option {
	return func(s *Session) { s.checkExpiry = true }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

type Session struct {
	auth        Auth
	purges      PurgeNotifier
	checkExpiry bool
	now         func() time.Time
	log         logging.Logger

	mu          sync.Mutex
	state       State
	gen         uint64
	initialized bool
	nextID      int
	listeners   map[int]func(State)
	unsubscribe func()
}

func New(auth Auth, opts ...Option) *Session {
	s := &Session{
		auth:      auth,
		now:       time.Now,
		log:       logging.Nop(),
		state:     State{Status: StatusLoading},
		listeners: make(map[int]func(State)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init resolves the initial state from stored credentials. Calling it again
// re-reads the store.
func (s *Session) Init(ctx context.Context) State {
	s.mu.Lock()
	if !s.initialized && s.purges != nil {
		s.unsubscribe = s.purges.OnPurge(s.onPurge)
	}
	s.initialized = true
	s.mu.Unlock()

	token, ok := s.auth.Token(ctx)
	if ok && s.checkExpiry && s.expired(token) {
		s.log.Info(ctx, "stored token expired, logging out")
		if res := s.auth.Logout(ctx); !res.Success {
			s.log.Error(ctx, "dropping expired token failed", "message", res.Message)
		}
		// the state follows whatever the store holds now
		_, ok = s.auth.Token(ctx)
	}
	if !ok {
		return s.set(State{Status: StatusUnauthenticated})
	}

	user, _ := s.auth.UserData(ctx)
	return s.set(State{Status: StatusAuthenticated, User: user})
}

func (s *Session) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// opaque tokens are left for the server to judge
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !s.now().Before(exp.Time)
}

func (s *Session) onPurge() {
	s.mu.Lock()
	authenticated := s.state.Authenticated()
	s.mu.Unlock()
	if authenticated {
		s.log.Info(context.Background(), "credentials purged, session ended")
		s.set(State{Status: StatusUnauthenticated})
	}
}

// Login delegates to Auth and moves to Authenticated on success. A failed
// login leaves the state as it was.
func (s *Session) Login(ctx context.Context, email, password string) models.Result[services.LoginData] {
	res := s.auth.Login(ctx, email, password)
	if res.Success {
		user := res.Data.Profile()
		s.set(State{Status: StatusAuthenticated, User: &user})
	}
	return res
}

// Logout always ends Unauthenticated, even if the local purge failed.
func (s *Session) Logout(ctx context.Context) models.Result[models.Empty] {
	res := s.auth.Logout(ctx)
	s.set(State{Status: StatusUnauthenticated})
	return res
}

func (s *Session) Register(ctx context.Context, req services.RegisterRequest) models.Result[models.Empty] {
	return s.auth.Register(ctx, req)
}

func (s *Session) ForgotPassword(ctx context.Context, email string) models.Result[models.Empty] {
	return s.auth.ForgotPassword(ctx, email)
}

func (s *Session) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) models.Result[models.Empty] {
	return s.auth.ResetPassword(ctx, token, newPassword, confirmPassword)
}

// State returns the current snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation increases on every transition. Capture it before a slow call
// and check IsCurrent afterwards to drop results that belong to an older
// session.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Session) IsCurrent(gen uint64) bool {
	return s.Generation() == gen
}

// Subscribe registers fn for every future transition.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Teardown detaches the session from purge events. Listeners stay.
func (s *Session) Teardown() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.initialized = false
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *Session) set(next State) State {
	s.mu.Lock()
	if s.state.equal(next) {
		s.mu.Unlock()
		return next
	}
	s.state = next
	s.gen++
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return next
}

type ctxKey struct{}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the Session stored by NewContext.
func FromContext(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNotInitialized
	}
	return s, nil
}
