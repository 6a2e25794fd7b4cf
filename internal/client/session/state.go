package session

import "github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"

// Status is the coarse authentication state of the application.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. User is set only when authenticated
// and may still be nil if no profile was cached.
type State struct {
	Status Status
	User   *models.UserProfile
}

func (s State) Loading() bool       { return s.Status == StatusLoading }
func (s State) Authenticated() bool { return s.Status == StatusAuthenticated }

func (s State) equal(o State) bool {
	if s.Status != o.Status {
		return false
	}
	switch {
	case s.User == nil && o.User == nil:
		return true
	case s.User == nil || o.User == nil:
		return false
	default:
		return *s.User == *o.User
	}
}
