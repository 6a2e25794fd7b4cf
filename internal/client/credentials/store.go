// Package credentials persists the single active login (bearer token and
// cached profile) in the local metadata table.
//
// Only two keys are managed: AuthTokenKey and UserDataKey. Reads never fail
// from the caller's point of view: a storage or decode error is logged and
// reported as "absent". Writes and purges return their errors.
//
// Purge notifies subscribers registered with OnPurge, which is how the
// session learns that the API client dropped a stale token.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/repositories/metadata"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/dbx"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

const (
	AuthTokenKey = "authToken"
	UserDataKey  = "userData"
)

var ErrUnknownKey = errors.New("unknown credential key")

// Store is safe for concurrent use. Concurrent saves are last-write-wins.
type Store struct {
	db   *sql.DB
	repo metadata.Repository
	log  logging.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	return &Store{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		log:  log.With("component", "credentials"),
		subs: make(map[int]func()),
	}
}

func checkKey(key string) error {
	if key != AuthTokenKey && key != UserDataKey {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// Get returns the raw value stored under key. Unknown keys and read failures
// are reported as absent.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if err := checkKey(key); err != nil {
		s.log.Warn(ctx, "credential read rejected", "error", err)
		return nil, false
	}
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "credential read failed, treating as absent", "key", key, "error", err)
		return nil, false
	}
	if v == nil {
		return nil, false
	}
	return v, true
}

// Set writes one key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.repo.Put(ctx, metadata.Entry{Key: key, Value: value})
}

// Remove deletes one key. Removing an absent key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.repo.Delete(ctx, key)
}

// Token returns the stored bearer token.
func (s *Store) Token(ctx context.Context) (string, bool) {
	v, ok := s.Get(ctx, AuthTokenKey)
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

// Profile returns the cached user profile. A corrupt value counts as absent.
func (s *Store) Profile(ctx context.Context) (*models.UserProfile, bool) {
	v, ok := s.Get(ctx, UserDataKey)
	if !ok {
		return nil, false
	}
	var p models.UserProfile
	if err := json.Unmarshal(v, &p); err != nil {
		s.log.Warn(ctx, "cached profile is not valid JSON, treating as absent", "error", err)
		return nil, false
	}
	return &p, true
}

// Save stores token and profile atomically.
func (s *Store) Save(ctx context.Context, cred models.Credential) error {
	if cred.Token == "" {
		return errors.New("empty token")
	}
	profile, err := json.Marshal(cred.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Put(ctx,
			metadata.Entry{Key: AuthTokenKey, Value: []byte(cred.Token)},
			metadata.Entry{Key: UserDataKey, Value: profile},
		)
	})
	if err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Purge removes both keys and then notifies purge subscribers. Purging an
// empty store succeeds and still notifies.
func (s *Store) Purge(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, AuthTokenKey, UserDataKey)
	})
	if err != nil {
		return fmt.Errorf("purge credential: %w", err)
	}

	s.mu.Lock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return nil
}

// OnPurge registers fn to run after every successful Purge. The returned
// function unregisters it and may be called more than once.
func (s *Store) OnPurge(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
