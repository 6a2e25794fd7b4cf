package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/client"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
)

// memStore is an in-memory CredentialStore.
type memStore struct {
	mu       sync.Mutex
	cred     *models.Credential
	saveErr  error
	purgeErr error
}

func (m *memStore) Token(context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return "", false
	}
	return m.cred.Token, true
}

func (m *memStore) Profile(context.Context) (*models.UserProfile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil, false
	}
	p := m.cred.Profile
	return &p, true
}

func (m *memStore) Save(_ context.Context, c models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if c.Token == "" {
		return errors.New("empty token")
	}
	m.cred = &c
	return nil
}

func (m *memStore) Purge(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.purgeErr != nil {
		return m.purgeErr
	}
	m.cred = nil
	return nil
}

// server starts an httptest server and returns a client for it plus a
// counter of requests received.
func server(t *testing.T, h http.HandlerFunc, opts ...client.Option) (*client.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return client.New(srv.URL+"/api", opts...), &hits
}

// downClient points at a closed server.
func downClient(t *testing.T) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()
	return client.New(addr + "/api")
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if msg != "" {
		body["message"] = msg
	}
	_ = json.NewEncoder(w).Encode(body)
}
