package fakeapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrBadCredentials     = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrFileNotFound       = errors.New("file not found")
	ErrForbidden          = errors.New("access denied")
	ErrResetTokenNotFound = errors.New("invalid or expired token")
)

type user struct {
	profile models.UserProfile
	hash    []byte
}

type storedFile struct {
	record models.FileRecord
	owner  string
	data   []byte
}

type resetToken struct {
	email   string
	expires time.Time
}

// Store keeps users, files and reset tokens in memory.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*user
	files  map[string]*storedFile
	resets map[string]resetToken
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*user),
		files:  make(map[string]*storedFile),
		resets: make(map[string]resetToken),
	}
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(p models.UserProfile, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	key := normEmail(p.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return ErrEmailTaken
	}
	p.Email = key
	s.users[key] = &user{profile: p, hash: hash}
	return nil
}

// Authenticate returns the profile when the password matches.
func (s *Store) Authenticate(email, password string) (models.UserProfile, error) {
	s.mu.RLock()
	u, ok := s.users[normEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return models.UserProfile{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return models.UserProfile{}, ErrBadCredentials
	}
	return u.profile, nil
}

func (s *Store) HasUser(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[normEmail(email)]
	return ok
}

func (s *Store) SetPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[normEmail(email)]
	if !ok {
		return ErrUserNotFound
	}
	u.hash = hash
	return nil
}

func (s *Store) PutResetToken(token, email string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets[token] = resetToken{email: normEmail(email), expires: expires}
}

// ResetEmail returns the email a live reset token belongs to.
func (s *Store) ResetEmail(token string, now time.Time) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.resets[token]
	if !ok || !now.Before(rt.expires) {
		return "", ErrResetTokenNotFound
	}
	return rt.email, nil
}

func (s *Store) ConsumeResetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resets, token)
}

func (s *Store) AddFile(owner, name, fileType string, data []byte, at time.Time) models.FileRecord {
	rec := models.FileRecord{
		ID:               uuid.NewString(),
		OriginalFileName: name,
		FileType:         fileType,
		FileSize:         int64(len(data)),
		UploadedAt:       at,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[rec.ID] = &storedFile{record: rec, owner: normEmail(owner), data: data}
	return rec
}

// Files lists the owner's files, newest first. A non-empty fileType keeps
// only records whose type contains it.
func (s *Store) Files(owner, fileType string) []models.FileRecord {
	owner = normEmail(owner)
	fileType = strings.ToLower(fileType)

	s.mu.RLock()
	out := make([]models.FileRecord, 0)
	for _, f := range s.files {
		if f.owner != owner {
			continue
		}
		if fileType != "" && !strings.Contains(strings.ToLower(f.record.FileType), fileType) {
			continue
		}
		out = append(out, f.record)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) file(owner, id string) (*storedFile, error) {
	f, ok := s.files[id]
	if !ok {
		return nil, ErrFileNotFound
	}
	if f.owner != normEmail(owner) {
		return nil, ErrForbidden
	}
	return f, nil
}

// File returns the record and content of one of owner's files.
func (s *Store) File(owner, id string) (models.FileRecord, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, err := s.file(owner, id)
	if err != nil {
		return models.FileRecord{}, nil, err
	}
	return f.record, f.data, nil
}

func (s *Store) DeleteFile(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.file(owner, id); err != nil {
		return err
	}
	delete(s.files, id)
	return nil
}

func (s *Store) RenameFile(owner, id, name string) (models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.file(owner, id)
	if err != nil {
		return models.FileRecord{}, err
	}
	f.record.OriginalFileName = name
	return f.record, nil
}
