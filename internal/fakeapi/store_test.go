package fakeapi

import (
	"testing"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Users(t *testing.T) {
	s := NewStore()
	p := models.UserProfile{Email: "Alice@Example.com", FirstName: "Alice"}

	require.NoError(t, s.CreateUser(p, "secret1"))
	require.ErrorIs(t, s.CreateUser(models.UserProfile{Email: "alice@example.com"}, "x"), ErrEmailTaken)

	got, err := s.Authenticate(" alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Alice", got.FirstName)

	_, err = s.Authenticate("alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrBadCredentials)
	_, err = s.Authenticate("bob@example.com", "secret1")
	require.ErrorIs(t, err, ErrBadCredentials)

	require.NoError(t, s.SetPassword("alice@example.com", "newpass"))
	_, err = s.Authenticate("alice@example.com", "newpass")
	require.NoError(t, err)
	require.ErrorIs(t, s.SetPassword("bob@example.com", "x"), ErrUserNotFound)
}

func TestStore_ResetTokens(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.PutResetToken("t1", "A@b.c", now.Add(time.Minute))

	email, err := s.ResetEmail("t1", now)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", email)

	_, err = s.ResetEmail("t1", now.Add(time.Minute))
	require.ErrorIs(t, err, ErrResetTokenNotFound)

	s.ConsumeResetToken("t1")
	_, err = s.ResetEmail("t1", now)
	require.ErrorIs(t, err, ErrResetTokenNotFound)
}

func TestStore_Files(t *testing.T) {
	s := NewStore()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	older := s.AddFile("a@b.c", "cat.png", "image/png", []byte("png"), t0)
	newer := s.AddFile("a@b.c", "notes.txt", "text/plain", []byte("hi"), t0.Add(time.Hour))
	foreign := s.AddFile("x@y.z", "secret.pdf", "application/pdf", nil, t0)

	assert.Equal(t, []models.FileRecord{newer, older}, s.Files("a@b.c", ""))
	assert.Equal(t, []models.FileRecord{older}, s.Files("a@b.c", "IMAGE"))
	assert.Empty(t, s.Files("nobody@b.c", ""))
	assert.Equal(t, int64(3), older.FileSize)

	_, _, err := s.File("a@b.c", foreign.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, _, err = s.File("a@b.c", "missing")
	require.ErrorIs(t, err, ErrFileNotFound)

	renamed, err := s.RenameFile("a@b.c", older.ID, "kitten.png")
	require.NoError(t, err)
	assert.Equal(t, "kitten.png", renamed.OriginalFileName)
	assert.Equal(t, older.ID, renamed.ID)

	require.ErrorIs(t, s.DeleteFile("a@b.c", foreign.ID), ErrForbidden)
	require.NoError(t, s.DeleteFile("a@b.c", older.ID))
	require.ErrorIs(t, s.DeleteFile("a@b.c", older.ID), ErrFileNotFound)
}
