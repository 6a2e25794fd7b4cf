package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }
	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", string(pw))
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword("Password", &out)
	require.Error(t, err)
}

func TestReadSecret(t *testing.T) {
	oldTerm, oldRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = oldTerm, oldRead })
	var out bytes.Buffer

	isTerminal = func(int) bool { return false }
	got, err := readSecret(rdr("piped\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "piped", got)

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	got, err = readSecret(rdr(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "typed", got)

	// typed-ahead input sitting in the shared reader is used before the terminal
	readPassword = func(int) ([]byte, error) { return nil, errors.New("terminal not expected") }
	buffered := rdr("alice@example.com\nsecret1\n")
	_, err = buffered.ReadString('\n')
	require.NoError(t, err)
	got, err = readSecret(buffered, "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":    true,
		"YES\n":  true,
		"n\n":    false,
		"\n":     false,
		"":       false,
		"sure\n": false,
	}
	for in, want := range tests {
		var out bytes.Buffer
		assert.Equal(t, want, Confirm(rdr(in), "Delete?", &out), "input %q", in)
	}
}
