package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.BaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "credentials.db", c.DBPath)
	assert.Equal(t, "cache", c.CacheDir)
	assert.Equal(t, logging.FormatZerolog, c.LogFormat)
	assert.False(t, c.Verbose)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://files.example.com/api", "-t", "30", "-d", "/tmp/c.db", "-k", "/tmp/cache", "-l", "slog", "-v"},
			expected: &Config{
				BaseURL: "https://files.example.com/api", RequestTimeout: 30 * time.Second,
				DBPath: "/tmp/c.db", CacheDir: "/tmp/cache", LogFormat: logging.FormatSlog, Verbose: true,
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-x", "1", "-c", "cfg.json", "-t=5"},
			expected: func() *Config { c := defaults(); c.RequestTimeout = 5 * time.Second; return c }(),
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			err := parseFlags(c, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, c))
		})
	}
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"base_url":        "http://files.local/api",
		"request_timeout": "3s",
		"log_format":      "slog",
	})

	c := defaults()
	require.NoError(t, parseJson(c, []string{"-config", path}))

	assert.Equal(t, "http://files.local/api", c.BaseURL)
	assert.Equal(t, 3*time.Second, c.RequestTimeout)
	assert.Equal(t, logging.FormatSlog, c.LogFormat)
	// absent keys keep their defaults
	assert.Equal(t, "credentials.db", c.DBPath)
	assert.Equal(t, "cache", c.CacheDir)
}

func TestParseJson_Errors(t *testing.T) {
	c := defaults()
	require.Error(t, parseJson(c, []string{"-c", filepath.Join(t.TempDir(), "missing.json")}))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	require.Error(t, parseJson(c, []string{"-c", bad}))

	require.NoError(t, parseJson(c, nil), "no file flag is not an error")
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"base_url":        "http://json/api",
		"request_timeout": 7000000000,
		"db_path":         "json.db",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag/api"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag/api", cfg.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json.db", cfg.DBPath)
}

func TestLoadConfig_Validation(t *testing.T) {
	for _, args := range [][]string{
		{"-a", ""},
		{"-t", "0"},
		{"-l", "xml"},
	} {
		_, err := LoadConfig(args)
		assert.Error(t, err, "args %v", args)
	}
}
