package config

import (
	"fmt"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

// Config holds runtime settings for the terminal client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DBPath         string
	CacheDir       string
	LogFormat      logging.Format
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.DBPath = "credentials.db"
	c.CacheDir = "cache"
	c.LogFormat = logging.FormatZerolog
	c.Verbose = false
}

// LoadConfig applies defaults, then the JSON file named by -c/-config (if
// any), then the flags found in args. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("config: base URL is empty")
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	case c.LogFormat != logging.FormatZerolog && c.LogFormat != logging.FormatSlog:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
