// Package config handles configuration for the development API server:
// defaults, an optional JSON overlay (-c/-config) and command-line flags.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/flagx"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/timex"
)

// Config holds runtime settings for the fake API server.
//
// Fields:
//   - Addr: listen address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     key per process, which invalidates tokens on restart.
//   - TokenTTL: lifetime of issued tokens.
//   - LogFormat: zerolog or slog.
type Config struct {
	Addr      string
	SecretKey string
	TokenTTL  time.Duration
	LogFormat logging.Format
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.SecretKey = ""
	c.TokenTTL = time.Hour
	c.LogFormat = logging.FormatZerolog
}

// JsonConfig is the on-disk form of Config.
type JsonConfig struct {
	Addr      *string         `json:"addr"`
	SecretKey *string         `json:"secret_key"`
	TokenTTL  *timex.Duration `json:"token_ttl"`
	LogFormat *string         `json:"log_format"`
}

// LoadConfig builds a Config from defaults, the JSON file named by
// -c/-config in args, and finally the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: token ttl must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.Addr != nil {
		config.Addr = *c.Addr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.LogFormat != nil {
		config.LogFormat = logging.Format(*c.LogFormat)
	}
	return nil
}

// parseFlags reads:
//
//	-addr string        listen address
//	-secret string      JWT HMAC secret
//	-token-ttl duration token lifetime, e.g. 30m
//	-l string           log format
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-addr", "-secret", "-token-ttl", "-l"})

	fs := flag.NewFlagSet("fakeapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Addr, "addr", config.Addr, "listen address")
	fs.StringVar(&config.SecretKey, "secret", config.SecretKey, "JWT secret key")
	fs.DurationVar(&config.TokenTTL, "token-ttl", config.TokenTTL, "token lifetime")
	format := fs.String("l", string(config.LogFormat), "log format (zerolog|slog)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	config.LogFormat = logging.Format(*format)
	return nil
}
