package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/flagx"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Pointer fields tell
// an absent key from a zero value.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DBPath         *string         `json:"db_path"`
	CacheDir       *string         `json:"cache_dir"`
	LogFormat      *string         `json:"log_format"`
	Verbose        *bool           `json:"verbose"`
}

// parseJson overlays config with the file named by -c/-config in args.
// No flag means nothing to load.
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

	if c.BaseURL != nil {
		config.BaseURL = *c.BaseURL
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.DBPath != nil {
		config.DBPath = *c.DBPath
	}
	if c.CacheDir != nil {
		config.CacheDir = *c.CacheDir
	}
	if c.LogFormat != nil {
		config.LogFormat = logging.Format(*c.LogFormat)
	}
	if c.Verbose != nil {
		config.Verbose = *c.Verbose
	}
	return nil
}
