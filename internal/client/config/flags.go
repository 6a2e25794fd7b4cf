package config

import (
	"flag"
	"io"
	"time"

	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/flagx"
	"github.com/tranduymanh111/Cuoi-Kiiiii/internal/logging"
)

// parseFlags populates Config fields from args. Only the flags below are
// looked at; everything else (e.g. -c) is filtered out first with
// flagx.FilterArgs. The timeout is given in whole seconds.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-d", "-k", "-l", "-v"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.BaseURL, "a", config.BaseURL, "base URL of the API")
	timeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&config.DBPath, "d", config.DBPath, "credential database path")
	fs.StringVar(&config.CacheDir, "k", config.CacheDir, "preview cache directory")
	format := fs.String("l", string(config.LogFormat), "log format (zerolog|slog)")
	fs.BoolVar(&config.Verbose, "v", config.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.RequestTimeout = time.Duration(*timeout) * time.Second
	config.LogFormat = logging.Format(*format)
	return nil
}
