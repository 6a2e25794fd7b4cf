// Package config loads runtime configuration for the file-vault terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API, including the /api path
//	-t int      request timeout (seconds)
//	-d string   path of the local credential database
//	-k string   directory for cached previews
//	-l string   log format: zerolog or slog
//	-v          verbose (debug) logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "10s" or integer nanoseconds. Absent keys keep their defaults:
//
//	{
//	  "base_url": "http://127.0.0.1:8080/api",
//	  "request_timeout": "10s",
//	  "db_path": "credentials.db",
//	  "cache_dir": "cache",
//	  "log_format": "zerolog",
//	  "verbose": false
//	}
package config
