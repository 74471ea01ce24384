// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c or -config.
//     Files ending in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API
//	-d string   data directory for the local session store
//	-l string   log level (debug, info, warn, error)
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "http://localhost:3001",
//	  "data_dir": "data",
//	  "log_level": "info",
//	  "shutdown_timeout": "2s"
//	}
//
// Fields missing from the file keep their previous values.
package config
