package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the storefront REST API.
//   - DataDir: directory holding the local session database.
//   - LogLevel: debug, info, warn or error.
//   - ShutdownTimeout: grace period for closing the local store on exit.
type Config struct {
	ServerEndpointAddr string
	DataDir            string
	LogLevel           string
	ShutdownTimeout    time.Duration
}

// SessionDBName is the SQLite file created inside DataDir.
const SessionDBName = "session.db"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:3001"
	c.DataDir = "data"
	c.LogLevel = "info"
	c.ShutdownTimeout = 2 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
