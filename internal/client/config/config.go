// Package config holds runtime settings for the portal CLI and loads them
// in layers: built-in defaults, then an optional JSON file, then
// command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the portal backend REST API.
//   - RequestTimeout: per-request HTTP timeout; bounds how long a login or
//     catalog call may hang.
//   - DataDir: directory for the credential database and key file; empty
//     means the per-user default location.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DataDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.DataDir = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
