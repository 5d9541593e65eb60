package config

import (
	"encoding/json"
	"os"

	"github.com/rbmoura/sysportal/internal/flagx"
	"github.com/rbmoura/sysportal/internal/timex"
)

// JsonConfig is the DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so the timeout can be written either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DataDir        string         `json:"data_dir"`
}

// parseJson overlays cfg with values from the JSON file given via -c or
// -config. Without such a flag nothing is loaded. Read or unmarshal errors
// panic: a config file that was explicitly pointed at must be usable.
// Zero-valued fields in the file leave the current config untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
}
