// Package config holds the download settings and the file/env loader
// used to populate them.
package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:25.0) Gecko/20100101 Firefox/25.0"
	// DefaultAccept asks the hosting API for its v3 JSON representation.
	DefaultAccept = "application/vnd.github.v3+json"

	bytesPerMB = 1e6
)

// Settings are the mutable download settings a session re-applies
// whenever they change. In config files and the environment the timeout
// is a number of seconds or a duration string such as "1m30s"; the two
// limits are in megabytes.
type Settings struct {
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	NormalRequestLimit float64       `mapstructure:"normal_request_limit" validate:"gt=0"`
	ModRequestLimit    float64       `mapstructure:"mod_request_limit" validate:"gtefield=NormalRequestLimit"`
	ZipTempDir         string        `mapstructure:"zip_temp_dir" validate:"required"`
}

// NormalLimit is the normal response cap in bytes.
func (s Settings) NormalLimit() int64 {
	return int64(s.NormalRequestLimit * bytesPerMB)
}

// ModLimit is the mod update response cap in bytes.
func (s Settings) ModLimit() int64 {
	return int64(s.ModRequestLimit * bytesPerMB)
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RequestTimeout:     30 * time.Second,
		NormalRequestLimit: 5,
		ModRequestLimit:    50,
		ZipTempDir:         filepath.Join(os.TempDir(), "modhelper", "zip-temp"),
	}
}

// ClientConfig holds the fixed identity of the HTTP session.
type ClientConfig struct {
	UserAgent   string `mapstructure:"user_agent" validate:"required"`
	Accept      string `mapstructure:"accept" validate:"required"`
	ThrottleRPS int    `mapstructure:"throttle_rps" validate:"gte=0"`
	Burst       int    `mapstructure:"throttle_burst" validate:"required_with=ThrottleRPS,gte=0"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Config is the full configuration file.
type Config struct {
	Download Settings      `mapstructure:"download"`
	Client   ClientConfig  `mapstructure:"client"`
	Logging  LoggingConfig `mapstructure:"logging"`
}
