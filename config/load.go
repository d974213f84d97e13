package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MODHTTP_DOWNLOAD_REQUEST_TIMEOUT.
const EnvPrefix = "MODHTTP"

// Load reads configuration from configPath, or from a "modhttp" config
// file in the working directory or user config dir when configPath is
// empty. A missing default file is not an error; defaults and
// environment overrides still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("modhttp")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "modhttp"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	hooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.DecodeHookFuncType(secondsToDuration),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hooks)); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultSettings()
	v.SetDefault("download.request_timeout", d.RequestTimeout)
	v.SetDefault("download.normal_request_limit", d.NormalRequestLimit)
	v.SetDefault("download.mod_request_limit", d.ModRequestLimit)
	v.SetDefault("download.zip_temp_dir", d.ZipTempDir)

	v.SetDefault("client.user_agent", DefaultUserAgent)
	v.SetDefault("client.accept", DefaultAccept)
	v.SetDefault("client.throttle_rps", 0)
	v.SetDefault("client.throttle_burst", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// secondsToDuration decodes durations given as a bare number of seconds
// (30, 2.5, "30") and falls back to time.ParseDuration for strings with
// a unit ("45s", "1m30s").
func secondsToDuration(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeFor[time.Duration]() {
		return data, nil
	}

	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case uint64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		raw := strings.TrimSpace(v)
		if secs, err := strconv.ParseFloat(raw, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}

		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing duration %q: %w", v, err)
		}
		return d, nil
	default:
		return data, nil
	}
}
