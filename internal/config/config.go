// Package config loads events-refresh settings from defaults, an optional YAML file,
// EVENTS_REFRESH_* environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/events-refresh/internal/refresh"
)

// EnvPrefix is prepended to every environment variable key
const EnvPrefix = "EVENTS_REFRESH"

// Config holds the refresh settings
type Config struct {
	SourceURL        string        `mapstructure:"source_url"`
	DestPath         string        `mapstructure:"dest_path"`
	Timeout          time.Duration `mapstructure:"timeout"`
	RejectNonSuccess bool          `mapstructure:"reject_non_success"`
	Validate         bool          `mapstructure:"validate"`
	Atomic           bool          `mapstructure:"atomic"`
	Log              LogConfig     `mapstructure:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"url":                "source_url",
	"dest":               "dest_path",
	"timeout":            "timeout",
	"reject-non-success": "reject_non_success",
	"validate":           "validate",
	"atomic":             "atomic",
	"log-level":          "log.level",
}

// Load reads configuration. cfgFile may be empty; a named file that does not
// exist is ignored. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source_url", refresh.DefaultSourceURL)
	v.SetDefault("dest_path", refresh.DefaultDestPath)
	v.SetDefault("timeout", "0s")
	v.SetDefault("reject_non_success", false)
	v.SetDefault("validate", false)
	v.SetDefault("atomic", false)
	v.SetDefault("log.level", "info")
}

// RefreshOptions converts the config into refresh options
func (c *Config) RefreshOptions() refresh.Options {
	return refresh.Options{
		SourceURL:        c.SourceURL,
		DestPath:         c.DestPath,
		Timeout:          c.Timeout,
		RejectNonSuccess: c.RejectNonSuccess,
		Validate:         c.Validate,
		Atomic:           c.Atomic,
	}
}
