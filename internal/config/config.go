// Package config loads the client configuration. The backend owns all
// entity data, so the only settings are how to reach it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig describes the REST backend.
type ServerConfig struct {
	// BaseURL is the root URL of the backend (e.g. http://panel.corp:8000).
	BaseURL string `mapstructure:"base_url"`

	// CSRFCookie is the cookie name carrying the CSRF token.
	CSRFCookie string `mapstructure:"csrf_cookie"`

	// ReportURL is the externally supplied report-generation endpoint.
	// Empty disables the report action.
	ReportURL string `mapstructure:"report_url"`

	// TimeoutSec bounds regular API calls. Report generation has its
	// own, longer abort.
	TimeoutSec int `mapstructure:"timeout_sec"`
}

// Config is the top-level configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
}

// Timeout returns the API call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSec) * time.Second
}

// DefaultPath returns ~/.config/migrapanel/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "migrapanel", "config.yaml")
}

// Load reads the YAML configuration at path. A missing file yields the
// defaults; a missing base URL is an error either way.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.base_url", "")
	v.SetDefault("server.csrf_cookie", "csrftoken")
	v.SetDefault("server.report_url", "")
	v.SetDefault("server.timeout_sec", 30)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Server.BaseURL == "" {
		return nil, fmt.Errorf("config %s: server.base_url is required", path)
	}
	return &cfg, nil
}
