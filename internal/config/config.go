// Package config defines the console configuration, loaded through viper
// from config file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL        = "http://localhost:8000"
	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryBackoff   = 500 * time.Millisecond
	defaultWatchInterval  = 3 * time.Second
	defaultBrowseInterval = 15 * time.Second
	defaultHistoryLimit   = 10
)

// Config is the full console configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Poll   PollConfig   `mapstructure:"poll"`
	Logger LoggerConfig `mapstructure:"logger"`
	State  StateConfig  `mapstructure:"state"`
}

// APIConfig points at the backend.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// PollConfig holds the polling cadence. Both intervals are fixed policy
// constants, never computed: the single-job watch view polls fast, site
// browse views poll slow.
type PollConfig struct {
	WatchInterval  time.Duration `mapstructure:"watch_interval"`
	BrowseInterval time.Duration `mapstructure:"browse_interval"`
	HistoryLimit   int           `mapstructure:"history_limit"`
}

// LoggerConfig selects level and encoding.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StateConfig locates persisted client state (session token, device id).
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// SessionFile is the fixed location of the persisted admin session.
func (s StateConfig) SessionFile() string {
	return filepath.Join(s.Dir, "session.json")
}

// DeviceFile is the fixed location of the persisted device identity.
func (s StateConfig) DeviceFile() string {
	return filepath.Join(s.Dir, "device.json")
}

// Load unmarshals the given viper instance into a Config, fills defaults and
// validates.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := setDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the fields no default can repair.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.Poll.WatchInterval <= 0 {
		return errors.New("poll.watch_interval must be positive")
	}
	if c.Poll.BrowseInterval <= 0 {
		return errors.New("poll.browse_interval must be positive")
	}
	if c.Poll.HistoryLimit <= 0 {
		return errors.New("poll.history_limit must be positive")
	}
	return nil
}

func setDefaults(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultHTTPTimeout
	}
	if cfg.API.RetryBackoff == 0 {
		cfg.API.RetryBackoff = defaultRetryBackoff
	}
	if cfg.Poll.WatchInterval == 0 {
		cfg.Poll.WatchInterval = defaultWatchInterval
	}
	if cfg.Poll.BrowseInterval == 0 {
		cfg.Poll.BrowseInterval = defaultBrowseInterval
	}
	if cfg.Poll.HistoryLimit == 0 {
		cfg.Poll.HistoryLimit = defaultHistoryLimit
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = "console"
	}
	if cfg.State.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.State.Dir = filepath.Join(base, "jobradar")
	}
	return nil
}
