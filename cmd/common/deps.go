// Package common provides shared dependency wiring for command
// implementations. Use this instead of context.Value for type-safe
// dependency injection.
package common

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/viper"

	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/config"
	"github.com/vietjobs/jobradar-cli/internal/fingerprint"
	"github.com/vietjobs/jobradar-cli/internal/logger"
	"github.com/vietjobs/jobradar-cli/internal/session"
)

// Error constants for dependency validation.
var (
	ErrLoggerRequired = errors.New("logger is required")
	ErrConfigRequired = errors.New("config is required")
	ErrClientRequired = errors.New("api client is required")
)

// CommandDeps holds the dependencies every command shares: the loaded
// configuration, the logger, the API client and the persisted client state
// backing it.
type CommandDeps struct {
	Config  *config.Config
	Logger  logger.Logger
	Client  *client.Client
	Session *session.Store
	Device  *fingerprint.Service
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	if d.Client == nil {
		return ErrClientRequired
	}
	return nil
}

// NewCommandDeps builds the dependency set from the global viper instance.
// The state directory is created on first use so a fresh machine works
// without setup.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	if mkErr := os.MkdirAll(cfg.State.Dir, 0o700); mkErr != nil {
		return nil, fmt.Errorf("create state dir %s: %w", cfg.State.Dir, mkErr)
	}

	store, err := session.Open(cfg.State.SessionFile())
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	device := fingerprint.New(cfg.State.DeviceFile())

	apiClient := client.New(cfg.API.BaseURL, client.Options{
		HTTPClient:   &http.Client{Timeout: cfg.API.Timeout},
		Tokens:       store,
		Identity:     device,
		Logger:       log,
		RetryBackoff: cfg.API.RetryBackoff,
	})

	deps := &CommandDeps{
		Config:  cfg,
		Logger:  log,
		Client:  apiClient,
		Session: store,
		Device:  device,
	}
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return deps, nil
}
