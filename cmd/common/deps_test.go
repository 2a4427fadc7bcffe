package common

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietjobs/jobradar-cli/internal/config"
	"github.com/vietjobs/jobradar-cli/internal/logger"
)

func TestCommandDepsValidate(t *testing.T) {
	tests := []struct {
		name    string
		deps    CommandDeps
		wantErr error
	}{
		{
			name:    "missing logger",
			deps:    CommandDeps{Config: &config.Config{}},
			wantErr: ErrLoggerRequired,
		},
		{
			name:    "missing config",
			deps:    CommandDeps{Logger: logger.NewNopLogger()},
			wantErr: ErrConfigRequired,
		},
		{
			name: "missing client",
			deps: CommandDeps{
				Config: &config.Config{},
				Logger: logger.NewNopLogger(),
			},
			wantErr: ErrClientRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.deps.Validate(), tt.wantErr)
		})
	}
}

func TestNewCommandDeps_BuildsFromViperDefaults(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "state")
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("state.dir", stateDir)

	deps, err := NewCommandDeps()
	require.NoError(t, err)

	assert.NotNil(t, deps.Client)
	assert.NotNil(t, deps.Session)
	assert.NotNil(t, deps.Device)
	assert.Equal(t, "http://localhost:8000", deps.Config.API.BaseURL)
	assert.DirExists(t, stateDir)
}
