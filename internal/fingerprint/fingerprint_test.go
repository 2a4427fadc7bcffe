package fingerprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietjobs/jobradar-cli/internal/fingerprint"
)

func TestIdentity_GeneratesAndPersistsDeviceID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")

	first, err := fingerprint.New(path).Identity()
	require.NoError(t, err)
	require.NoError(t, uuid.Validate(first.DeviceID))
	require.NoError(t, uuid.Validate(first.SessionID))

	second, err := fingerprint.New(path).Identity()
	require.NoError(t, err)

	assert.Equal(t, first.DeviceID, second.DeviceID, "device id must be stable across processes")
	assert.NotEqual(t, first.SessionID, second.SessionID, "session id is per process")
}

func TestIdentity_IsStableWithinProcess(t *testing.T) {
	svc := fingerprint.New(filepath.Join(t.TempDir(), "device.json"))

	a, err := svc.Identity()
	require.NoError(t, err)
	b, err := svc.Identity()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestIdentity_RegeneratesOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	id, err := fingerprint.New(path).Identity()
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(id.DeviceID))
}
