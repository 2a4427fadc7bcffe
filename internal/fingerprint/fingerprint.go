// Package fingerprint provides the device identity attached to
// interaction-tracking requests. The device id is generated once and
// persisted; the session id is fresh per process. Both ride custom headers
// so the backend can group interactions without accounts.
package fingerprint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Identity is what tracking requests attach.
type Identity struct {
	// DeviceID is stable across runs on the same machine.
	DeviceID string
	// SessionID is unique to this process.
	SessionID string
}

// Service lazily initializes and serves the device identity. Construct with
// New; the first Identity call does the work, later calls are cheap.
type Service struct {
	path string

	once      sync.Once
	identity  Identity
	initError error
}

type persisted struct {
	DeviceID string `json:"device_id"`
}

// New returns an uninitialized service reading and writing path.
func New(path string) *Service {
	return &Service{path: path}
}

// Identity returns the device identity, initializing it on first use.
func (s *Service) Identity() (Identity, error) {
	s.once.Do(func() {
		s.identity, s.initError = s.initialize()
	})
	return s.identity, s.initError
}

func (s *Service) initialize() (Identity, error) {
	deviceID, err := s.loadOrCreateDeviceID()
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		DeviceID:  deviceID,
		SessionID: uuid.NewString(),
	}, nil
}

func (s *Service) loadOrCreateDeviceID() (string, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var p persisted
		if jsonErr := json.Unmarshal(data, &p); jsonErr == nil && p.DeviceID != "" {
			return p.DeviceID, nil
		}
		// Unreadable contents: regenerate below.
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read device state: %w", err)
	}

	deviceID := uuid.NewString()
	out, err := json.Marshal(persisted{DeviceID: deviceID})
	if err != nil {
		return "", fmt.Errorf("encode device state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, out, 0o600); err != nil {
		return "", fmt.Errorf("write device state: %w", err)
	}
	return deviceID, nil
}
