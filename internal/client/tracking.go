package client

import (
	"context"
	"net/http"

	"github.com/vietjobs/jobradar-cli/internal/logger"
)

const (
	headerSessionID         = "X-Session-ID"
	headerDeviceFingerprint = "X-Device-Fingerprint"
)

// Interaction is one tracked user event.
type Interaction struct {
	JobID    string         `json:"job_id,omitempty"`
	Action   string         `json:"action"` // "view", "click" or "search"
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TrackInteraction reports a user interaction, attaching the device identity
// headers. Call sites treat this as fire-and-forget; a failure is logged and
// returned but never blocks the main flow.
func (c *Client) TrackInteraction(ctx context.Context, interaction Interaction) error {
	headers := http.Header{}
	if c.identity != nil {
		identity, err := c.identity.Identity()
		if err != nil {
			c.log.Warn("device identity unavailable, sending untracked", logger.Error(err))
		} else {
			headers.Set(headerSessionID, identity.SessionID)
			headers.Set(headerDeviceFingerprint, identity.DeviceID)
		}
	}

	_, err := c.doRequest(ctx, http.MethodPost, "/analytics/interactions", nil, interaction, headers)
	if err != nil {
		c.log.Debug("interaction tracking failed",
			logger.String("action", interaction.Action),
			logger.Error(err))
	}
	return err
}
