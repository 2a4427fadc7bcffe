// Package progress defines the crawl-job progress model served by the
// backend's sync endpoints, plus pure derivations over a job's step list.
package progress

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StepStatus is the canonical status enumeration shared by steps and jobs.
// Historical API payloads mixed lowercase and uppercase variants of the same
// values; decoding normalizes to lowercase so both parse.
type StepStatus string

const (
	StatusPending   StepStatus = "pending"
	StatusRunning   StepStatus = "running"
	StatusCompleted StepStatus = "completed"
	StatusFailed    StepStatus = "failed"
	StatusSkipped   StepStatus = "skipped"
)

// Terminal reports whether the status is a final one. A step's completed_at
// is set iff its status is terminal.
func (s StepStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the known statuses.
func (s StepStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// UnmarshalJSON normalizes casing on decode.
func (s *StepStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode step status: %w", err)
	}
	normalized := StepStatus(strings.ToLower(raw))
	if !normalized.Valid() {
		return fmt.Errorf("unknown step status %q", raw)
	}
	*s = normalized
	return nil
}
