// Package watch holds the render model for a live crawl-job view: the last
// fetched snapshot, the fetch phase, and the viewer's step selection. It is
// UI-framework free; cmd/watch renders it to a terminal table.
package watch

import (
	"sync"
	"time"

	"github.com/vietjobs/jobradar-cli/internal/progress"
	"github.com/vietjobs/jobradar-cli/internal/selection"
)

// Phase is what the view should communicate about fetching. Loading,
// Refreshing and Failed are distinct: a failed refresh keeps showing the
// last-known-good snapshot next to the error.
type Phase string

const (
	// PhaseLoading: first fetch in flight, nothing to show yet.
	PhaseLoading Phase = "loading"
	// PhaseRefreshing: a later fetch is in flight, stale data on screen.
	PhaseRefreshing Phase = "refreshing"
	// PhaseReady: the displayed snapshot is the latest fetched.
	PhaseReady Phase = "ready"
	// PhaseFailed: the last fetch failed; Snapshot may still carry the
	// last good data.
	PhaseFailed Phase = "failed"
)

// Model accumulates poll outcomes for one open view.
type Model struct {
	mu          sync.Mutex
	phase       Phase
	snapshot    *progress.CrawlJobProgress
	err         error
	lastUpdated time.Time
	sel         *selection.State
}

// RenderState is an immutable view of the model for one render pass.
type RenderState struct {
	Phase            Phase
	Snapshot         *progress.CrawlJobProgress
	Err              error
	LastUpdated      time.Time
	CurrentStepIndex int
	OverallPercent   int
	SelectedStepID   string
	HasSelection     bool
}

// NewModel returns a model in the Loading phase.
func NewModel() *Model {
	return &Model{
		phase: PhaseLoading,
		sel:   selection.New(),
	}
}

// BeginFetch marks a fetch as in flight: Loading when no data has arrived
// yet, Refreshing otherwise.
func (m *Model) BeginFetch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		m.phase = PhaseLoading
	} else {
		m.phase = PhaseRefreshing
	}
}

// ApplySnapshot installs a fresh snapshot and clears any previous error.
func (m *Model) ApplySnapshot(snap *progress.CrawlJobProgress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
	m.err = nil
	m.phase = PhaseReady
	m.lastUpdated = time.Now()
}

// ApplyError records a fetch failure. The previous snapshot, if any, stays
// available for rendering alongside the error.
func (m *Model) ApplyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.phase = PhaseFailed
}

// ToggleStep toggles selection of a step in the displayed job.
func (m *Model) ToggleStep(stepID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snapshot == nil {
		return
	}
	m.sel.SelectStep(m.snapshot.JobID, stepID)
}

// State captures the current render state.
func (m *Model) State() RenderState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := RenderState{
		Phase:            m.phase,
		Snapshot:         m.snapshot,
		Err:              m.err,
		LastUpdated:      m.lastUpdated,
		CurrentStepIndex: -1,
	}
	if m.snapshot != nil {
		state.CurrentStepIndex = progress.CurrentStepIndex(m.snapshot.Steps)
		state.OverallPercent = progress.OverallProgressPercent(m.snapshot.Steps)
	}
	if id, ok := m.sel.SelectedStepID(); ok {
		state.SelectedStepID = id
		state.HasSelection = true
	}
	return state
}
