// Package selection tracks ephemeral UI focus for crawl-job views: which
// step is selected and which jobs are expanded. State is client-owned, reset
// on view close, and never synchronized to the backend.
package selection

// State is the selection for one open view. The zero value is a view with
// nothing selected and nothing expanded.
type State struct {
	// selectedStepID is empty when no step is selected.
	selectedStepID string
	// selectedJobID is the job owning the selected step. A selected step's
	// job must be expanded; collapsing it clears the selection.
	selectedJobID string
	expanded      map[string]struct{}
}

// New returns an empty selection state.
func New() *State {
	return &State{expanded: make(map[string]struct{})}
}

// SelectedStepID returns the selected step id and whether one is selected.
func (s *State) SelectedStepID() (string, bool) {
	return s.selectedStepID, s.selectedStepID != ""
}

// IsExpanded reports whether the given job's step detail is expanded.
func (s *State) IsExpanded(jobID string) bool {
	_, ok := s.expanded[jobID]
	return ok
}

// ExpandedCount returns the number of expanded jobs.
func (s *State) ExpandedCount() int {
	return len(s.expanded)
}

// SelectStep toggles selection of a step within jobID. Clicking the already
// selected step deselects it.
func (s *State) SelectStep(jobID, stepID string) {
	if s.selectedStepID == stepID && s.selectedJobID == jobID {
		s.clearSelection()
		return
	}
	s.selectedStepID = stepID
	s.selectedJobID = jobID
}

// ToggleExpanded expands or collapses a job's step detail. Collapsing the job
// that owns the current selection clears the selection in the same action.
func (s *State) ToggleExpanded(jobID string) {
	if s.IsExpanded(jobID) {
		delete(s.expanded, jobID)
		if s.selectedJobID == jobID {
			s.clearSelection()
		}
		return
	}
	s.expanded[jobID] = struct{}{}
}

// Reset drops all selection and expansion state, as on view unmount.
func (s *State) Reset() {
	s.clearSelection()
	s.expanded = make(map[string]struct{})
}

func (s *State) clearSelection() {
	s.selectedStepID = ""
	s.selectedJobID = ""
}
