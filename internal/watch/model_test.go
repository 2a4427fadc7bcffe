package watch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietjobs/jobradar-cli/internal/progress"
	"github.com/vietjobs/jobradar-cli/internal/watch"
)

func runningJob() *progress.CrawlJobProgress {
	return &progress.CrawlJobProgress{
		JobID:    "job-1",
		SiteName: "topcv",
		Status:   progress.StatusRunning,
		Steps: []progress.CrawlStep{
			{ID: "1", Status: progress.StatusCompleted},
			{ID: "2", Status: progress.StatusCompleted},
			{ID: "3", Status: progress.StatusRunning},
			{ID: "4", Status: progress.StatusPending},
		},
	}
}

func TestModel_LoadingUntilFirstSnapshot(t *testing.T) {
	m := watch.NewModel()

	state := m.State()
	assert.Equal(t, watch.PhaseLoading, state.Phase)
	assert.Nil(t, state.Snapshot)
	assert.Equal(t, -1, state.CurrentStepIndex)

	m.BeginFetch()
	assert.Equal(t, watch.PhaseLoading, m.State().Phase, "first fetch is loading, not refreshing")
}

func TestModel_SnapshotDerivesTimeline(t *testing.T) {
	m := watch.NewModel()
	m.ApplySnapshot(runningJob())

	state := m.State()
	assert.Equal(t, watch.PhaseReady, state.Phase)
	assert.Equal(t, 2, state.CurrentStepIndex)
	assert.Equal(t, 50, state.OverallPercent)
	assert.False(t, state.LastUpdated.IsZero())
}

func TestModel_RefreshingKeepsStaleSnapshot(t *testing.T) {
	m := watch.NewModel()
	m.ApplySnapshot(runningJob())

	m.BeginFetch()

	state := m.State()
	assert.Equal(t, watch.PhaseRefreshing, state.Phase)
	assert.NotNil(t, state.Snapshot, "stale data stays visible while refreshing")
}

func TestModel_ErrorKeepsLastKnownGoodData(t *testing.T) {
	m := watch.NewModel()
	m.ApplySnapshot(runningJob())

	m.ApplyError(errors.New("connection refused"))

	state := m.State()
	assert.Equal(t, watch.PhaseFailed, state.Phase)
	assert.Error(t, state.Err)
	assert.NotNil(t, state.Snapshot, "error banner renders next to stale data, not instead of it")
	assert.Equal(t, 2, state.CurrentStepIndex)
}

func TestModel_SnapshotAfterErrorClearsIt(t *testing.T) {
	m := watch.NewModel()
	m.ApplyError(errors.New("boom"))
	m.ApplySnapshot(runningJob())

	state := m.State()
	assert.Equal(t, watch.PhaseReady, state.Phase)
	assert.NoError(t, state.Err)
}

func TestModel_StepSelectionToggles(t *testing.T) {
	m := watch.NewModel()
	m.ApplySnapshot(runningJob())

	m.ToggleStep("3")
	state := m.State()
	assert.True(t, state.HasSelection)
	assert.Equal(t, "3", state.SelectedStepID)

	m.ToggleStep("3")
	assert.False(t, m.State().HasSelection)
}

func TestModel_SelectionIgnoredBeforeData(t *testing.T) {
	m := watch.NewModel()
	m.ToggleStep("1")
	assert.False(t, m.State().HasSelection)
}
