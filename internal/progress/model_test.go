package progress_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietjobs/jobradar-cli/internal/progress"
)

func TestStepStatus_UnmarshalJSON_NormalizesCasing(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    progress.StepStatus
		wantErr bool
	}{
		{name: "lowercase", raw: `"running"`, want: progress.StatusRunning},
		{name: "uppercase legacy variant", raw: `"RUNNING"`, want: progress.StatusRunning},
		{name: "mixed case", raw: `"Completed"`, want: progress.StatusCompleted},
		{name: "unknown value rejected", raw: `"paused"`, wantErr: true},
		{name: "non-string rejected", raw: `7`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got progress.StepStatus
			err := json.Unmarshal([]byte(tt.raw), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStepStatus_Terminal(t *testing.T) {
	assert.False(t, progress.StatusPending.Terminal())
	assert.False(t, progress.StatusRunning.Terminal())
	assert.True(t, progress.StatusCompleted.Terminal())
	assert.True(t, progress.StatusFailed.Terminal())
	assert.True(t, progress.StatusSkipped.Terminal())
}

func TestCrawlJobProgress_Active(t *testing.T) {
	job := progress.CrawlJobProgress{Status: progress.StatusRunning}
	assert.True(t, job.Active())

	job.Status = progress.StatusPending
	assert.True(t, job.Active())

	job.Status = progress.StatusCompleted
	assert.False(t, job.Active())

	job.Status = progress.StatusFailed
	assert.False(t, job.Active())
}

func TestCrawlJobProgress_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"job_id": "9b2e7c1a",
		"site_name": "topcv",
		"status": "running",
		"started_at": "2025-01-10T08:30:00Z",
		"total_jobs_found": 42,
		"total_jobs_added": 30,
		"total_duplicates": 12,
		"errors": ["page 3 timed out"],
		"steps": [
			{"id": "1", "name": "Initialize", "status": "completed", "progress_percentage": 100, "completed_at": "2025-01-10T08:30:05Z"},
			{"id": "2", "name": "Crawl Jobs", "status": "running", "progress_percentage": 40, "details": {"url_count": 12}}
		]
	}`

	var job progress.CrawlJobProgress
	require.NoError(t, json.Unmarshal([]byte(payload), &job))

	assert.Equal(t, "9b2e7c1a", job.JobID)
	assert.Equal(t, "topcv", job.SiteName)
	assert.Equal(t, progress.StatusRunning, job.Status)
	assert.Equal(t, 42, job.TotalJobsFound)
	require.Len(t, job.Steps, 2)
	assert.Equal(t, progress.StatusCompleted, job.Steps[0].Status)
	assert.NotNil(t, job.Steps[0].CompletedAt)
	assert.Nil(t, job.Steps[1].CompletedAt)
	assert.Equal(t, 40, job.Steps[1].ProgressPercentage)
	assert.Equal(t, float64(12), job.Steps[1].Details["url_count"])
}
