package progress

import "time"

// CrawlStep is one stage of a crawl job as reported by the backend. Steps are
// server-owned; the client only ever reads snapshots.
type CrawlStep struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Status             StepStatus     `json:"status"`
	StartedAt          *time.Time     `json:"started_at,omitempty"`
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`
	ProgressPercentage int            `json:"progress_percentage"`
	Message            string         `json:"message,omitempty"`
	Error              string         `json:"error,omitempty"`
	Details            map[string]any `json:"details,omitempty"`
}

// CrawlJobProgress is a point-in-time snapshot of one crawl execution.
type CrawlJobProgress struct {
	JobID           string      `json:"job_id"`
	SiteName        string      `json:"site_name"`
	Status          StepStatus  `json:"status"`
	Steps           []CrawlStep `json:"steps"`
	StartedAt       time.Time   `json:"started_at"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	TotalJobsFound  int         `json:"total_jobs_found"`
	TotalJobsAdded  int         `json:"total_jobs_added"`
	TotalDuplicates int         `json:"total_duplicates"`
	Errors          []string    `json:"errors,omitempty"`
	Summary         string      `json:"summary,omitempty"`
}

// Active reports whether the job is still doing work. A terminal job never
// becomes active again; pollers stop on the first inactive snapshot.
func (p *CrawlJobProgress) Active() bool {
	return p.Status == StatusPending || p.Status == StatusRunning
}

// SiteStatus summarizes current crawl activity for one data source.
type SiteStatus struct {
	SiteName           string             `json:"site_name"`
	ActiveJobsCount    int                `json:"active_jobs_count"`
	HasRunningJob      bool               `json:"has_running_job"`
	ActiveJobs         []CrawlJobProgress `json:"active_jobs,omitempty"`
	LastCompleted      *CrawlJobProgress  `json:"last_completed,omitempty"`
	RecentHistoryCount int                `json:"recent_history_count"`
}
