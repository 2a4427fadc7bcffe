package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the issued bearer token and its lifetime in seconds.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login exchanges credentials for a bearer token. The caller persists it via
// the session store; the client itself stays stateless.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	return postJSON[LoginResponse](ctx, c, "/admin/login", LoginRequest{
		Username: username,
		Password: password,
	})
}

// DashboardStats is the admin landing summary.
type DashboardStats struct {
	TotalJobs       int            `json:"total_jobs"`
	JobsBySource    map[string]int `json:"jobs_by_source"`
	RecentJobs      int            `json:"recent_jobs"`
	PendingSyncJobs int            `json:"pending_sync_jobs"`
	LastSyncTime    *time.Time     `json:"last_sync_time,omitempty"`
}

// FetchDashboardStats returns the admin dashboard summary.
func (c *Client) FetchDashboardStats(ctx context.Context) (*DashboardStats, error) {
	return getJSON[DashboardStats](ctx, c, "/admin/dashboard/stats", nil)
}

// CrawlLog is one logged crawler request.
type CrawlLog struct {
	ID             string     `json:"id"`
	SiteName       string     `json:"site_name"`
	SiteURL        string     `json:"site_url"`
	RequestURL     string     `json:"request_url"`
	CrawlerType    string     `json:"crawler_type"`
	ResponseStatus int        `json:"response_status"`
	ResponseTimeMS int        `json:"response_time_ms"`
	DurationMS     int        `json:"duration_ms"`
	JobsFound      int        `json:"jobs_found"`
	JobsProcessed  int        `json:"jobs_processed"`
	JobsStored     int        `json:"jobs_stored"`
	JobsDuplicated int        `json:"jobs_duplicated"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// CrawlLogPage is a filtered page of crawl logs.
type CrawlLogPage struct {
	Logs   []CrawlLog `json:"logs"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// CrawlLogFilter narrows a crawl-log listing. Zero values mean "no filter".
type CrawlLogFilter struct {
	SiteName string
	Status   string // "success", "error" or "all"
	Limit    int
	Offset   int
}

// ListCrawlLogs returns crawl logs matching the filter, newest first.
func (c *Client) ListCrawlLogs(ctx context.Context, filter CrawlLogFilter) (*CrawlLogPage, error) {
	query := url.Values{}
	if filter.SiteName != "" {
		query.Set("site_name", filter.SiteName)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	return getJSON[CrawlLogPage](ctx, c, "/admin/crawl-logs", query)
}
