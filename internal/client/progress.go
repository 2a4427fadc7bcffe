package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vietjobs/jobradar-cli/internal/progress"
)

// Progress snapshots are read-only on the client side; the only caching is
// whatever the caller retains between polls.

// FetchJobProgress returns the current snapshot for one crawl job.
func (c *Client) FetchJobProgress(ctx context.Context, jobID string) (*progress.CrawlJobProgress, error) {
	path := fmt.Sprintf("/admin/data-sources/sync/jobs/%s", url.PathEscape(jobID))
	return getJSON[progress.CrawlJobProgress](ctx, c, path, nil)
}

// FetchSiteStatus summarizes current crawl activity for a site.
func (c *Client) FetchSiteStatus(ctx context.Context, siteName string) (*progress.SiteStatus, error) {
	path := fmt.Sprintf("/admin/data-sources/%s/status", url.PathEscape(siteName))
	return getJSON[progress.SiteStatus](ctx, c, path, nil)
}

// FetchSiteHistory returns up to limit past jobs for a site, most recent
// first. The server orders; the client truncates defensively in case an older
// backend ignores the limit parameter.
func (c *Client) FetchSiteHistory(ctx context.Context, siteName string, limit int) ([]progress.CrawlJobProgress, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	path := fmt.Sprintf("/admin/data-sources/%s/history", url.PathEscape(siteName))
	history, err := getJSON[[]progress.CrawlJobProgress](ctx, c, path, query)
	if err != nil {
		return nil, err
	}
	jobs := *history
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// CrawlTriggerResponse is the backend's answer to a crawl trigger: the job id
// to poll plus a human-readable acknowledgement.
type CrawlTriggerResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// TriggerCrawl starts a crawl for the given site and returns the job id to
// watch.
func (c *Client) TriggerCrawl(ctx context.Context, siteName string) (*CrawlTriggerResponse, error) {
	path := fmt.Sprintf("/admin/data-sources/%s/crawl", url.PathEscape(siteName))
	return postJSON[CrawlTriggerResponse](ctx, c, path, nil)
}
