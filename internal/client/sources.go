package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DataSource is one crawler configuration.
type DataSource struct {
	ID        string         `json:"id"`
	SiteName  string         `json:"site_name"`
	SiteURL   string         `json:"site_url"`
	Config    map[string]any `json:"config"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateDataSourceRequest creates a new crawler configuration.
type CreateDataSourceRequest struct {
	SiteName string         `json:"site_name"`
	SiteURL  string         `json:"site_url"`
	Config   map[string]any `json:"config"`
	IsActive bool           `json:"is_active"`
}

// UpdateDataSourceRequest carries a partial update; nil fields are left
// untouched server-side.
type UpdateDataSourceRequest struct {
	SiteName *string        `json:"site_name,omitempty"`
	SiteURL  *string        `json:"site_url,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
	IsActive *bool          `json:"is_active,omitempty"`
}

// SourceTestResult reports a connectivity test against a data source.
type SourceTestResult struct {
	SiteName       string `json:"site_name"`
	SiteURL        string `json:"site_url"`
	IsAvailable    bool   `json:"is_available"`
	StatusCode     int    `json:"status_code,omitempty"`
	ResponseTimeMS int    `json:"response_time_ms,omitempty"`
	FinalURL       string `json:"final_url,omitempty"`
	Error          string `json:"error,omitempty"`
	TestedAt       string `json:"tested_at"`
}

// ListDataSources returns all crawler configurations.
func (c *Client) ListDataSources(ctx context.Context) ([]DataSource, error) {
	sources, err := getJSON[[]DataSource](ctx, c, "/admin/data-sources/", nil)
	if err != nil {
		return nil, err
	}
	return *sources, nil
}

// GetDataSource returns the configuration for one site.
func (c *Client) GetDataSource(ctx context.Context, siteName string) (*DataSource, error) {
	path := fmt.Sprintf("/admin/data-sources/%s", url.PathEscape(siteName))
	return getJSON[DataSource](ctx, c, path, nil)
}

// CreateDataSource registers a new crawler configuration.
func (c *Client) CreateDataSource(ctx context.Context, req CreateDataSourceRequest) (*DataSource, error) {
	return postJSON[DataSource](ctx, c, "/admin/data-sources/", req)
}

// UpdateDataSource applies a partial update to a site's configuration.
func (c *Client) UpdateDataSource(ctx context.Context, siteName string, req UpdateDataSourceRequest) (*DataSource, error) {
	path := fmt.Sprintf("/admin/data-sources/%s", url.PathEscape(siteName))
	body, err := c.doRequest(ctx, http.MethodPut, path, nil, req, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[DataSource](body)
}

// DeleteDataSource removes a site's configuration.
func (c *Client) DeleteDataSource(ctx context.Context, siteName string) error {
	path := fmt.Sprintf("/admin/data-sources/%s", url.PathEscape(siteName))
	_, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// TestDataSource runs the backend's connectivity test against a site.
func (c *Client) TestDataSource(ctx context.Context, siteName string) (*SourceTestResult, error) {
	path := fmt.Sprintf("/admin/data-sources/%s/test", url.PathEscape(siteName))
	return getJSON[SourceTestResult](ctx, c, path, nil)
}
