package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Job is one job posting as returned by search and browse endpoints.
type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CompanyName     string    `json:"company_name"`
	PostedDate      time.Time `json:"posted_date"`
	Source          string    `json:"source"`
	OriginalURL     string    `json:"original_url"`
	Location        string    `json:"location,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	JobType         string    `json:"job_type,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
}

// SearchRequest is a semantic search query. Sources filters by platform name
// (TopCV, ITViec, ...); empty means all.
type SearchRequest struct {
	Query   string   `json:"query"`
	Sources []string `json:"sources,omitempty"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}

// SearchResponse is a page of ranked results.
type SearchResponse struct {
	Jobs   []Job  `json:"jobs"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Query  string `json:"query"`
}

// SearchJobs runs a semantic search. Ranking is entirely server-side.
func (c *Client) SearchJobs(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	return postJSON[SearchResponse](ctx, c, "/search", req)
}

// SuggestionsResponse holds query completions for a prefix.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SearchSuggestions returns up to limit query completions.
func (c *Client) SearchSuggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := url.Values{}
	query.Set("q", prefix)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	resp, err := getJSON[SuggestionsResponse](ctx, c, "/search/suggestions", query)
	if err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}
