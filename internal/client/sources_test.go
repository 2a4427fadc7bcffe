package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietjobs/jobradar-cli/internal/client"
)

func TestListDataSources(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/data-sources/", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": "1", "site_name": "topcv", "site_url": "https://www.topcv.vn", "is_active": true},
			{"id": "2", "site_name": "itviec", "site_url": "https://itviec.com", "is_active": false}
		]`))
	})

	c := newTestClient(t, handler, client.Options{})

	sources, err := c.ListDataSources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "topcv", sources[0].SiteName)
	assert.False(t, sources[1].IsActive)
}

func TestUpdateDataSource_SendsOnlyProvidedFields(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"id": "1", "site_name": "topcv", "is_active": false}`))
	})

	c := newTestClient(t, handler, client.Options{})

	active := false
	updated, err := c.UpdateDataSource(context.Background(), "topcv", client.UpdateDataSourceRequest{
		IsActive: &active,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	assert.Contains(t, gotBody, "is_active")
	assert.NotContains(t, gotBody, "site_url", "omitted fields must not be sent")
	assert.NotContains(t, gotBody, "site_name")
}

func TestDeleteDataSource_NotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Configuration for site 'nope' not found"}`))
	})

	c := newTestClient(t, handler, client.Options{})

	err := c.DeleteDataSource(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestTestDataSource_ReportsAvailability(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/data-sources/topcv/test", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"site_name": "topcv",
			"site_url": "https://www.topcv.vn",
			"is_available": true,
			"status_code": 200,
			"response_time_ms": 340
		}`))
	})

	c := newTestClient(t, handler, client.Options{})

	result, err := c.TestDataSource(context.Background(), "topcv")
	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
	assert.Equal(t, 340, result.ResponseTimeMS)
}

func TestSearchJobs_SendsRequestAndDecodesPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		var req client.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "golang backend", req.Query)
		assert.Equal(t, []string{"TopCV"}, req.Sources)
		_, _ = w.Write([]byte(`{
			"jobs": [{"id": "j1", "title": "Backend Engineer", "company_name": "Acme"}],
			"total": 1, "limit": 10, "offset": 0, "query": "golang backend"
		}`))
	})

	c := newTestClient(t, handler, client.Options{})

	resp, err := c.SearchJobs(context.Background(), client.SearchRequest{
		Query:   "golang backend",
		Sources: []string{"TopCV"},
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	assert.Equal(t, 1, resp.Total)
}
