package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietjobs/jobradar-cli/internal/client"
	"github.com/vietjobs/jobradar-cli/internal/fingerprint"
)

// fakeTokens is a TokenSource recording Clear calls.
type fakeTokens struct {
	token      string
	clearCount atomic.Int32
}

func (f *fakeTokens) CurrentToken() (string, bool) {
	return f.token, f.token != ""
}

func (f *fakeTokens) Clear() error {
	f.clearCount.Add(1)
	f.token = ""
	return nil
}

type fakeIdentity struct{}

func (fakeIdentity) Identity() (fingerprint.Identity, error) {
	return fingerprint.Identity{DeviceID: "device-1", SessionID: "session-1"}, nil
}

func newTestClient(t *testing.T, handler http.Handler, opts client.Options) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	if opts.RetryBackoff == 0 {
		opts.RetryBackoff = time.Millisecond
	}
	return client.New(server.URL, opts)
}

func TestFetchJobProgress_DecodesSnapshot(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/admin/data-sources/sync/jobs/job-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"job_id": "job-1",
			"site_name": "topcv",
			"status": "running",
			"started_at": "2025-01-10T08:30:00Z",
			"steps": [{"id": "1", "name": "Initialize", "status": "completed"}]
		}`))
	})

	c := newTestClient(t, handler, client.Options{})

	job, err := c.FetchJobProgress(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.JobID)
	assert.Equal(t, "topcv", job.SiteName)
	require.Len(t, job.Steps, 1)
}

func TestFetchJobProgress_UnknownJobIsNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "job not found"}`))
	})

	c := newTestClient(t, handler, client.Options{})

	_, err := c.FetchJobProgress(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.Contains(t, err.Error(), "job not found")
}

func TestDoRequest_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	tokens := &fakeTokens{token: "token-abc"}
	c := newTestClient(t, handler, client.Options{Tokens: tokens})

	_, err := c.FetchSiteStatus(context.Background(), "topcv")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
}

func TestDoRequest_401ClearsStoredToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid authentication credentials"}`))
	})

	tokens := &fakeTokens{token: "stale-token"}
	c := newTestClient(t, handler, client.Options{Tokens: tokens})

	_, err := c.FetchJobProgress(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.Equal(t, int32(1), tokens.clearCount.Load())
	_, ok := tokens.CurrentToken()
	assert.False(t, ok, "rejected token must be cleared")
}

func TestDoRequest_RetriesGetOnceOn5xx(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "upstream down"}`))
	})

	c := newTestClient(t, handler, client.Options{})

	_, err := c.FetchJobProgress(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, client.IsServerError(err))
	assert.Equal(t, int32(2), calls.Load(), "5xx GET gets exactly one retry")
}

func TestDoRequest_RetrySucceedsOnSecondAttempt(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"site_name": "topcv", "has_running_job": true}`))
	})

	c := newTestClient(t, handler, client.Options{})

	status, err := c.FetchSiteStatus(context.Background(), "topcv")
	require.NoError(t, err)
	assert.True(t, status.HasRunningJob)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoRequest_PostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := newTestClient(t, handler, client.Options{})

	_, err := c.TriggerCrawl(context.Background(), "topcv")
	require.Error(t, err)
	assert.True(t, client.IsServerError(err))
	assert.Equal(t, int32(1), calls.Load(), "non-idempotent requests must not retry")
}

func TestDoRequest_TransportFailureIsNetworkError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := client.New(server.URL, client.Options{RetryBackoff: time.Millisecond})

	_, err := c.FetchJobProgress(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, client.IsNetworkError(err))
}

func TestFetchSiteHistory_TruncatesToLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[
			{"job_id": "j3", "status": "completed"},
			{"job_id": "j2", "status": "completed"},
			{"job_id": "j1", "status": "failed"}
		]`))
	})

	c := newTestClient(t, handler, client.Options{})

	history, err := c.FetchSiteHistory(context.Background(), "topcv", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "j3", history[0].JobID)
}

func TestTrackInteraction_AttachesIdentityHeaders(t *testing.T) {
	var gotSession, gotDevice string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		gotDevice = r.Header.Get("X-Device-Fingerprint")
		_, _ = w.Write([]byte(`{}`))
	})

	c := newTestClient(t, handler, client.Options{Identity: fakeIdentity{}})

	err := c.TrackInteraction(context.Background(), client.Interaction{
		JobID:  "job-1",
		Action: "click",
	})
	require.NoError(t, err)
	assert.Equal(t, "session-1", gotSession)
	assert.Equal(t, "device-1", gotDevice)
}

func TestLogin_ReturnsIssuedToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"access_token": "tok", "token_type": "bearer", "expires_in": 28800}`))
	})

	c := newTestClient(t, handler, client.Options{})

	resp, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, 28800, resp.ExpiresIn)
}
