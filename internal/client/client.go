// Package client provides typed HTTP clients for the JobRadar backend API.
// It owns the error taxonomy and the single transport-level 5xx retry; polling
// policy lives with the callers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vietjobs/jobradar-cli/internal/fingerprint"
	"github.com/vietjobs/jobradar-cli/internal/logger"
)

const (
	apiBasePath         = "/api/v1"
	defaultHTTPTimeout  = 30 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
)

// TokenSource supplies the admin bearer token and is told when the backend
// rejects it, so a dead token is cleared exactly once and never re-sent.
type TokenSource interface {
	CurrentToken() (string, bool)
	Clear() error
}

// IdentitySource supplies the device identity for tracking headers.
type IdentitySource interface {
	Identity() (fingerprint.Identity, error)
}

// Options configures a Client. Zero-value fields get sane defaults; Tokens
// and Identity may stay nil for unauthenticated, untracked use.
type Options struct {
	HTTPClient   *http.Client
	Tokens       TokenSource
	Identity     IdentitySource
	Logger       logger.Logger
	RetryBackoff time.Duration
}

// Client talks to the backend REST API. All methods return *APIError on
// failure, classified per the Kind taxonomy.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokens       TokenSource
	identity     IdentitySource
	log          logger.Logger
	retryBackoff time.Duration
}

// New creates a Client for the API at baseURL (scheme + host, no path).
func New(baseURL string, opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	backoff := opts.RetryBackoff
	if backoff == 0 {
		backoff = defaultRetryBackoff
	}
	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		tokens:       opts.Tokens,
		identity:     opts.Identity,
		log:          log,
		retryBackoff: backoff,
	}
}

// doRequest performs one API call, retrying exactly once on 5xx for GET
// requests, and maps the outcome onto the error taxonomy.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	requestBody any,
	extraHeaders http.Header,
) ([]byte, error) {
	var encoded []byte
	if requestBody != nil {
		var err error
		encoded, err = json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	endpoint := c.baseURL + apiBasePath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, retryable, err := c.attempt(ctx, method, endpoint, encoded, extraHeaders)
	if retryable && method == http.MethodGet {
		c.log.Debug("retrying after server error",
			logger.String("endpoint", endpoint),
			logger.Duration("backoff", c.retryBackoff))
		select {
		case <-ctx.Done():
			return nil, &APIError{Kind: KindNetworkError, Message: "request cancelled", Err: ctx.Err()}
		case <-time.After(c.retryBackoff):
		}
		body, _, err = c.attempt(ctx, method, endpoint, encoded, extraHeaders)
	}
	return body, err
}

// attempt performs a single HTTP exchange. The second return value reports
// whether the failure was a 5xx eligible for the one retry.
func (c *Client) attempt(
	ctx context.Context,
	method, endpoint string,
	encoded []byte,
	extraHeaders http.Header,
) ([]byte, bool, error) {
	var bodyReader io.Reader = http.NoBody
	if encoded != nil {
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	if encoded != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.CurrentToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for key, values := range extraHeaders {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, &APIError{Kind: KindNetworkError, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, &APIError{Kind: KindNetworkError, Message: "read response", Err: err}
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return respBody, false, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, false, c.handleUnauthorized(respBody)
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, &APIError{
			Kind:       KindNotFound,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, &APIError{
			Kind:       KindServerError,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	default:
		return nil, false, &APIError{
			Kind:       KindBadRequest,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}
}

// handleUnauthorized clears the stored token so the session-expired state is
// reached once, not on every subsequent call.
func (c *Client) handleUnauthorized(respBody []byte) error {
	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.log.Warn("failed to clear rejected token", logger.Error(err))
		}
	}
	return &APIError{
		Kind:       KindUnauthorized,
		StatusCode: http.StatusUnauthorized,
		Message:    errorMessage(respBody),
	}
}

// errorMessage extracts a human-readable message from an error response
// body. The backend answers {"detail": ...}; older endpoints use {"error": ...}.
func errorMessage(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	const maxRawMessage = 200
	raw := string(body)
	if len(raw) > maxRawMessage {
		raw = raw[:maxRawMessage]
	}
	return raw
}

// getJSON performs a GET and decodes the response into T.
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[T](body)
}

// postJSON performs a POST with a JSON body and decodes the response into T.
func postJSON[T any](ctx context.Context, c *Client, path string, requestBody any) (*T, error) {
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, requestBody, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[T](body)
}

func decodeJSON[T any](body []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &result, nil
}
