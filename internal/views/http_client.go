package views

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"viewtree/internal/debug"
	appErrors "viewtree/internal/errors"
)

const (
	// DefaultBaseURL is the project API host.
	DefaultBaseURL = "https://api.dev2.constructn.ai"

	sectionListPath = "/api/v1/views/web/%s/sectionList"
	maxBodyBytes    = 32 << 20
)

// HTTPOption customizes an HTTP client.
type HTTPOption func(*httpClient)

// WithTimeout bounds a single attempt. Zero keeps the default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *httpClient) {
		if d > 0 {
			c.retry.HTTPClient.Timeout = d
		}
	}
}

// WithRetryMax sets how many times a failed request is retried. Negative values are ignored.
func WithRetryMax(n int) HTTPOption {
	return func(c *httpClient) {
		if n >= 0 {
			c.retry.RetryMax = n
		}
	}
}

// WithRetryWait sets the backoff bounds between attempts.
func WithRetryWait(minWait, maxWait time.Duration) HTTPOption {
	return func(c *httpClient) {
		c.retry.RetryWaitMin = minWait
		c.retry.RetryWaitMax = maxWait
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *httpClient) {
		if hc != nil {
			c.retry.HTTPClient = hc
		}
	}
}

type httpClient struct {
	baseURL string
	retry   *retryablehttp.Client
}

// NewHTTPClient returns a Client that reads the sectionList endpoint.
func NewHTTPClient(baseURL string, opts ...HTTPOption) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("invalid api base url %q", baseURL), err)
	}

	retry := retryablehttp.NewClient()
	retry.Logger = debug.Logger()
	retry.RetryMax = 3

	c := &httpClient{baseURL: base, retry: retry}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchTree requests the whole hierarchy of projectID. An empty token sends
// no Authorization header.
func (c *httpClient) FetchTree(ctx context.Context, token, projectID string) (*RawView, error) {
	id, err := normalizeProjectID(projectID)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + fmt.Sprintf(sectionListPath, url.PathEscape(id))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeFetchFailed, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.retry.Do(req)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeFetchFailed,
			fmt.Sprintf("fetch views for project %s", id), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeFetchFailed, "read response body", err)
	}
	debug.WithFields(map[string]any{
		"project": id,
		"status":  resp.StatusCode,
		"bytes":   len(body),
		"elapsed": time.Since(started).String(),
	}).Debug("sectionList response")

	if err := statusError(resp.StatusCode, id, body); err != nil {
		return nil, err
	}
	return decodeSectionList(body)
}

// decodeSectionList extracts the tree from the response envelope.
func decodeSectionList(body []byte) (*RawView, error) {
	if !gjson.ValidBytes(body) {
		return nil, appErrors.New(appErrors.CodeDecodeFailed, "response is not valid JSON", nil)
	}
	result := gjson.GetBytes(body, "result")
	if !result.Exists() || result.Type == gjson.Null {
		return nil, appErrors.New(appErrors.CodeEmptyPayload, "response has no result", nil)
	}
	if !result.IsObject() {
		return nil, appErrors.New(appErrors.CodeDecodeFailed,
			fmt.Sprintf("result is %s, want object", result.Type), nil)
	}

	var root RawView
	if err := json.Unmarshal([]byte(result.Raw), &root); err != nil {
		return nil, appErrors.New(appErrors.CodeDecodeFailed, "decode view tree", err)
	}
	return &root, nil
}
