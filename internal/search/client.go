// Package search implements the HTTP client for the FAQ search service.
package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	"github.com/sreehariX/sarcv2/internal/errors"
	"github.com/sreehariX/sarcv2/internal/models"
)

const defaultTimeout = 30 * time.Second

// Client queries the search service. Each Search call issues exactly
// one request; there are no retries and no request cancellation.
type Client struct {
	httpClient tls_client.HttpClient
	endpoint   string
	timeout    time.Duration
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint overrides the search service URL
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient injects a pre-built transport, used by tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a search client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint: models.DefaultSearchURL,
		timeout:  defaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Endpoint returns the configured search service URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search posts the query to the search service and returns the ranked
// matches in service order. An empty slice is a valid result; the
// caller decides how to present it.
func (c *Client) Search(query string) ([]models.Match, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("encode query: %v", err), "")
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewNetworkError("create search request", c.endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("search", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetworkError("read search response", c.endpoint, err)
	}

	if resp.StatusCode != 200 {
		return nil, errors.NewAPIErrorWithBody(
			resp.StatusCode,
			c.endpoint,
			fmt.Sprintf("search request failed, status: %d", resp.StatusCode),
			string(body),
		)
	}

	return parseMatches(body)
}

// parseMatches extracts matches from the response body, a bare JSON
// array of {answer, category, question} objects.
func parseMatches(body []byte) ([]models.Match, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.NewParseError("response is not valid JSON", "")
	}

	results := gjson.ParseBytes(body)
	if !results.IsArray() {
		return nil, errors.NewParseError("response is not a JSON array", "")
	}

	matches := make([]models.Match, 0, len(results.Array()))
	for _, item := range results.Array() {
		matches = append(matches, models.Match{
			Answer:   item.Get("answer").String(),
			Category: item.Get("category").String(),
			Question: item.Get("question").String(),
		})
	}

	return matches, nil
}
