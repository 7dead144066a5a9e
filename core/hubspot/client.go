package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PageSize is the fixed number of results requested per search page.
const PageSize = 100

// ObjectType names a CRM object collection in API paths.
const (
	ObjectTypeContacts  = "contacts"
	ObjectTypeCompanies = "companies"
)

// SearchResult is a single CRM record returned by the search endpoint.
type SearchResult struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// Payload converts the result into the raw payload shape the sync
// engine consumes, matching the webhook surface.
func (r SearchResult) Payload() map[string]any {
	return map[string]any{
		"id":         r.ID,
		"properties": r.Properties,
	}
}

// PushResult reports the outcome of a property update call.
// A non-2xx response is carried here rather than as an error so that
// callers can isolate per-record failures.
type PushResult struct {
	OK         bool
	StatusCode int
	Body       string
}

// Client defines the CRM operations the sync engine depends on.
type Client interface {
	// Search returns one page of records whose identifying property is
	// numerically greater than zero, starting at the given offset.
	Search(ctx context.Context, objectType, property string, offset int) ([]SearchResult, error)
	// UpdateProperties patches the given properties onto a record.
	UpdateProperties(ctx context.Context, objectType, id string, properties map[string]any) (PushResult, error)
}

type apiClient struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a HubSpot API client with a dedicated transport.
func NewClient(cfg Config, logger *zap.Logger) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &apiClient{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		logger: logger,
	}
}

type searchFilter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchFilterGroup struct {
	Filters []searchFilter `json:"filters"`
}

type searchRequest struct {
	FilterGroups []searchFilterGroup `json:"filterGroups"`
	Properties   []string            `json:"properties"`
	Limit        int                 `json:"limit"`
	After        int                 `json:"after"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

func (c *apiClient) Search(ctx context.Context, objectType, property string, offset int) ([]SearchResult, error) {
	endpoint := fmt.Sprintf("/crm/v3/objects/%s/search", objectType)
	payload := searchRequest{
		FilterGroups: []searchFilterGroup{
			{Filters: []searchFilter{{PropertyName: property, Operator: "GT", Value: "0"}}},
		},
		Properties: []string{property},
		Limit:      PageSize,
		After:      offset,
	}

	status, body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("search %s at offset %d failed with status %d: %s", objectType, offset, status, snippet(body))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	c.logger.Debug("Search page fetched",
		zap.String("object_type", objectType),
		zap.Int("offset", offset),
		zap.Int("count", len(parsed.Results)),
	)
	return parsed.Results, nil
}

func (c *apiClient) UpdateProperties(ctx context.Context, objectType, id string, properties map[string]any) (PushResult, error) {
	endpoint := fmt.Sprintf("/crm/v3/objects/%s/%s", objectType, id)
	payload := map[string]any{"properties": properties}

	c.logger.Info("Updating CRM record properties",
		zap.String("object_type", objectType),
		zap.String("id", id),
	)

	status, body, err := c.do(ctx, http.MethodPatch, endpoint, payload)
	if err != nil {
		return PushResult{}, err
	}

	return PushResult{
		OK:         status >= 200 && status < 300,
		StatusCode: status,
		Body:       string(body),
	}, nil
}

// do sends a JSON request and returns the status code and the full
// response body. The body is always drained so the connection can be
// reused by the transport.
func (c *apiClient) do(ctx context.Context, method, endpoint string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s failed: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
