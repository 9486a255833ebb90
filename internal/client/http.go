package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// HTTPClient implements GraphClient using the maintgraph HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Graph ---

func (c *HTTPClient) Graph(ctx context.Context) (*model.Graph, error) {
	var g model.Graph
	if err := c.doJSON(ctx, http.MethodGet, "/v1/graph", nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) Rebuild(ctx context.Context) (*model.GraphMetadata, error) {
	var md model.GraphMetadata
	if err := c.doJSON(ctx, http.MethodPost, "/v1/graph/rebuild", nil, &md); err != nil {
		return nil, err
	}
	return &md, nil
}

// --- Nodes ---

func (c *HTTPClient) Node(ctx context.Context, id string) (*model.Node, error) {
	var n model.Node
	if err := c.doJSON(ctx, http.MethodGet, "/v1/nodes/"+url.PathEscape(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *HTTPClient) Related(ctx context.Context, id string) (*model.Related, error) {
	var r model.Related
	if err := c.doJSON(ctx, http.MethodGet, "/v1/nodes/"+url.PathEscape(id)+"/related", nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// --- Analysis ---

func (c *HTTPClient) Issues(ctx context.Context, severity model.Severity) ([]model.Issue, error) {
	path := "/v1/issues"
	if severity != "" {
		q := url.Values{}
		q.Set("severity", string(severity))
		path += "?" + q.Encode()
	}
	var resp IssueList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Issues, nil
}

func (c *HTTPClient) Duplicates(ctx context.Context) ([]*model.DuplicatePair, error) {
	var dups []*model.DuplicatePair
	if err := c.doJSON(ctx, http.MethodGet, "/v1/duplicates", nil, &dups); err != nil {
		return nil, err
	}
	return dups, nil
}

func (c *HTTPClient) Suggestions(ctx context.Context) ([]model.Suggestion, error) {
	var sugg []model.Suggestion
	if err := c.doJSON(ctx, http.MethodGet, "/v1/suggestions", nil, &sugg); err != nil {
		return nil, err
	}
	return sugg, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*model.GraphStats, error) {
	var st model.GraphStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
