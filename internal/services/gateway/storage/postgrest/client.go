// Package postgrest writes rows through the hosted store's REST interface,
// authenticating with the project key.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/agenthub/internal/platform/errors"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxResponseBytes bounds how much of a store response is read.
const maxResponseBytes = 1 << 20

// Config holds the store endpoint and credentials.
type Config struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string
	// Key is the service-role or anonymous key.
	Key string
	// HTTPClient overrides the default instrumented client.
	HTTPClient *http.Client
}

// Client inserts rows via POST /rest/v1/<table>.
type Client struct {
	baseURL    *url.URL
	key        string
	httpClient *http.Client
}

var _ storage.Inserter = (*Client)(nil)

// New validates cfg and returns a client. It performs no network calls.
func New(cfg Config) (*Client, error) {
	rawURL := strings.TrimSpace(cfg.URL)
	if rawURL == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, "store env not configured: SUPABASE_URL is required")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, "store env not configured: SUPABASE_SERVICE_ROLE or SUPABASE_ANON_KEY is required")
	}
	baseURL, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationMissing, fmt.Sprintf("store env not configured: invalid SUPABASE_URL %q", rawURL))
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &Client{
		baseURL:    baseURL,
		key:        key,
		httpClient: httpClient,
	}, nil
}

// Host returns the store host for logging.
func (c *Client) Host() string {
	return c.baseURL.Host
}

// Insert posts row to table and returns the representation the store echoes.
func (c *Client) Insert(ctx context.Context, table string, row storage.Row) ([]storage.Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("insert: table is required")
	}
	body, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode %s row: %w", table, err)
	}

	endpoint := c.baseURL.JoinPath("rest", "v1", table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s insert: %w", table, err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s insert response: %w", table, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("insert into %s: %w", table, parseAPIError(resp.StatusCode, data))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var rows []storage.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s insert response: %w", table, err)
	}
	return rows, nil
}
