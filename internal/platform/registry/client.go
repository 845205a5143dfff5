package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/util"
	"golang.org/x/time/rate"
)

// Endpoint paths on the registry backend.
const (
	PathBubbleRisk    = "/api/analytics/bubble-risk"
	PathRegions       = "/api/analytics/regions"
	PathCompliance    = "/api/parcels/compliance"
	PathMortgages     = "/api/mortgages"
	PathTransferCount = "/api/transfers/count"
	PathMortgageCount = "/api/mortgages/count"
)

// ErrUnexpectedStatus is wrapped into errors for non-200 responses.
var ErrUnexpectedStatus = errors.New("registry: unexpected status")

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines settings for the registry client.
type Config struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Limit             int
}

// Client issues read-only GET queries against the registry backend.
// Each call is attempted exactly once.
type Client struct {
	baseURL    string
	token      string
	limit      int
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// New creates a registry client.
func New(httpClient HTTPClient, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 500
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		limit:      limit,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// BubbleRisk fetches the national bubble-risk snapshot.
func (c *Client) BubbleRisk(ctx context.Context) (model.BubbleRiskSnapshot, error) {
	var snap model.BubbleRiskSnapshot
	if err := c.getJSON(ctx, PathBubbleRisk, nil, func(body []byte) error {
		return decodeObject(body, &snap)
	}); err != nil {
		return model.BubbleRiskSnapshot{}, err
	}
	return snap, nil
}

// Regions fetches the per-region aggregates.
func (c *Client) Regions(ctx context.Context) ([]model.RegionRecord, error) {
	var regions []model.RegionRecord
	if err := c.getJSON(ctx, PathRegions, nil, func(body []byte) error {
		return decodeCollection(body, &regions)
	}); err != nil {
		return nil, err
	}
	for i := range regions {
		regions[i].RegionName = util.CleanText(regions[i].RegionName)
	}
	return regions, nil
}

// Parcels fetches up to the configured limit of parcel compliance records.
func (c *Client) Parcels(ctx context.Context) ([]model.ParcelComplianceRecord, error) {
	var parcels []model.ParcelComplianceRecord
	if err := c.getJSON(ctx, PathCompliance, c.limitQuery(), func(body []byte) error {
		return decodeCollection(body, &parcels)
	}); err != nil {
		return nil, err
	}
	for i := range parcels {
		parcels[i].Address = util.CleanText(parcels[i].Address)
		parcels[i].Region = util.CleanText(parcels[i].Region)
	}
	return parcels, nil
}

// Mortgages fetches up to the configured limit of mortgage records.
func (c *Client) Mortgages(ctx context.Context) ([]model.MortgageRecord, error) {
	var mortgages []model.MortgageRecord
	if err := c.getJSON(ctx, PathMortgages, c.limitQuery(), func(body []byte) error {
		return decodeCollection(body, &mortgages)
	}); err != nil {
		return nil, err
	}
	for i := range mortgages {
		mortgages[i].Bank = util.CleanText(mortgages[i].Bank)
		mortgages[i].Region = util.CleanText(mortgages[i].Region)
	}
	return mortgages, nil
}

// TransferCount fetches the registry-wide number of ownership transfers.
func (c *Client) TransferCount(ctx context.Context) (int, error) {
	return c.count(ctx, PathTransferCount)
}

// MortgageCount fetches the registry-wide number of registered mortgages.
func (c *Client) MortgageCount(ctx context.Context) (int, error) {
	return c.count(ctx, PathMortgageCount)
}

func (c *Client) count(ctx context.Context, path string) (int, error) {
	var payload struct {
		Count *int `json:"count"`
	}
	if err := c.getJSON(ctx, path, nil, func(body []byte) error {
		return decodeObject(body, &payload)
	}); err != nil {
		return 0, err
	}
	if payload.Count == nil {
		return 0, fmt.Errorf("decode %s: missing count", path)
	}
	return *payload.Count, nil
}

func (c *Client) limitQuery() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(c.limit))
	return q
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, decode func([]byte) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", path, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	logRequest(http.MethodGet, path, query)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logError(path, err)
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	logResponse(path, resp.StatusCode, time.Since(start), len(body))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w %d for %s: %s", ErrUnexpectedStatus, resp.StatusCode, path, snippet(body))
	}
	if err := decode(bytes.TrimSpace(body)); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// decodeCollection accepts either a bare JSON array or an envelope {"data": [...]}.
func decodeCollection[T any](body []byte, dst *[]T) error {
	if len(body) > 0 && body[0] == '[' {
		return json.Unmarshal(body, dst)
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}
	*dst = env.Data
	return nil
}

// decodeObject accepts either a bare object or an envelope {"data": {...}}.
func decodeObject(body []byte, dst any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && env.Data[0] == '{' {
		return json.Unmarshal(env.Data, dst)
	}
	return json.Unmarshal(body, dst)
}

func snippet(body []byte) string {
	const maxSnippet = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
