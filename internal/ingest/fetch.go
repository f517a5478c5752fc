package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches MGNREGA records from the public data API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a fetch client. The timeout bounds the whole request;
// there is no retry here, the next scheduled run retries from scratch.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchResult carries the decoded records plus the verbatim payload for the
// raw audit cache.
type FetchResult struct {
	URL     string
	Records []map[string]interface{}
	Raw     json.RawMessage
}

// Fetch issues the upstream GET. The API returns either an object with a
// "records" array or a bare array depending on endpoint version; both are
// accepted. Non-2xx status or a non-JSON body is a fetch failure.
func (c *Client) Fetch(ctx context.Context, stateName, finYear string, limit int) (*FetchResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("filters[state_name]", stateName)
	q.Set("filters[fin_year]", finYear)
	q.Set("limit", strconv.Itoa(limit))
	if c.apiKey != "" {
		q.Set("api-key", c.apiKey)
	}
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mgnrega-backend/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u.Host)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	return &FetchResult{URL: u.String(), Records: records, Raw: body}, nil
}

// decodeRecords accepts {"records": [...]} or a bare [...] payload.
func decodeRecords(body []byte) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []map[string]interface{}
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("failed to decode record array: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Records []map[string]interface{} `json:"records"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return envelope.Records, nil
}
