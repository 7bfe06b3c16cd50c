package airtable

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

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
)

const DefaultBaseURL = "https://api.airtable.com/v0"

// APIClient talks to the Airtable REST API for a single base.
type APIClient struct {
	httpClient   *http.Client
	BaseURL      string
	baseID       string
	apiKey       string
	maxRetries   uint64
	retryBackoff time.Duration
}

// Option customises an APIClient.
type Option func(*APIClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *APIClient) { c.httpClient = hc }
}

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *APIClient) { c.BaseURL = baseURL }
}

// WithRetries sets how often a throttled or failed request is retried and
// the initial backoff between attempts.
func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(c *APIClient) {
		if maxRetries >= 0 {
			c.maxRetries = uint64(maxRetries)
		}
		if backoff > 0 {
			c.retryBackoff = backoff
		}
	}
}

// NewClient creates a client for the given base, authenticated with apiKey.
func NewClient(apiKey, baseID string, opts ...Option) *APIClient {
	c := &APIClient{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		BaseURL:      DefaultBaseURL,
		baseID:       baseID,
		apiKey:       apiKey,
		maxRetries:   2,
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*APIClient)(nil)

// ListRecords fetches a single page of table, continuing from offset.
func (c *APIClient) ListRecords(ctx context.Context, table, offset string, params *ListParams) (ListResponse, error) {
	query := params.values()
	if offset != "" {
		query.Set("offset", offset)
	}

	var body listBody
	status, err := c.do(ctx, http.MethodGet, c.tableURL(table), query, nil, &body)
	if err != nil {
		return ListResponse{}, err
	}
	if !isSuccess(status) {
		return ListResponse{Success: false, Err: apiError(status, body.Error)}, nil
	}
	return ListResponse{Success: true, Records: body.Records, Offset: body.Offset}, nil
}

// CreateRecord creates a single record in table.
func (c *APIClient) CreateRecord(ctx context.Context, table string, fields Fields, typecast bool) (RecordResponse, error) {
	var body recordBody
	status, err := c.do(ctx, http.MethodPost, c.tableURL(table), nil, writeBody{Fields: fields, Typecast: typecast}, &body)
	if err != nil {
		return RecordResponse{}, err
	}
	if !isSuccess(status) {
		return RecordResponse{Success: false, Err: apiError(status, body.Error)}, nil
	}
	return RecordResponse{Success: true, Record: body.Record}, nil
}

// UpdateRecord patches the given fields of an existing record.
func (c *APIClient) UpdateRecord(ctx context.Context, table, recordID string, fields Fields, typecast bool) (RecordResponse, error) {
	var body recordBody
	target := c.tableURL(table) + "/" + url.PathEscape(recordID)
	status, err := c.do(ctx, http.MethodPatch, target, nil, writeBody{Fields: fields, Typecast: typecast}, &body)
	if err != nil {
		return RecordResponse{}, err
	}
	if !isSuccess(status) {
		return RecordResponse{Success: false, Err: apiError(status, body.Error)}, nil
	}
	return RecordResponse{Success: true, Record: body.Record}, nil
}

func (c *APIClient) tableURL(table string) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseURL, url.PathEscape(c.baseID), url.PathEscape(table))
}

// do sends the request, retrying on 429, 5xx and transport errors, and
// decodes the final response body into out. The returned status is the one
// of the last attempt; err is only set when no response could be read.
func (c *APIClient) do(ctx context.Context, method, target string, query url.Values, payload any, out any) (int, error) {
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		status  int
		rawBody []byte
	)
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, rawBody = 0, nil

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		log.Debug("Sending Airtable request", "method", method, "url", target)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.Warn("Airtable request failed", "method", method, "url", target, "error", err)
			return retry.RetryableError(fmt.Errorf("failed to execute request: %w", err))
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("failed to read response: %w", err))
		}
		status, rawBody = resp.StatusCode, data

		if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
			log.Warn("Airtable responded with retryable status", "method", method, "url", target, "status", status)
			return retry.RetryableError(fmt.Errorf("received HTTP status %d", status))
		}
		return nil
	})
	if err != nil && status == 0 {
		return 0, err
	}

	if len(rawBody) > 0 {
		dec := json.NewDecoder(bytes.NewReader(rawBody))
		// Keeps 64-bit platform ids exact.
		dec.UseNumber()
		if decErr := dec.Decode(out); decErr != nil && isSuccess(status) {
			return status, fmt.Errorf("failed to decode response: %w", decErr)
		}
	}
	if !isSuccess(status) {
		log.Error("Received non-OK HTTP status from Airtable", "status", status, "body", string(rawBody))
	}
	return status, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func apiError(status int, err *APIError) *APIError {
	if err != nil {
		return err
	}
	return &APIError{Type: "HTTP_" + strconv.Itoa(status)}
}

func (p *ListParams) values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.View != "" {
		v.Set("view", p.View)
	}
	if p.FilterByFormula != "" {
		v.Set("filterByFormula", p.FilterByFormula)
	}
	if p.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	for _, f := range p.Fields {
		v.Add("fields[]", f)
	}
	for i, s := range p.Sort {
		v.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		if s.Direction != "" {
			v.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
	}
	return v
}
