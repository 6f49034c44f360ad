// Package apiclient talks to the upstream internship REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"internship_admin/internal/logger"
)

// Upstream collections.
const (
	PathStudents     = "/api/students"
	PathCompanies    = "/api/companies"
	PathInternships  = "/api/internships"
	PathApplications = "/api/applications"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    trimmed,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Create POSTs body to the collection and returns the raw success body.
func (c *Client) Create(ctx context.Context, collection string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, collection, body)
}

// Update PUTs body to collection/{id}.
func (c *Client) Update(ctx context.Context, collection string, id int64, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, itemPath(collection, id), body)
}

// Delete issues DELETE collection/{id}.
func (c *Client) Delete(ctx context.Context, collection string, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, itemPath(collection, id), nil)
	return err
}

// List GETs the collection into out. The upstream may answer with a bare
// array or with an object wrapping it.
func (c *Client) List(ctx context.Context, collection string, out any) error {
	payload, err := c.do(ctx, http.MethodGet, collection, nil)
	if err != nil {
		return err
	}
	return decodeList(payload, collection, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("send %s %s: %w", method, path, err)
		logger.UpstreamLog(method, path, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read %s %s: %w", method, path, err)
		logger.UpstreamLog(method, path, resp.StatusCode, time.Since(start), err)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, payload)
		logger.UpstreamLog(method, path, resp.StatusCode, time.Since(start), apiErr)
		return nil, apiErr
	}
	logger.UpstreamLog(method, path, resp.StatusCode, time.Since(start), nil)
	return payload, nil
}

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

// Ключи, под которыми бэкенд может завернуть список.
var listEnvelopeKeys = []string{"data", "items", "rows", "results"}

func decodeList(payload []byte, collection string, out any) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return fmt.Errorf("decode %s: empty body", collection)
	}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err != nil {
			return fmt.Errorf("decode %s: %w", collection, err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	keys := append([]string{collection[strings.LastIndex(collection, "/")+1:]}, listEnvelopeKeys...)
	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s.%s: %w", collection, key, err)
		}
		return nil
	}
	return fmt.Errorf("decode %s: no list in response", collection)
}
