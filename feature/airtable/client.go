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
	"strings"
	"time"

	"card-sync/core/reconcile"

	"golang.org/x/oauth2"
)

// Record is a row as exchanged with the table API.
type Record struct {
	ID          string         `json:"id,omitempty"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type writeRequest struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast"`
}

// Client talks to one table of one base.
type Client struct {
	tableURL   string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a client for the given table.
func NewClient(cfg Config, table string, pageSize int) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	httpClient := &http.Client{}
	if cfg.APIKey != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.APIKey,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = time.Duration(timeout) * time.Second

	return &Client{
		tableURL:   fmt.Sprintf("%s/%s/%s", strings.TrimRight(cfg.APIURL, "/"), url.PathEscape(cfg.BaseID), url.PathEscape(table)),
		pageSize:   pageSize,
		httpClient: httpClient,
	}
}

// List returns every record of the table, following offsets until the last page.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		q := url.Values{}
		q.Set("pageSize", strconv.Itoa(c.pageSize))
		if offset != "" {
			q.Set("offset", offset)
		}

		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL+"?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// Create inserts one record.
func (c *Client) Create(ctx context.Context, fields map[string]any) (*Record, error) {
	var created Record
	if err := c.do(ctx, http.MethodPost, c.tableURL, writeRequest{Fields: fields, Typecast: true}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Replace overwrites every field of an existing record. Fields left out are cleared.
func (c *Client) Replace(ctx context.Context, recordID string, fields map[string]any) (*Record, error) {
	var updated Record
	target := c.tableURL + "/" + url.PathEscape(recordID)
	if err := c.do(ctx, http.MethodPut, target, writeRequest{Fields: fields, Typecast: true}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &reconcile.TransportError{Source: "airtable", Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &reconcile.TransportError{Source: "airtable", Method: method, URL: target, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &reconcile.TransportError{
			Source:     "airtable",
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", method, err)
		}
	}
	return nil
}
