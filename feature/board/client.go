package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"card-sync/core/reconcile"

	"golang.org/x/oauth2"
)

// previewAccept enables the projects API preview media type.
const previewAccept = "application/vnd.github.inertia-preview+json"

const pageSize = 100

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Client is a minimal read-only client for the project board API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a board client. A non-empty token is sent as a bearer token.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}
	httpClient.Timeout = time.Duration(timeout) * time.Second

	return &Client{
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		httpClient: httpClient,
	}
}

// ListColumns returns every column of the project, in board order.
func (c *Client) ListColumns(ctx context.Context, projectID int64) ([]Column, error) {
	var columns []Column
	err := c.getPaged(ctx, fmt.Sprintf("%s/projects/%d/columns", c.baseURL, projectID), func(page []byte) error {
		var batch []Column
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		columns = append(columns, batch...)
		return nil
	})
	return columns, err
}

// ListCards returns every card at the column's cards URL, in column order.
func (c *Client) ListCards(ctx context.Context, cardsURL string) ([]ProjectCard, error) {
	var cards []ProjectCard
	err := c.getPaged(ctx, cardsURL, func(page []byte) error {
		var batch []ProjectCard
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		cards = append(cards, batch...)
		return nil
	})
	return cards, err
}

// GetIssue fetches the issue a card links to.
func (c *Client) GetIssue(ctx context.Context, contentURL string) (*Issue, error) {
	body, _, err := c.get(ctx, contentURL)
	if err != nil {
		return nil, err
	}
	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("decoding issue %s: %w", contentURL, err)
	}
	return &issue, nil
}

// getPaged follows rel="next" links until the last page.
func (c *Client) getPaged(ctx context.Context, rawURL string, handle func(page []byte) error) error {
	next, err := withPageSize(rawURL)
	if err != nil {
		return err
	}

	for next != "" {
		body, header, err := c.get(ctx, next)
		if err != nil {
			return err
		}
		if err := handle(body); err != nil {
			return fmt.Errorf("decoding %s: %w", next, err)
		}
		next = nextLink(header.Get("Link"))
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", previewAccept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &reconcile.TransportError{Source: "board", Method: http.MethodGet, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &reconcile.TransportError{Source: "board", Method: http.MethodGet, URL: rawURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &reconcile.TransportError{
			Source:     "board",
			Method:     http.MethodGet,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, resp.Header, nil
}

func withPageSize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	q := u.Query()
	if q.Get("per_page") == "" {
		q.Set("per_page", fmt.Sprint(pageSize))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func nextLink(header string) string {
	m := nextLinkPattern.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return m[1]
}
