// Package notion reads and updates the achieved-hours ledger kept in a Notion
// database.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/harrisonrobin/dailies/pkg/auth"
)

// API defaults and the database property names the ledger relies on.
const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"

	TitleProperty = "Goals"
	HoursProperty = "Current achieve hour"
)

// Page is a database row. Only the properties this tool reads are decoded.
type Page struct {
	ID         string                     `json:"id"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// Hours returns the "Current achieve hour" number; missing or null reads as 0.
func (p *Page) Hours() float64 {
	raw, ok := p.Properties[HoursProperty]
	if !ok {
		return 0
	}
	var prop struct {
		Number *float64 `json:"number"`
	}
	if err := json.Unmarshal(raw, &prop); err != nil || prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// Client is a Notion API client bound to a single goal database.
type Client struct {
	baseURL    string
	databaseID string
	version    string
	httpClient *http.Client
}

// NewClient creates a Notion client authenticating with token. base may be nil.
func NewClient(ctx context.Context, baseURL, version, token, databaseID string, base *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		databaseID: databaseID,
		version:    version,
		httpClient: auth.BearerClient(ctx, token, base),
	}
}

type titleFilter struct {
	Property string `json:"property"`
	Title    struct {
		Equals string `json:"equals"`
	} `json:"title"`
}

// QueryGoal returns the first page whose title equals name, or nil when none does.
func (c *Client) QueryGoal(ctx context.Context, name string) (*Page, error) {
	f := titleFilter{Property: TitleProperty}
	f.Title.Equals = name
	body := map[string]any{"filter": f, "page_size": 1}

	var res struct {
		Results []Page `json:"results"`
	}
	path := "/databases/" + url.PathEscape(c.databaseID) + "/query"
	if err := c.do(ctx, http.MethodPost, path, body, &res, ErrQueryFailed); err != nil {
		return nil, err
	}
	if len(res.Results) == 0 {
		return nil, nil
	}
	return &res.Results[0], nil
}

// GetPage retrieves a single page.
func (c *Client) GetPage(ctx context.Context, id string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+url.PathEscape(id), nil, &page, ErrQueryFailed); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetHours overwrites the "Current achieve hour" property of a page.
func (c *Client) SetHours(ctx context.Context, pageID string, hours float64) error {
	body := map[string]any{
		"properties": map[string]any{
			HoursProperty: map[string]any{"number": hours},
		},
	}
	return c.do(ctx, http.MethodPatch, "/pages/"+url.PathEscape(pageID), body, nil, ErrUpdateFailed)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, kind error) error {
	op := method + " " + path
	fail := func(status int, code, msg string) error {
		return &APIError{Op: op, Status: status, Code: code, Message: msg, kind: kind}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, "", err.Error())
	}
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, "", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return fail(resp.StatusCode, apiErr.Code, apiErr.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fail(resp.StatusCode, "", fmt.Sprintf("failed to decode response: %v", err))
		}
	}
	return nil
}
