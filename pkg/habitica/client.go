// Package habitica is a minimal client for the Habitica v3 task endpoints.
package habitica

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/harrisonrobin/dailies/pkg/model"
)

// DefaultBaseURL is the public Habitica v3 API.
const (
	DefaultBaseURL = "https://habitica.com/api/v3"
	appName        = "dailies"
)

// Client is a Habitica API client.
type Client struct {
	baseURL    string
	userID     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Habitica client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, userID, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// CreateTask submits spec as a new daily and returns its id.
func (c *Client) CreateTask(ctx context.Context, spec model.TaskSpec) (string, error) {
	if spec.Type == "" {
		spec.Type = model.TypeDaily
	}
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/user", nil, spec, &created, ErrCreateFailed); err != nil {
		return "", err
	}
	return created.ID, nil
}

// ListDailies returns every daily of the user.
func (c *Client) ListDailies(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	q := url.Values{"type": {"dailys"}}
	if err := c.do(ctx, http.MethodGet, "/tasks/user", q, nil, &tasks, ErrListFailed); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompleteTask scores a task up, which marks a daily completed.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(id)+"/score/up", nil, struct{}{}, nil, ErrCompleteFailed)
}

// DeleteTask removes a task permanently.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil, ErrDeleteFailed)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, kind error) error {
	op := method + " " + path
	fail := func(status int, msg string) error {
		return &RemoteError{Op: op, Status: status, Message: msg, kind: kind}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Sprintf("failed to encode request: %v", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fail(0, err.Error())
	}
	req.Header.Set("x-api-user", c.userID)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-client", c.userID+"-"+appName)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, err.Error())
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return fail(resp.StatusCode, msg)
	}
	if decodeErr != nil && decodeErr != io.EOF {
		return fail(resp.StatusCode, fmt.Sprintf("failed to decode response: %v", decodeErr))
	}
	if !env.Success && decodeErr == nil {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return fail(resp.StatusCode, msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fail(resp.StatusCode, fmt.Sprintf("failed to decode data: %v", err))
		}
	}
	return nil
}
