package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// APIError carries the server's status and best-effort message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client is the HTTP adapter for the notes API. Safe for concurrent use; the
// bearer credential can be swapped at runtime.
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client against the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	cli := resty.New().SetBaseURL(strings.TrimRight(baseURL, "/"))
	if timeout > 0 {
		cli.SetTimeout(timeout)
	}
	return &Client{http: cli}
}

// SetToken installs the bearer credential used for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	r := c.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

func apiError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var body struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		msg = body.Message
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &APIError{Status: resp.StatusCode(), Message: msg}
}

func (c *Client) ListNotes(ctx context.Context, search string) ([]Note, error) {
	resp, err := c.request(ctx).SetQueryParam("search", search).Get("/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	var notes []Note
	if err := json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("list notes decode: %w", err)
	}
	for i := range notes {
		notes[i].normalize()
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	return c.noteCall(func() (*resty.Response, error) {
		return c.request(ctx).Get("/notes/" + id)
	})
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*Note, error) {
	return c.noteCall(func() (*resty.Response, error) {
		return c.request(ctx).
			SetBody(map[string]string{"title": title, "content": content}).
			Post("/notes")
	})
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch NotePatch) (*Note, error) {
	return c.noteCall(func() (*resty.Response, error) {
		return c.request(ctx).SetBody(patch).Put("/notes/" + id)
	})
}

func (c *Client) AppendAIOutput(ctx context.Context, id, originalInput, feature, output string) (*Note, error) {
	return c.noteCall(func() (*resty.Response, error) {
		return c.request(ctx).
			SetBody(map[string]string{"originalInput": originalInput, "feature": feature, "output": output}).
			Post("/notes/" + id + "/ai-output")
	})
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/notes/" + id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return apiError(resp)
}

func (c *Client) noteCall(do func() (*resty.Response, error)) (*Note, error) {
	resp, err := do()
	if err != nil {
		return nil, fmt.Errorf("note request: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	var n Note
	if err := json.Unmarshal(resp.Body(), &n); err != nil {
		return nil, fmt.Errorf("note decode: %w", err)
	}
	return n.normalize(), nil
}

// Process runs one transformation against the given plain text.
func (c *Client) Process(ctx context.Context, req ProcessRequest) (string, error) {
	resp, err := c.request(ctx).SetBody(req).Post("/ai/process")
	if err != nil {
		return "", fmt.Errorf("process: %w", err)
	}
	if err := apiError(resp); err != nil {
		return "", err
	}
	var body struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("process decode: %w", err)
	}
	return body.Output, nil
}

func (c *Client) Summarize(ctx context.Context, content string) (string, error) {
	return c.textCall(ctx, "/ai/summarize", map[string]string{"content": content}, "summary")
}

func (c *Client) Improve(ctx context.Context, content string) (string, error) {
	return c.textCall(ctx, "/ai/improve", map[string]string{"content": content}, "improved")
}

func (c *Client) textCall(ctx context.Context, path string, body interface{}, field string) (string, error) {
	resp, err := c.request(ctx).SetBody(body).Post(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if err := apiError(resp); err != nil {
		return "", err
	}
	var out map[string]string
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("%s decode: %w", path, err)
	}
	return out[field], nil
}

// GenerateTags asks the server for tags; an empty list is a valid outcome.
func (c *Client) GenerateTags(ctx context.Context, title, content string) ([]string, error) {
	resp, err := c.request(ctx).
		SetBody(map[string]string{"title": title, "content": content}).
		Post("/ai/tags")
	if err != nil {
		return nil, fmt.Errorf("generate tags: %w", err)
	}
	if err := apiError(resp); err != nil {
		return nil, err
	}
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("generate tags decode: %w", err)
	}
	if body.Tags == nil {
		body.Tags = []string{}
	}
	return body.Tags, nil
}
