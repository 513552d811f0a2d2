package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/inkling-notes/inkling-server/internal/config"
)

// Completer is the single-call completion contract: instruction in, text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionClient talks to the configured chat-completions provider. It
// never retries; surfacing the failure to the caller is the whole policy.
// No client-side timeout is set either, matching the transport-default
// behavior of the rest of the system.
type CompletionClient struct {
	http   *resty.Client
	model  string
	apiKey string
}

func NewCompletionClient(p config.ProviderProfile) *CompletionClient {
	cli := resty.New().SetBaseURL(strings.TrimRight(p.BaseURL, "/"))
	return &CompletionClient{http: cli, model: p.Model, apiKey: p.APIKey}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one user message and returns the trimmed completion text.
// Temperature is pinned low to keep outputs near-deterministic across
// identical calls.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.apiKey).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: 0.2,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", &UpstreamError{Message: fmt.Sprintf("AI service unavailable: %v", err)}
	}

	var body chatResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if !resp.IsSuccess() {
		msg := ""
		if decodeErr == nil && body.Error != nil {
			msg = body.Error.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("AI service unavailable (%d)", resp.StatusCode())
		}
		return "", &UpstreamError{Status: resp.StatusCode(), Message: msg}
	}
	if decodeErr != nil {
		return "", &UpstreamError{Status: resp.StatusCode(), Message: "AI service returned a malformed response"}
	}
	if len(body.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(body.Choices[0].Message.Content), nil
}
