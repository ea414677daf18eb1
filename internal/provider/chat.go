// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-brief/internal/httputil"
)

// restChat posts a bearer-authenticated chat completions request. Perplexity
// and Mistral share this shape.
type restChat struct {
	kind   Kind
	apiKey string
	model  string
	url    string
	client *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *restChat) Kind() Kind { return c.kind }

func (c *restChat) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	var resp chatResponse
	if err := httputil.PostJSON(ctx, c.client, c.url, headers, req, &resp); err != nil {
		return "", fmt.Errorf("calling %s API: %w", c.kind, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s API: %w: no choices", c.kind, ErrEmptyResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s API: %w", c.kind, ErrEmptyResponse)
	}
	return text, nil
}
