// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/content-brief/internal/httputil"
)

const (
	anthropicVersion = "2023-06-01"
	claudeMaxTokens  = 4096
)

// anthropicChat calls the Claude Messages API. The system instruction goes
// in the top-level system field, not the message list.
type anthropicChat struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *anthropicChat) Kind() Kind { return Claude }

func (c *anthropicChat) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	req := claudeRequest{
		Model:       c.model,
		MaxTokens:   claudeMaxTokens,
		System:      system,
		Temperature: temperature,
		Messages:    []claudeMessage{{Role: "user", Content: user}},
	}
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.client, c.url, headers, req, &resp); err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("Claude API: %w: no text content", ErrEmptyResponse)
}
