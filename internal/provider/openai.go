// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// sdkChat calls an OpenAI-compatible chat completions endpoint through the
// OpenAI SDK. Grok exposes the same API under its own base URL.
type sdkChat struct {
	kind   Kind
	model  string
	client openai.Client
}

func newSDKChat(kind Kind, apiKey, model, baseURL string, httpClient *http.Client) *sdkChat {
	return &sdkChat{
		kind:  kind,
		model: model,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

func (c *sdkChat) Kind() Kind { return c.kind }

func (c *sdkChat) Generate(ctx context.Context, system, user string, temperature float64) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("calling %s API: %w", c.kind, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s API: %w: no choices", c.kind, ErrEmptyResponse)
	}
	text := completion.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s API: %w", c.kind, ErrEmptyResponse)
	}
	return text, nil
}
