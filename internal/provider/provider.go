// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider wraps hosted text-generation APIs behind one call shape:
// a system instruction, a user prompt and a temperature in, text out.
//
// Three request families cover the five providers: the OpenAI SDK (OpenAI
// and Grok), the Anthropic Messages API (Claude) and a plain REST chat
// completions call (Perplexity and Mistral). Every call is a single
// attempt; callers decide whether to try again.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/content-brief/pkg/types"
)

// Kind identifies a provider.
type Kind string

const (
	OpenAI     Kind = "openai"
	Claude     Kind = "claude"
	Grok       Kind = "grok"
	Perplexity Kind = "perplexity"
	Mistral    Kind = "mistral"
)

// Kinds lists every known provider in menu order.
var Kinds = []Kind{OpenAI, Claude, Grok, Perplexity, Mistral}

var (
	// ErrUnknownProvider is returned for a provider name outside Kinds.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrMissingCredential is returned when the selected provider has no API key.
	ErrMissingCredential = errors.New("missing API key")

	// ErrEmptyResponse is returned when a provider answers without text.
	ErrEmptyResponse = errors.New("empty response")
)

type kindInfo struct {
	envVar  string
	label   string
	model   string
	baseURL string
}

var kindInfos = map[Kind]kindInfo{
	OpenAI:     {"OPENAI_API_KEY", "OpenAI GPT-4o", "gpt-4o", "https://api.openai.com/v1/"},
	Claude:     {"CLAUDE_API_KEY", "Claude 3.5 Sonnet", "claude-3-5-sonnet-20241022", "https://api.anthropic.com/v1"},
	Grok:       {"GROK_API_KEY", "Grok", "grok-2-latest", "https://api.x.ai/v1/"},
	Perplexity: {"PERPLEXITY_API_KEY", "Perplexity Sonar", "llama-3.1-sonar-large-128k-online", "https://api.perplexity.ai"},
	Mistral:    {"MISTRAL_API_KEY", "Mistral Large", "mistral-large-latest", "https://api.mistral.ai/v1"},
}

// EnvVar returns the environment variable holding the provider's API key.
func (k Kind) EnvVar() string { return kindInfos[k].envVar }

// Label returns a display name for menus.
func (k Kind) Label() string {
	if info, ok := kindInfos[k]; ok {
		return info.label
	}
	return strings.ToUpper(string(k))
}

// DefaultModel returns the model identifier used when none is configured.
func (k Kind) DefaultModel() string { return kindInfos[k].model }

// ParseKind resolves a provider name, ignoring case and surrounding space.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := kindInfos[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return k, nil
}

// Provider generates text from a system instruction and a user prompt.
type Provider interface {
	Kind() Kind
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Resolve picks the provider name to use: override first, then the
// configured default, then OpenAI.
func Resolve(cfg types.ProviderConfig, override string) (Kind, error) {
	name := strings.TrimSpace(override)
	if name == "" {
		name = cfg.Default
	}
	if strings.TrimSpace(name) == "" {
		return OpenAI, nil
	}
	return ParseKind(name)
}

// New builds the provider selected by override (or the configured default).
// It fails immediately when the provider is unknown or has no credential;
// no network call is made.
func New(cfg types.ProviderConfig, override string) (Provider, error) {
	kind, err := Resolve(cfg, override)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.Credentials[string(kind)])
	if apiKey == "" {
		return nil, fmt.Errorf("%w for %s: set %s", ErrMissingCredential, kind, kind.EnvVar())
	}

	model := kind.DefaultModel()
	if m := cfg.Models[string(kind)]; m != "" {
		model = m
	}
	baseURL := kindInfos[kind].baseURL
	if u := cfg.BaseURLs[string(kind)]; u != "" {
		baseURL = u
	}
	client := &http.Client{Timeout: cfg.HTTPTimeout}

	switch kind {
	case OpenAI, Grok:
		return newSDKChat(kind, apiKey, model, baseURL, client), nil
	case Claude:
		return &anthropicChat{
			apiKey: apiKey,
			model:  model,
			url:    strings.TrimSuffix(baseURL, "/") + "/messages",
			client: client,
		}, nil
	default:
		return &restChat{
			kind:   kind,
			apiKey: apiKey,
			model:  model,
			url:    strings.TrimSuffix(baseURL, "/") + "/chat/completions",
			client: client,
		}, nil
	}
}

// Available reports which providers have a non-empty credential, in Kinds
// order. It only inspects cfg.
func Available(cfg types.ProviderConfig) []Kind {
	var kinds []Kind
	for _, k := range Kinds {
		if strings.TrimSpace(cfg.Credentials[string(k)]) != "" {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
