// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-brief/pkg/types"
)

// captured holds the parts of an incoming request the tests inspect.
type captured struct {
	path    string
	headers http.Header
	body    map[string]any
}

// stubServer answers every request with status and body and records the
// last request it saw.
func stubServer(t *testing.T, status int, body string) (*httptest.Server, *captured, *int32) {
	t.Helper()
	var got captured
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		got.path = r.URL.Path
		got.headers = r.Header.Clone()
		got.body = map[string]any{}
		json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts, &got, &calls
}

func testConfig(kind Kind, baseURL string) types.ProviderConfig {
	return types.ProviderConfig{
		Credentials: map[string]string{string(kind): "test-key"},
		BaseURLs:    map[string]string{string(kind): baseURL},
	}
}

const chatCompletionOK = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "test",
  "choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "generated text"}}]
}`

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"openai", OpenAI, false},
		{" Claude ", Claude, false},
		{"GROK", Grok, false},
		{"perplexity", Perplexity, false},
		{"mistral", Mistral, false},
		{"gemini", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Selection(t *testing.T) {
	cfg := types.ProviderConfig{
		Default: "mistral",
		Credentials: map[string]string{
			"openai":  "sk",
			"mistral": "mk",
		},
	}

	p, err := New(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, Mistral, p.Kind())

	p, err = New(cfg, "openai")
	require.NoError(t, err)
	assert.Equal(t, OpenAI, p.Kind())

	cfg.Default = ""
	p, err = New(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, OpenAI, p.Kind(), "falls back to openai")
}

func TestNew_MissingCredentialFailsFast(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	cfg := types.ProviderConfig{
		Credentials: map[string]string{"openai": "sk", "claude": "  "},
		BaseURLs:    map[string]string{"claude": ts.URL},
	}

	_, err := New(cfg, "claude")
	require.ErrorIs(t, err, ErrMissingCredential)
	assert.Contains(t, err.Error(), "CLAUDE_API_KEY")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	_, err = New(cfg, "bard")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAvailable(t *testing.T) {
	tests := []struct {
		name  string
		creds map[string]string
		want  []Kind
	}{
		{"none", map[string]string{}, nil},
		{"subset in menu order", map[string]string{"mistral": "m", "openai": "o", "grok": "g"}, []Kind{OpenAI, Grok, Mistral}},
		{"blank keys ignored", map[string]string{"claude": "", "perplexity": "p"}, []Kind{Perplexity}},
		{"unknown names ignored", map[string]string{"gemini": "x"}, nil},
		{"all", map[string]string{"openai": "1", "claude": "2", "grok": "3", "perplexity": "4", "mistral": "5"}, Kinds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Available(types.ProviderConfig{Credentials: tt.creds})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSDKChat_Generate(t *testing.T) {
	for _, kind := range []Kind{OpenAI, Grok} {
		t.Run(string(kind), func(t *testing.T) {
			ts, got, _ := stubServer(t, http.StatusOK, chatCompletionOK)

			p, err := New(testConfig(kind, ts.URL+"/"), string(kind))
			require.NoError(t, err)

			text, err := p.Generate(context.Background(), "be terse", "write a title", 0.7)
			require.NoError(t, err)
			assert.Equal(t, "generated text", text)

			assert.Equal(t, "/chat/completions", got.path)
			assert.Equal(t, "Bearer test-key", got.headers.Get("Authorization"))
			assert.Equal(t, kind.DefaultModel(), got.body["model"])
			assert.InDelta(t, 0.7, got.body["temperature"], 1e-9)

			msgs, ok := got.body["messages"].([]any)
			require.True(t, ok)
			require.Len(t, msgs, 2)
			assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
			assert.Equal(t, "be terse", msgs[0].(map[string]any)["content"])
			assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
			assert.Equal(t, "write a title", msgs[1].(map[string]any)["content"])
		})
	}
}

func TestSDKChat_ErrorIsNotRetried(t *testing.T) {
	ts, _, calls := stubServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)

	p, err := New(testConfig(OpenAI, ts.URL+"/"), "openai")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "s", "u", 0.7)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestSDKChat_NoChoices(t *testing.T) {
	ts, _, _ := stubServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)

	p, err := New(testConfig(Grok, ts.URL+"/"), "grok")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "s", "u", 0.7)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicChat_Generate(t *testing.T) {
	ts, got, _ := stubServer(t, http.StatusOK, `{"content":[{"type":"text","text":"claude says hi"}]}`)

	cfg := testConfig(Claude, ts.URL)
	cfg.Models = map[string]string{"claude": "claude-custom"}
	p, err := New(cfg, "claude")
	require.NoError(t, err)

	text, err := p.Generate(context.Background(), "system rules", "user ask", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "claude says hi", text)

	assert.Equal(t, "/messages", got.path)
	assert.Equal(t, "test-key", got.headers.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, got.headers.Get("anthropic-version"))
	assert.Equal(t, "claude-custom", got.body["model"])
	assert.Equal(t, "system rules", got.body["system"])
	assert.EqualValues(t, claudeMaxTokens, got.body["max_tokens"])

	msgs := got.body["messages"].([]any)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestAnthropicChat_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, nil},
		{"no text block", http.StatusOK, `{"content":[{"type":"tool_use"}]}`, ErrEmptyResponse},
		{"malformed", http.StatusOK, `{"content":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _, _ := stubServer(t, tt.status, tt.body)
			p, err := New(testConfig(Claude, ts.URL), "claude")
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), "s", "u", 0.7)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRestChat_Generate(t *testing.T) {
	for _, kind := range []Kind{Perplexity, Mistral} {
		t.Run(string(kind), func(t *testing.T) {
			ts, got, _ := stubServer(t, http.StatusOK, chatCompletionOK)

			p, err := New(testConfig(kind, ts.URL), string(kind))
			require.NoError(t, err)

			text, err := p.Generate(context.Background(), "sys", "usr", 0.7)
			require.NoError(t, err)
			assert.Equal(t, "generated text", text)
			assert.Equal(t, "/chat/completions", got.path)
			assert.Equal(t, "Bearer test-key", got.headers.Get("Authorization"))
			assert.Equal(t, kind.DefaultModel(), got.body["model"])
		})
	}
}

func TestRestChat_StatusErrorCarriesBody(t *testing.T) {
	ts, _, calls := stubServer(t, http.StatusForbidden, `{"message":"quota exceeded"}`)

	p, err := New(testConfig(Mistral, ts.URL), "mistral")
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "s", "u", 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.False(t, errors.Is(err, ErrEmptyResponse))
}
