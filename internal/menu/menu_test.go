// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// --- fakes ---

type fakeGenerator struct {
	kind provider.Kind
	reqs []types.BriefRequest
	err  error
}

func (g *fakeGenerator) Generate(_ context.Context, req types.BriefRequest) (*types.BriefRecord, error) {
	g.reqs = append(g.reqs, req)
	if g.err != nil {
		return nil, g.err
	}
	return &types.BriefRecord{ClientName: req.Profile.ClientName, Topic: req.Topic, Provider: string(g.kind)}, nil
}

// brokenStore wraps a working store and fails the calls listed in failing.
type brokenStore struct {
	profile.Store
	failing map[string]bool
}

var errConnRefused = errors.New("connection refused")

func (s brokenStore) List(ctx context.Context) ([]string, error) {
	if s.failing["list"] {
		return nil, errConnRefused
	}
	return s.Store.List(ctx)
}

func (s brokenStore) Get(ctx context.Context, name string) (*types.ClientProfile, error) {
	if s.failing["get"] {
		return nil, errConnRefused
	}
	return s.Store.Get(ctx, name)
}

func (s brokenStore) Create(ctx context.Context, name string, data map[string]any) error {
	if s.failing["create"] {
		return errConnRefused
	}
	return s.Store.Create(ctx, name, data)
}

func (s brokenStore) Update(ctx context.Context, name string, partial map[string]any) error {
	if s.failing["update"] {
		return errConnRefused
	}
	return s.Store.Update(ctx, name, partial)
}

func (s brokenStore) Delete(ctx context.Context, name string) (bool, error) {
	if s.failing["delete"] {
		return false, errConnRefused
	}
	return s.Store.Delete(ctx, name)
}

type fakeExporter struct {
	dir  string
	recs []*types.BriefRecord
}

func (e *fakeExporter) WriteFile(dir string, rec *types.BriefRecord) (string, error) {
	e.dir = dir
	e.recs = append(e.recs, rec)
	return filepath.Join(dir, "brief.docx"), nil
}

type harness struct {
	store    *profile.FileStore
	gen      *fakeGenerator
	exporter *fakeExporter
	kinds    []provider.Kind
	cfg      Config
}

func newHarness(t *testing.T, kinds ...provider.Kind) *harness {
	t.Helper()
	store, err := profile.NewFileStore(t.TempDir())
	require.NoError(t, err)

	h := &harness{store: store, gen: &fakeGenerator{}, exporter: &fakeExporter{}}
	h.cfg = Config{
		Store:     store,
		Providers: kinds,
		NewGenerator: func(kind provider.Kind, _ io.Writer) (BriefGenerator, error) {
			h.kinds = append(h.kinds, kind)
			h.gen.kind = kind
			return h.gen, nil
		},
		Exporter:  h.exporter,
		OutputDir: "out",
	}
	return h
}

func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(in, &out, h.cfg).Run(context.Background()))
	return out.String()
}

func (h *harness) seed(t *testing.T, name, site string) {
	t.Helper()
	require.NoError(t, h.store.Create(context.Background(), name, map[string]any{"site": site}))
}

// --- main menu ---

func TestRun_ExitAndInvalidChoice(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	out := h.run(t, "9", "3")
	assert.Contains(t, out, "Content Brief Creator")
	assert.Contains(t, out, "Invalid choice. Please enter 1, 2, or 3.")
	assert.Contains(t, out, "Exiting...")
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	var out bytes.Buffer
	err := New(strings.NewReader(""), &out, h.cfg).Run(context.Background())
	assert.NoError(t, err)
}

// --- create brief ---

func TestCreateBrief(t *testing.T) {
	h := newHarness(t, provider.OpenAI, provider.Claude)
	h.seed(t, "Acme", "acme.com")

	var recorded string
	h.cfg.OnExported = func(path string, _ *types.BriefRecord) error {
		recorded = path
		return nil
	}

	// create brief, pick claude and Acme, then topic and keywords
	out := h.run(t, "1", "2", "1", "Widgets", "widget", "gadget, ,tool", "3")

	assert.Equal(t, []provider.Kind{provider.Claude}, h.kinds)
	require.Len(t, h.gen.reqs, 1)
	req := h.gen.reqs[0]
	assert.Equal(t, "Acme", req.Profile.ClientName)
	assert.Equal(t, "Widgets", req.Topic)
	assert.Equal(t, "widget", req.PrimaryKeyword)
	assert.Equal(t, []string{"gadget", "tool"}, req.SecondaryKeywords)

	require.Len(t, h.exporter.recs, 1)
	assert.Equal(t, "out", h.exporter.dir)
	assert.Equal(t, filepath.Join("out", "brief.docx"), recorded)
	assert.Contains(t, out, "Using AI provider: CLAUDE")
	assert.Contains(t, out, "Site: acme.com")
	assert.Contains(t, out, "File saved to: "+filepath.Join("out", "brief.docx"))
}

func TestCreateBrief_ProviderFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"out of range", "7"},
		{"not a number", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, provider.Mistral, provider.Grok)
			h.seed(t, "Acme", "acme.com")
			h.run(t, "1", tt.input, "1", "T", "p", "s", "3")
			assert.Equal(t, []provider.Kind{provider.Mistral}, h.kinds)
		})
	}
}

func TestCreateBrief_InputProblems(t *testing.T) {
	tests := []struct {
		name  string
		seed  bool
		lines []string
		want  string
	}{
		{"no clients", false, []string{"1", "1", "3"}, "No clients found."},
		{"bad client", true, []string{"1", "1", "5", "3"}, "Invalid selection."},
		{"no topic", true, []string{"1", "1", "1", "", "3"}, "Topic is required."},
		{"no primary", true, []string{"1", "1", "1", "T", "", "3"}, "Primary keyword is required."},
		{"no secondary", true, []string{"1", "1", "1", "T", "p", " , ", "3"}, "At least one secondary keyword is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, provider.OpenAI)
			if tt.seed {
				h.seed(t, "Acme", "acme.com")
			}
			out := h.run(t, tt.lines...)
			assert.Contains(t, out, tt.want)
			assert.Empty(t, h.gen.reqs)
			assert.Empty(t, h.exporter.recs)
		})
	}
}

func TestCreateBrief_NoProviders(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "1", "3")
	assert.Contains(t, out, "No AI provider API keys found")
	assert.Empty(t, h.kinds)
}

func TestCreateBrief_GenerationFailureExportsNothing(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	h.seed(t, "Acme", "acme.com")
	h.gen.err = errors.New("HTTP 401: bad key")

	out := h.run(t, "1", "1", "1", "T", "p", "s", "3")
	assert.Contains(t, out, "Error generating brief: HTTP 401: bad key")
	assert.Empty(t, h.exporter.recs)
	assert.Contains(t, out, "Exiting...", "returns to the main menu")
}

func TestCreateBrief_GeneratorInitFailure(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	h.cfg.NewGenerator = func(provider.Kind, io.Writer) (BriefGenerator, error) {
		return nil, fmt.Errorf("%w for openai: set OPENAI_API_KEY", provider.ErrMissingCredential)
	}
	out := h.run(t, "1", "1", "3")
	assert.Contains(t, out, "Error initializing AI provider")
}

// --- client management ---

func TestManageClients_CreateViewList(t *testing.T) {
	h := newHarness(t, provider.OpenAI)

	out := h.run(t,
		"2", "2", "Beta Ltd", "beta.io",
		// legal, brand, seo, content integrity
		"No guarantees", "",
		"",
		"",
		"Cite sources", "",
		// word count, tone, mandatory mentions
		"800-1200", "Friendly",
		"Beta Pro", "",
		// list, then view the first client
		"1",
		"3", "1",
		"6", "3",
	)

	assert.Contains(t, out, "Client 'Beta Ltd' created successfully.")
	assert.Contains(t, out, "1. Beta Ltd")
	assert.Contains(t, out, `"site": "beta.io"`)

	p, err := h.store.Get(context.Background(), "Beta Ltd")
	require.NoError(t, err)
	assert.Equal(t, []string{"No guarantees"}, p.Restrictions.Legal)
	assert.Equal(t, []string{}, p.Restrictions.Brand)
	assert.Equal(t, []string{"Cite sources"}, p.Restrictions.ContentIntegrity)
	assert.Equal(t, "8th grade level", p.Requirements.ReadabilityScore)
	assert.Equal(t, []string{"Beta Pro"}, p.Requirements.MandatoryMentions)
	assert.True(t, p.Requirements.SchemaRequired)
	assert.Equal(t, 2, p.Requirements.ImagesRequired)
}

func TestManageClients_CreateDuplicate(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	h.seed(t, "Acme", "acme.com")

	out := h.run(t, "2", "2", "Acme", "other.com", "", "", "", "", "", "", "", "6", "3")
	assert.Contains(t, out, "Client 'Acme' already exists.")

	p, err := h.store.Get(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", p.Site)
}

func TestManageClients_Update(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	require.NoError(t, h.store.Create(context.Background(), "Acme", map[string]any{
		"site":         "acme.com",
		"restrictions": map[string]any{"legal": []string{"No claims"}},
		"requirements": map[string]any{"tone": "Formal", "word_count": "500"},
	}))

	// new site and tone, keep the word count, add one legal restriction
	out := h.run(t,
		"2", "4", "1",
		"acme.co.uk", "Friendly", "",
		"No prices", "",
		"", "", "",
		"6", "3",
	)
	assert.Contains(t, out, "Client 'Acme' updated successfully.")

	p, err := h.store.Get(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "acme.co.uk", p.Site)
	assert.Equal(t, "Friendly", p.Requirements.Tone)
	assert.Equal(t, "500", p.Requirements.WordCount)
	assert.Equal(t, []string{"No claims", "No prices"}, p.Restrictions.Legal)
	assert.True(t, p.Requirements.CTARequired)
}

func TestManageClients_UpdateNoChanges(t *testing.T) {
	h := newHarness(t, provider.OpenAI)
	h.seed(t, "Acme", "acme.com")

	out := h.run(t, "2", "4", "1", "", "", "", "", "", "", "", "6", "3")
	assert.Contains(t, out, "No changes.")
}

func TestManageClients_Delete(t *testing.T) {
	tests := []struct {
		name    string
		confirm string
		gone    bool
	}{
		{"confirmed", "yes", true},
		{"confirmed upper case", "YES", true},
		{"declined", "no", false},
		{"y is not enough", "y", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, provider.OpenAI)
			h.seed(t, "Acme", "acme.com")

			h.run(t, "2", "5", "1", tt.confirm, "6", "3")

			ok, err := h.store.Exists(context.Background(), "Acme")
			require.NoError(t, err)
			assert.Equal(t, !tt.gone, ok)
		})
	}
}

func TestManageClients_StoreFailuresKeepSession(t *testing.T) {
	tests := []struct {
		name    string
		failing string
		input   []string
		want    string
	}{
		{"list", "list", []string{"2", "1", "6", "3"}, "Error listing clients: connection refused"},
		{"view", "get", []string{"2", "3", "1", "6", "3"}, "Error loading client: connection refused"},
		{"create", "create", []string{"2", "2", "Beta", "beta.com", "", "", "", "", "", "", "", "6", "3"}, "Error creating client: connection refused"},
		{"update", "update", []string{"2", "4", "1", "acme.co.uk", "", "", "", "", "", "", "6", "3"}, "Error updating client: connection refused"},
		{"delete", "delete", []string{"2", "5", "1", "yes", "6", "3"}, "Error deleting client: connection refused"},
		{"brief client list", "list", []string{"1", "1", "3"}, "Error listing clients: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, provider.OpenAI)
			h.seed(t, "Acme", "acme.com")
			h.cfg.Store = brokenStore{Store: h.store, failing: map[string]bool{tt.failing: true}}

			out := h.run(t, tt.input...)
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Exiting...", "session continues after the failure")
		})
	}
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitKeywords(" a , ,b c,"))
	assert.Nil(t, splitKeywords(" , "))
}
