// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package brief

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// --- mock model ---

type call struct {
	system      string
	user        string
	temperature float64
}

type mockModel struct {
	calls  []call
	failAt int // 1-based call number that fails; 0 never fails
	err    error
}

func (m *mockModel) Generate(_ context.Context, system, user string, temperature float64) (string, error) {
	m.calls = append(m.calls, call{system, user, temperature})
	if m.failAt > 0 && len(m.calls) == m.failAt {
		return "", m.err
	}
	return fmt.Sprintf("answer %d", len(m.calls)), nil
}

type kindModel struct{ mockModel }

func (k *kindModel) Kind() provider.Kind { return provider.Claude }

func acmeRequest() types.BriefRequest {
	return types.BriefRequest{
		Profile:           types.ClientProfile{ClientName: "Acme", Site: "acme.com"},
		Topic:             "Widgets",
		PrimaryKeyword:    "widget",
		SecondaryKeywords: []string{"gadget", "tool"},
	}
}

func newTestGenerator(m Model, w *bytes.Buffer) *Generator {
	g := New(m, w)
	g.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	g.newID = func() string { return "brief-1" }
	return g
}

func TestGenerate_Scenario(t *testing.T) {
	m := &mockModel{}
	var progress bytes.Buffer

	rec, err := newTestGenerator(m, &progress).Generate(context.Background(), acmeRequest())
	require.NoError(t, err)

	require.Len(t, m.calls, 10)
	allPrompts := ""
	for _, c := range m.calls {
		assert.Equal(t, systemInstruction, c.system, "same system instruction on every call")
		assert.Equal(t, 0.7, c.temperature)
		assert.Contains(t, c.user, "widget")
		allPrompts += c.user
	}
	assert.Contains(t, allPrompts, "Widgets")
	assert.Contains(t, allPrompts, "gadget, tool")
	assert.Contains(t, allPrompts, "acme.com")

	assert.Equal(t, "Widgets", rec.Topic)
	assert.Equal(t, "gadget, tool", rec.SecondaryKW)
	assert.Equal(t, "widget", rec.PrimaryKW)
	assert.Equal(t, "Acme", rec.ClientName)
	assert.Equal(t, "acme.com", rec.Site)
	assert.Equal(t, "brief-1", rec.ID)
	assert.Equal(t, 2026, rec.GeneratedAt.Year())
	assert.Empty(t, rec.Provider)

	assert.Equal(t, 12, strings.Count(progress.String(), "Generating "))
}

func TestGenerate_SectionKeysExactlyMatchOrder(t *testing.T) {
	rec, err := New(&mockModel{}, nil).Generate(context.Background(), acmeRequest())
	require.NoError(t, err)

	require.Len(t, rec.Sections, len(types.SectionOrder))
	for _, key := range types.SectionOrder {
		_, ok := rec.Sections[key]
		assert.True(t, ok, "missing section %s", key)
	}
}

func TestGenerate_CallOrder(t *testing.T) {
	m := &mockModel{}
	rec, err := New(m, nil).Generate(context.Background(), acmeRequest())
	require.NoError(t, err)

	remote := []types.SectionKey{
		types.SectionPageType, types.SectionPageTitle, types.SectionMetaDescription,
		types.SectionTargetURL, types.SectionH1, types.SectionSummaryBullets,
		types.SectionInternalLinks, types.SectionAudience, types.SectionCTA,
		types.SectionHeadingsFAQ,
	}
	for i, key := range remote {
		assert.Equal(t, fmt.Sprintf("answer %d", i+1), rec.Sections[key], key)
	}
	assert.Len(t, m.calls, len(remote), "restrictions and requirements make no call")
}

func TestGenerate_FailureAbortsWithoutRecord(t *testing.T) {
	boom := errors.New("401 unauthorized")
	m := &mockModel{failAt: 4, err: boom}

	rec, err := New(m, nil).Generate(context.Background(), acmeRequest())

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), string(types.SectionTargetURL))
	assert.Len(t, m.calls, 4, "no calls after the failure")
}

func TestGenerate_RecordsProviderKind(t *testing.T) {
	rec, err := New(&kindModel{}, nil).Generate(context.Background(), acmeRequest())
	require.NoError(t, err)
	assert.Equal(t, "claude", rec.Provider)
}

func TestGenerate_LocalSectionsUseProfile(t *testing.T) {
	req := acmeRequest()
	req.Profile.Restrictions.Brand = []string{"No slang"}
	req.Profile.Requirements.Tone = "Friendly"
	req.Profile.Requirements.MandatoryMentions = []string{"ISO 9001"}

	m := &mockModel{}
	rec, err := New(m, nil).Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, FormatRestrictions(req.Profile), rec.Sections[types.SectionRestrictions])
	assert.Equal(t, FormatRequirements(req.Profile), rec.Sections[types.SectionRequirements])
	assert.Contains(t, m.calls[len(m.calls)-1].user, "Mandatory mentions: ISO 9001")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.BriefRequest)
		errMsg string
	}{
		{"valid", func(*types.BriefRequest) {}, ""},
		{"no client name", func(r *types.BriefRequest) { r.Profile.ClientName = "" }, "client name"},
		{"no site", func(r *types.BriefRequest) { r.Profile.Site = " " }, "no site"},
		{"no topic", func(r *types.BriefRequest) { r.Topic = "" }, "topic"},
		{"no primary keyword", func(r *types.BriefRequest) { r.PrimaryKeyword = "  " }, "primary keyword"},
		{"no secondary keywords", func(r *types.BriefRequest) { r.SecondaryKeywords = nil }, "secondary keyword"},
		{"blank secondary keyword", func(r *types.BriefRequest) { r.SecondaryKeywords = []string{"a", " "} }, "secondary keyword 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := acmeRequest()
			tt.mutate(&req)

			m := &mockModel{}
			rec, err := New(m, nil).Generate(context.Background(), req)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, rec)
			assert.Empty(t, m.calls, "validation happens before any call")
		})
	}
}

func TestFormatRestrictions(t *testing.T) {
	p := types.ClientProfile{Restrictions: types.Restrictions{
		Legal:            []string{"No medical claims"},
		Brand:            []string{"No slang", "No competitor names"},
		ContentIntegrity: []string{"Cite sources"},
	}}

	want := "Legal restrictions:\n- No medical claims\n" +
		"\nBrand restrictions:\n- No slang\n- No competitor names\n" +
		"\nSEO restrictions:\n" +
		"\nContent-integrity restrictions:\n- Cite sources\n"

	assert.Equal(t, want, FormatRestrictions(p))
	assert.Equal(t, FormatRestrictions(p), FormatRestrictions(p), "deterministic")
}

func TestFormatRequirements(t *testing.T) {
	tests := []struct {
		name string
		req  types.Requirements
		want string
	}{
		{
			name: "all set",
			req: types.Requirements{
				WordCount: "800-1200", ReadabilityScore: "8th grade level", Tone: "Professional",
				MandatoryMentions: []string{"Acme Pro", "free trial"}, SchemaRequired: true,
				ImagesRequired: 2, CTARequired: true, InternalLinksMin: 6,
			},
			want: "- Word count: 800-1200\n- Readability: 8th grade level\n- Tone: Professional\n" +
				"- Mandatory mentions: Acme Pro, free trial\n- Schema markup required\n" +
				"- Minimum images: 2\n- CTA required\n- Minimum internal links: 6\n" +
				"\n" + requirementsSelfCheck,
		},
		{
			name: "nothing set",
			req:  types.Requirements{},
			want: "\n" + requirementsSelfCheck,
		},
		{
			name: "defaults",
			req:  types.DefaultProfile("x").Requirements,
			want: "- CTA required\n- Minimum internal links: 6\n\n" + requirementsSelfCheck,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.ClientProfile{Requirements: tt.req}
			assert.Equal(t, tt.want, FormatRequirements(p))
		})
	}
}
