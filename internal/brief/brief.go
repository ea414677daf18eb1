// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package brief turns a client profile, a topic and keywords into a content
// brief. Ten sections come from the text-generation model, one call each,
// in a fixed order; restrictions and requirements are formatted locally from
// the profile. The first failed call aborts the brief.
package brief

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// Temperature is used for every section call.
const Temperature = 0.7

// ErrInvalidRequest is returned when a request fails validation. No model
// call is made in that case.
var ErrInvalidRequest = errors.New("invalid brief request")

// Model abstracts the text-generation provider so tests can supply a mock.
type Model interface {
	Generate(ctx context.Context, system, user string, temperature float64) (string, error)
}

// step produces one section. Exactly one of prompt and local is set.
type step struct {
	key    types.SectionKey
	label  string
	prompt *template.Template
	local  func(types.ClientProfile) string
}

// steps is the generation order.
var steps = []step{
	{key: types.SectionPageType, label: "Page Type", prompt: pageTypePrompt},
	{key: types.SectionPageTitle, label: "Page Title", prompt: pageTitlePrompt},
	{key: types.SectionMetaDescription, label: "Meta Description", prompt: metaDescriptionPrompt},
	{key: types.SectionTargetURL, label: "Target URL", prompt: targetURLPrompt},
	{key: types.SectionH1, label: "H1 Heading", prompt: h1Prompt},
	{key: types.SectionSummaryBullets, label: "Summary Bullets", prompt: summaryBulletsPrompt},
	{key: types.SectionInternalLinks, label: "Internal Linking Table", prompt: internalLinksPrompt},
	{key: types.SectionAudience, label: "Audience Definition", prompt: audiencePrompt},
	{key: types.SectionCTA, label: "CTA/Path", prompt: ctaPrompt},
	{key: types.SectionRestrictions, label: "Restrictions", local: FormatRestrictions},
	{key: types.SectionRequirements, label: "Requirements", local: FormatRequirements},
	{key: types.SectionHeadingsFAQ, label: "Suggested Headings & FAQ", prompt: headingsFAQPrompt},
}

// Generator produces briefs with one model.
type Generator struct {
	model    Model
	progress io.Writer

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() string
}

// New returns a Generator that calls model and reports one progress line
// per section to progress. A nil progress discards the lines.
func New(model Model, progress io.Writer) *Generator {
	if progress == nil {
		progress = io.Discard
	}
	return &Generator{
		model:    model,
		progress: progress,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Validate checks a request before any model call.
func Validate(req types.BriefRequest) error {
	switch {
	case strings.TrimSpace(req.Profile.ClientName) == "":
		return fmt.Errorf("%w: profile has no client name", ErrInvalidRequest)
	case strings.TrimSpace(req.Profile.Site) == "":
		return fmt.Errorf("%w: profile %q has no site", ErrInvalidRequest, req.Profile.ClientName)
	case strings.TrimSpace(req.Topic) == "":
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	case strings.TrimSpace(req.PrimaryKeyword) == "":
		return fmt.Errorf("%w: primary keyword is required", ErrInvalidRequest)
	case len(req.SecondaryKeywords) == 0:
		return fmt.Errorf("%w: at least one secondary keyword is required", ErrInvalidRequest)
	}
	for i, kw := range req.SecondaryKeywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("%w: secondary keyword %d is empty", ErrInvalidRequest, i+1)
		}
	}
	return nil
}

// Generate builds a brief for req. It returns either a record holding every
// section in types.SectionOrder or an error; never a partial record.
func (g *Generator) Generate(ctx context.Context, req types.BriefRequest) (*types.BriefRecord, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	data := newPromptData(req)
	sections := make(map[types.SectionKey]string, len(steps))

	for _, s := range steps {
		fmt.Fprintf(g.progress, "Generating %s...\n", s.label)

		if s.local != nil {
			sections[s.key] = s.local(req.Profile)
			continue
		}

		prompt, err := render(s.prompt, data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s prompt: %w", s.key, err)
		}

		start := time.Now()
		text, err := g.model.Generate(ctx, systemInstruction, prompt, Temperature)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", s.key, err)
		}
		slog.Debug("section generated", "section", s.key, "chars", len(text), "elapsed", time.Since(start))

		sections[s.key] = text
	}

	rec := &types.BriefRecord{
		ID:          g.newID(),
		GeneratedAt: g.now(),
		ClientName:  req.Profile.ClientName,
		Site:        req.Profile.Site,
		Topic:       req.Topic,
		PrimaryKW:   req.PrimaryKeyword,
		SecondaryKW: data.SecondaryKWs,
		Sections:    sections,
	}
	if k, ok := g.model.(interface{ Kind() provider.Kind }); ok {
		rec.Provider = string(k.Kind())
	}
	return rec, nil
}
