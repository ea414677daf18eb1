// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package brief

import (
	"fmt"
	"strings"

	"github.com/pdiddy/content-brief/pkg/types"
)

// requirementsSelfCheck closes every requirements section.
const requirementsSelfCheck = "Self-check: all mandatory items / site fit / brand consistent / tone aligned"

// FormatRestrictions lists the profile's four restriction groups. It is
// pure: the same profile always yields the same text.
func FormatRestrictions(p types.ClientProfile) string {
	groups := []struct {
		label string
		items []string
	}{
		{"Legal restrictions", p.Restrictions.Legal},
		{"Brand restrictions", p.Restrictions.Brand},
		{"SEO restrictions", p.Restrictions.SEO},
		{"Content-integrity restrictions", p.Restrictions.ContentIntegrity},
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", g.label)
		for _, item := range g.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	return b.String()
}

// FormatRequirements lists the profile's set requirements, skipping empty
// strings, zero counts and false flags, then appends the self-check line.
func FormatRequirements(p types.ClientProfile) string {
	r := p.Requirements

	var b strings.Builder
	if r.WordCount != "" {
		fmt.Fprintf(&b, "- Word count: %s\n", r.WordCount)
	}
	if r.ReadabilityScore != "" {
		fmt.Fprintf(&b, "- Readability: %s\n", r.ReadabilityScore)
	}
	if r.Tone != "" {
		fmt.Fprintf(&b, "- Tone: %s\n", r.Tone)
	}
	if len(r.MandatoryMentions) > 0 {
		fmt.Fprintf(&b, "- Mandatory mentions: %s\n", strings.Join(r.MandatoryMentions, ", "))
	}
	if r.SchemaRequired {
		b.WriteString("- Schema markup required\n")
	}
	if r.ImagesRequired > 0 {
		fmt.Fprintf(&b, "- Minimum images: %d\n", r.ImagesRequired)
	}
	if r.CTARequired {
		b.WriteString("- CTA required\n")
	}
	if r.InternalLinksMin > 0 {
		fmt.Fprintf(&b, "- Minimum internal links: %d\n", r.InternalLinksMin)
	}

	b.WriteString("\n" + requirementsSelfCheck)
	return b.String()
}
