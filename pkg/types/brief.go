// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SectionKey names one section of a generated brief.
type SectionKey string

const (
	SectionPageType        SectionKey = "page_type"
	SectionPageTitle       SectionKey = "page_title"
	SectionMetaDescription SectionKey = "meta_description"
	SectionTargetURL       SectionKey = "target_url"
	SectionH1              SectionKey = "h1"
	SectionSummaryBullets  SectionKey = "summary_bullets"
	SectionInternalLinks   SectionKey = "internal_links"
	SectionAudience        SectionKey = "audience"
	SectionCTA             SectionKey = "cta"
	SectionRestrictions    SectionKey = "restrictions"
	SectionRequirements    SectionKey = "requirements"
	SectionHeadingsFAQ     SectionKey = "headings_faq"
)

// SectionOrder is the display and export order of brief sections.
var SectionOrder = []SectionKey{
	SectionPageType,
	SectionPageTitle,
	SectionMetaDescription,
	SectionTargetURL,
	SectionH1,
	SectionSummaryBullets,
	SectionInternalLinks,
	SectionAudience,
	SectionCTA,
	SectionRestrictions,
	SectionRequirements,
	SectionHeadingsFAQ,
}

// sectionTitles are the headings used when a brief is rendered.
var sectionTitles = map[SectionKey]string{
	SectionPageType:        "Page Type Identification",
	SectionPageTitle:       "Page Title",
	SectionMetaDescription: "Meta Description",
	SectionTargetURL:       "Target URL",
	SectionH1:              "H1 Heading",
	SectionSummaryBullets:  "Summary Bullets",
	SectionInternalLinks:   "Internal Linking",
	SectionAudience:        "Audience Definition",
	SectionCTA:             "CTA / Path",
	SectionRestrictions:    "Restrictions",
	SectionRequirements:    "Requirements",
	SectionHeadingsFAQ:     "Suggested Headings & Key Points (+ FAQ)",
}

// Title returns the human-readable heading for the section.
func (k SectionKey) Title() string {
	if t, ok := sectionTitles[k]; ok {
		return t
	}
	return string(k)
}

// BriefRequest is the input to one brief generation.
type BriefRequest struct {
	Profile        ClientProfile
	Topic          string
	PrimaryKeyword string

	// SecondaryKeywords must be non-empty; order is preserved in prompts.
	SecondaryKeywords []string
}

// BriefRecord is the result of one generation. Sections holds exactly the
// keys in SectionOrder. A record is never modified after it is returned.
type BriefRecord struct {
	ID          string                `json:"id" yaml:"id"`
	Provider    string                `json:"provider" yaml:"provider"`
	GeneratedAt time.Time             `json:"generated_at" yaml:"generated_at"`
	ClientName  string                `json:"client_name" yaml:"client_name"`
	Site        string                `json:"site" yaml:"site"`
	Topic       string                `json:"topic" yaml:"topic"`
	PrimaryKW   string                `json:"primary_kw" yaml:"primary_kw"`
	SecondaryKW string                `json:"secondary_kws" yaml:"secondary_kws"`
	Sections    map[SectionKey]string `json:"sections" yaml:"sections"`
}

// Section returns the text for key, or "" when absent.
func (r *BriefRecord) Section(key SectionKey) string {
	return r.Sections[key]
}
