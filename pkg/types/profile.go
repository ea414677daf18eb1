// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared by the brief generator, the profile
// stores, the document exporter and the front ends.
package types

// Restrictions groups the four lists of things a brief must not do.
type Restrictions struct {
	Legal            []string `json:"legal" yaml:"legal"`
	Brand            []string `json:"brand" yaml:"brand"`
	SEO              []string `json:"seo" yaml:"seo"`
	ContentIntegrity []string `json:"content_integrity" yaml:"content_integrity"`
}

// Requirements holds the content requirements a writer must satisfy.
type Requirements struct {
	// WordCount is a free-text range such as "800-1200".
	WordCount string `json:"word_count" yaml:"word_count"`

	// ReadabilityScore is the readability target (e.g. "8th grade level").
	ReadabilityScore string `json:"readability_score" yaml:"readability_score"`

	Tone              string   `json:"tone" yaml:"tone"`
	MandatoryMentions []string `json:"mandatory_mentions" yaml:"mandatory_mentions"`
	SchemaRequired    bool     `json:"schema_required" yaml:"schema_required"`

	// ImagesRequired is the minimum number of images.
	ImagesRequired int  `json:"images_required" yaml:"images_required"`
	CTARequired    bool `json:"cta_required" yaml:"cta_required"`

	// InternalLinksMin is the minimum number of internal links.
	InternalLinksMin int `json:"internal_links_min" yaml:"internal_links_min"`
}

// ClientProfile is a named record of a client's site, brand voice,
// restrictions and requirements. ClientName is the unique key.
type ClientProfile struct {
	ClientName     string       `json:"client_name" yaml:"client_name"`
	Site           string       `json:"site" yaml:"site"`
	Industry       string       `json:"industry" yaml:"industry"`
	TargetAudience string       `json:"target_audience" yaml:"target_audience"`
	BrandVoice     string       `json:"brand_voice" yaml:"brand_voice"`
	ContentGoals   string       `json:"content_goals" yaml:"content_goals"`
	Information    []string     `json:"information" yaml:"information"`
	Restrictions   Restrictions `json:"restrictions" yaml:"restrictions"`
	Requirements   Requirements `json:"requirements" yaml:"requirements"`
}

// DefaultProfile returns the profile every new client starts from before
// caller data is merged over it.
func DefaultProfile(name string) ClientProfile {
	return ClientProfile{
		ClientName:  name,
		Information: []string{},
		Restrictions: Restrictions{
			Legal:            []string{},
			Brand:            []string{},
			SEO:              []string{},
			ContentIntegrity: []string{},
		},
		Requirements: Requirements{
			MandatoryMentions: []string{},
			CTARequired:       true,
			InternalLinksMin:  6,
		},
	}
}
