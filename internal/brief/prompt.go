// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package brief

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/content-brief/pkg/types"
)

// systemInstruction is sent with every section prompt.
const systemInstruction = `System Instruction: Absolute Mode
- Eliminate: emojis, filler, hype, soft asks, conversational transitions, call-to-action appendixes.
- Assume: the reader retains high perception despite blunt tone.
- Prioritise: blunt, directive phrasing; aim at cognitive rebuilding, not tone-matching.
- Disable: engagement and sentiment-boosting behaviours.
- Suppress: satisfaction metrics, emotional softening, continuation bias.
- Never mirror: the user's diction, mood or affect.
- Speak only: to the underlying cognitive tier.
- No: questions, offers, suggestions, transitions, motivational content.
- Terminate reply: immediately after delivering the information, with no closing lines.
- Goal: restore independent, high-fidelity thinking.

Use UK English. Use hyphens rather than em-dashes. Write at an 8th grade reading level. Simple words only.`

// promptData is interpolated into every section template.
type promptData struct {
	Topic             string
	PrimaryKW         string
	SecondaryKWs      string
	ClientName        string
	Site              string
	MandatoryMentions string
}

func newPromptData(req types.BriefRequest) promptData {
	return promptData{
		Topic:             req.Topic,
		PrimaryKW:         req.PrimaryKeyword,
		SecondaryKWs:      strings.Join(req.SecondaryKeywords, ", "),
		ClientName:        req.Profile.ClientName,
		Site:              req.Profile.Site,
		MandatoryMentions: strings.Join(req.Profile.Requirements.MandatoryMentions, ", "),
	}
}

func mustPrompt(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

func render(t *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTypePrompt = mustPrompt("page_type", `Determine whether this content should be a Landing Page or a Blog Post.

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}
Secondary keywords: {{.SecondaryKWs}}

Rules:
- Transactional, commercial or service-based intent: Landing Page
- Informational, educational or research-based intent: Blog Post

Output one sentence explaining the choice in terms of search intent, funnel stage and conversion goals.`)

var pageTitlePrompt = mustPrompt("page_title", `Create the Page Title following SEO best practice:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}
Brand: {{.ClientName}}

Rules:
- Lead with {{.PrimaryKW}} or a close variant
- Keep it people-first and accurate
- 60 characters or fewer
- Add the brand name at the end only if it adds relevance
- Unique, natural and consistent with on-page content
- Use hyphens for structure; no pipes or em-dashes
- UK English only

Output:
1. The title
2. Self-check (yes/no): keyword early / unique / intent match / about 60 chars / readable`)

var metaDescriptionPrompt = mustPrompt("meta_description", `Write the Meta Description:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}
Secondary keywords: {{.SecondaryKWs}}

Rules:
- Summarise the page accurately; no keyword stuffing
- Include {{.PrimaryKW}} naturally plus one secondary keyword if it reads smoothly
- Active voice with a soft CTA ("Learn", "Discover", "Get insight")
- Aim for 150-160 characters but put clarity first
- Must match the on-page content

Output:
1. The description
2. Self-check (yes/no): accurate / natural keywords / CTA / about 155 chars / matches content`)

var targetURLPrompt = mustPrompt("target_url", `Generate the Target URL:

Site: {{.Site}}
Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}

Rules:
- Lowercase, hyphenated, clean and descriptive
- No dates, tracking parameters or filler words
- Use the right folder (/services/, /blog/, etc.)
- No duplication

Output:
1. Full canonical URL
2. Self-check (yes/no): descriptive / hyphenated / lowercase / fits folder / minimal length`)

var h1Prompt = mustPrompt("h1", `Create the H1 Heading:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}

Rules:
- Contains {{.PrimaryKW}} early and naturally
- Close to the title topic but may vary for readability
- Reader-focused, clear and benefit-driven

Output:
1. H1 text only
2. Self-check (yes/no): keyword used / topic clear / distinct from title / user-centric`)

var summaryBulletsPrompt = mustPrompt("summary_bullets", `Write 4-6 short bullet points (one line each) summarising the key outcomes:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}

Rules:
- No heading label
- Each bullet starts with a verb or a benefit phrase
- UK English, concise and factual
- Focus on what the reader learns, gains or achieves
- Cover who, what, why, how and the key value

Output:
1. Bullets only
2. Self-check (yes/no): full scope / concise / reader benefit / maps to content / plain language`)

var internalLinksPrompt = mustPrompt("internal_links", `Build the Internal Linking table:

Site: {{.Site}}
Primary keyword: {{.PrimaryKW}}
Secondary keywords: {{.SecondaryKWs}}

Rules:
- 6-10 links (Landing Page: 6-8; Blog Post: 8-10)
- Include parent hub, sibling topics, cornerstone, conversion and supporting resource links
- Descriptive anchors only, 2-5 words, natural phrasing
- One unique anchor per target

Output as a markdown table:
| Target URL | HTTP Status | Anchor Text | Intent Bucket | Placement Note |

Mark unverified links as "Needs verification" in the HTTP Status column.

Then self-check (yes/no): anchors descriptive / mix of intent types / site-consistent URLs / no duplicates`)

var audiencePrompt = mustPrompt("audience", `Identify who the content is written for:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}
Client: {{.ClientName}}

Rules:
- Define 1-2 clear personas with role or title, industry, pain point and funnel stage
- Phrase it as: "We are writing for..."
- UK English, factual, 3-5 lines

Output:
1. Paragraph
2. Self-check: personas clear / funnel stage / brand fit / relevant to keywords`)

var ctaPrompt = mustPrompt("cta", `Suggest Primary and Secondary CTAs and the logical next step:

Site: {{.Site}}
Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}

Rules:
- Match the content type (blog posts: soft CTAs; landing pages: direct CTAs)
- Suggest a destination URL
- Example CTAs: "Book a Consultation", "Download the Guide", "Enquire Now"
- Suggest a placement (end, sidebar, mid-section)

Output:
1. Primary CTA text
2. Secondary CTA text (optional)
3. Suggested URL
4. Placement note
5. Self-check: CTA fits intent / path logical / language compliant`)

var headingsFAQPrompt = mustPrompt("headings_faq", `Build the complete outline for the writer:

Topic: {{.Topic}}
Primary keyword: {{.PrimaryKW}}
Secondary keywords: {{.SecondaryKWs}}
Mandatory mentions: {{.MandatoryMentions}}

Rules:
- Logical H2-H3 hierarchy (4-6 main H2s, each with 1-2 H3s if needed)
- Under each heading add 1-2 bullets describing what must be covered
- Flow: Intro, Background, Main Points, Benefits, Steps, Conclusion
- Work keywords in naturally where relevant
- Keep readability and topical breadth for AI search (cover what, why and how)
- Finish with an FAQ section of 5-8 questions phrased as real user queries

Output format:
H1: [Heading]

H2: [Heading 1]
- Key point 1
- Key point 2
  H3: [Subheading 1.1]
  - Key point a

H2: [Heading 2]
- ...

FAQ
1. [Question 1]
2. [Question 2]
...

Then self-check: H1 matches / flow logical / points actionable / keywords natural / FAQ relevant`)
