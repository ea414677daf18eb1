// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// createBrief collects a provider, a client, a topic and keywords, then
// generates and exports one brief. Input problems return to the main menu.
func (m *Menu) createBrief(ctx context.Context) error {
	m.section("Create Content Brief")

	if len(m.cfg.Providers) == 0 {
		m.fail("No AI provider API keys found. Set at least one provider key and restart.")
		return nil
	}

	kind, err := m.selectProvider()
	if err != nil {
		return err
	}
	m.printf("Using AI provider: %s\n", strings.ToUpper(string(kind)))

	gen, err := m.cfg.NewGenerator(kind, m.out)
	if err != nil {
		m.fail("Error initializing AI provider: " + err.Error())
		return nil
	}

	p, err := m.selectClient(ctx, "\nSelect client number: ")
	if err != nil || p == nil {
		return err
	}
	m.printf("\nClient: %s\n", p.ClientName)
	m.printf("Site: %s\n", p.Site)

	m.println("\nBrief Details:")
	topic, err := m.prompt("Topic: ")
	if err != nil {
		return err
	}
	if topic == "" {
		m.fail("Topic is required.")
		return nil
	}
	primary, err := m.prompt("Primary keyword: ")
	if err != nil {
		return err
	}
	if primary == "" {
		m.fail("Primary keyword is required.")
		return nil
	}
	raw, err := m.prompt("Secondary keywords (comma-separated): ")
	if err != nil {
		return err
	}
	secondary := splitKeywords(raw)
	if len(secondary) == 0 {
		m.fail("At least one secondary keyword is required.")
		return nil
	}

	m.println("\n" + rule("=", 60))
	m.printf("Generating content brief with %s...\n", strings.ToUpper(string(kind)))
	m.println(rule("=", 60))

	rec, err := gen.Generate(ctx, types.BriefRequest{
		Profile:           *p,
		Topic:             topic,
		PrimaryKeyword:    primary,
		SecondaryKeywords: secondary,
	})
	if err != nil {
		slog.Error("brief generation failed", "client", p.ClientName, "provider", kind, "error", err)
		m.println("")
		m.fail("Error generating brief: " + err.Error())
		return nil
	}
	m.println("\nBrief generated successfully!")

	m.println("\nCreating Word document...")
	path, err := m.cfg.Exporter.WriteFile(m.cfg.OutputDir, rec)
	if err != nil {
		m.fail("Error creating document: " + err.Error())
		return nil
	}
	if m.cfg.OnExported != nil {
		if err := m.cfg.OnExported(path, rec); err != nil {
			m.fail("Error saving brief record: " + err.Error())
		}
	}
	m.println("\n" + m.st.success.Render("Brief created successfully!"))
	m.printf("File saved to: %s\n", path)
	return nil
}

// selectProvider lists the available providers. Empty, non-numeric or out
// of range input selects the first one.
func (m *Menu) selectProvider() (provider.Kind, error) {
	m.println("\nAvailable AI providers:")
	for i, k := range m.cfg.Providers {
		m.printf("%d. %s\n", i+1, strings.ToUpper(string(k)))
	}

	s, err := m.prompt("\nSelect AI provider (or press Enter for default): ")
	if err != nil {
		return "", err
	}
	if s == "" {
		return m.cfg.Providers[0], nil
	}
	idx, ok := parseChoice(s, len(m.cfg.Providers))
	if !ok {
		m.println(m.st.muted.Render("Invalid selection. Using default provider."))
		return m.cfg.Providers[0], nil
	}
	return m.cfg.Providers[idx], nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, kw := range strings.Split(s, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
