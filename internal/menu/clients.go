// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/pkg/types"
)

func (m *Menu) manageClients(ctx context.Context) error {
	m.section("Manage Clients")

	for {
		m.println("\n" + m.st.heading.Render("Client Management:"))
		m.println("1. List Clients")
		m.println("2. Create Client")
		m.println("3. View Client")
		m.println("4. Update Client")
		m.println("5. Delete Client")
		m.println("6. Back to Main Menu")

		choice, err := m.prompt("\nEnter choice (1-6): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.listClients(ctx)
		case "2":
			err = m.createClient(ctx)
		case "3":
			err = m.viewClient(ctx)
		case "4":
			err = m.updateClient(ctx)
		case "5":
			err = m.deleteClient(ctx)
		case "6":
			return nil
		default:
			m.fail("Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

// storeError reports a failed store call and keeps the session going.
func (m *Menu) storeError(action string, err error) {
	slog.Error("profile store failed", "action", action, "error", err)
	m.fail(fmt.Sprintf("Error %s: %v", action, err))
}

// listNames prints the numbered client list. It returns nil names when
// there are none or the store cannot list them.
func (m *Menu) listNames(ctx context.Context, heading string) ([]string, error) {
	names, err := m.cfg.Store.List(ctx)
	if err != nil {
		m.storeError("listing clients", err)
		return nil, nil
	}
	if len(names) == 0 {
		m.println("\nNo clients found.")
		return nil, nil
	}
	m.println("\n" + heading)
	m.numbered(names)
	return names, nil
}

func (m *Menu) listClients(ctx context.Context) error {
	_, err := m.listNames(ctx, "Clients:")
	return err
}

// selectClient lists clients and loads the chosen one. It returns a nil
// profile after telling the user when nothing could be selected.
func (m *Menu) selectClient(ctx context.Context, label string) (*types.ClientProfile, error) {
	names, err := m.listNames(ctx, "Available clients:")
	if err != nil || names == nil {
		return nil, err
	}
	idx, ok, err := m.promptIndex(label, len(names))
	if err != nil {
		return nil, err
	}
	if !ok {
		m.fail("Invalid selection.")
		return nil, nil
	}
	p, err := m.cfg.Store.Get(ctx, names[idx])
	if errors.Is(err, profile.ErrNotFound) {
		m.fail(fmt.Sprintf("Client '%s' not found.", names[idx]))
		return nil, nil
	}
	if err != nil {
		m.storeError("loading client", err)
		return nil, nil
	}
	return p, nil
}

func (m *Menu) createClient(ctx context.Context) error {
	m.println("\n" + rule("-", 40))
	m.println(m.st.title.Render("Create New Client"))
	m.println(rule("-", 40))

	name, err := m.prompt("Client name: ")
	if err != nil {
		return err
	}
	if name == "" {
		m.fail("Client name is required.")
		return nil
	}
	site, err := m.prompt("Website URL: ")
	if err != nil {
		return err
	}

	m.println("\nRestrictions:")
	restrictions := map[string]any{}
	for _, g := range restrictionGroups {
		items, err := m.promptList(g.label)
		if err != nil {
			return err
		}
		restrictions[g.key] = items
	}

	m.println("\nRequirements:")
	wordCount, err := m.prompt("Word count range (e.g., 800-1200): ")
	if err != nil {
		return err
	}
	tone, err := m.prompt("Tone (e.g., Professional, friendly): ")
	if err != nil {
		return err
	}
	mandatory, err := m.promptList("Mandatory mentions")
	if err != nil {
		return err
	}

	data := map[string]any{
		"site":         site,
		"restrictions": restrictions,
		"requirements": map[string]any{
			"word_count":         wordCount,
			"readability_score":  "8th grade level",
			"tone":               tone,
			"mandatory_mentions": mandatory,
			"schema_required":    true,
			"images_required":    2,
			"cta_required":       true,
			"internal_links_min": 6,
		},
	}

	err = m.cfg.Store.Create(ctx, name, data)
	switch {
	case errors.Is(err, profile.ErrExists):
		m.fail(fmt.Sprintf("Client '%s' already exists.", name))
		return nil
	case err != nil:
		m.storeError("creating client", err)
		return nil
	}
	m.println(m.st.success.Render(fmt.Sprintf("Client '%s' created successfully.", name)))
	return nil
}

var restrictionGroups = []struct{ key, label string }{
	{"legal", "Legal restrictions"},
	{"brand", "Brand restrictions"},
	{"seo", "SEO restrictions"},
	{"content_integrity", "Content integrity restrictions"},
}

func (m *Menu) viewClient(ctx context.Context) error {
	p, err := m.selectClient(ctx, "\nSelect client number: ")
	if err != nil || p == nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("formatting client: %w", err)
	}
	m.println("\n" + string(data))
	return nil
}

// updateClient edits the site, tone and word count, and appends
// restriction entries. Blank answers keep the current value.
func (m *Menu) updateClient(ctx context.Context) error {
	p, err := m.selectClient(ctx, "\nSelect client number to update: ")
	if err != nil || p == nil {
		return err
	}

	partial := map[string]any{}
	requirements := map[string]any{}

	site, err := m.prompt(fmt.Sprintf("Website URL [%s]: ", p.Site))
	if err != nil {
		return err
	}
	if site != "" {
		partial["site"] = site
	}
	tone, err := m.prompt(fmt.Sprintf("Tone [%s]: ", p.Requirements.Tone))
	if err != nil {
		return err
	}
	if tone != "" {
		requirements["tone"] = tone
	}
	wordCount, err := m.prompt(fmt.Sprintf("Word count range [%s]: ", p.Requirements.WordCount))
	if err != nil {
		return err
	}
	if wordCount != "" {
		requirements["word_count"] = wordCount
	}
	if len(requirements) > 0 {
		partial["requirements"] = requirements
	}

	current := map[string][]string{
		"legal":             p.Restrictions.Legal,
		"brand":             p.Restrictions.Brand,
		"seo":               p.Restrictions.SEO,
		"content_integrity": p.Restrictions.ContentIntegrity,
	}
	restrictions := map[string]any{}
	for _, g := range restrictionGroups {
		added, err := m.promptList("Add " + strings.ToLower(g.label))
		if err != nil {
			return err
		}
		if len(added) > 0 {
			restrictions[g.key] = append(append([]string{}, current[g.key]...), added...)
		}
	}
	if len(restrictions) > 0 {
		partial["restrictions"] = restrictions
	}

	if len(partial) == 0 {
		m.println(m.st.muted.Render("No changes."))
		return nil
	}
	if err := m.cfg.Store.Update(ctx, p.ClientName, partial); err != nil {
		m.storeError("updating client", err)
		return nil
	}
	m.println(m.st.success.Render(fmt.Sprintf("Client '%s' updated successfully.", p.ClientName)))
	return nil
}

func (m *Menu) deleteClient(ctx context.Context) error {
	names, err := m.listNames(ctx, "Available clients:")
	if err != nil || names == nil {
		return err
	}
	idx, ok, err := m.promptIndex("\nSelect client number to delete: ", len(names))
	if err != nil {
		return err
	}
	if !ok {
		m.fail("Invalid selection.")
		return nil
	}
	name := names[idx]

	confirm, err := m.prompt(fmt.Sprintf("\nAre you sure you want to delete '%s'? (yes/no): ", name))
	if err != nil {
		return err
	}
	if strings.ToLower(confirm) != "yes" {
		m.println("Deletion cancelled.")
		return nil
	}

	deleted, err := m.cfg.Store.Delete(ctx, name)
	if err != nil {
		m.storeError("deleting client", err)
		return nil
	}
	if !deleted {
		m.fail(fmt.Sprintf("Client '%s' not found.", name))
		return nil
	}
	m.println(m.st.success.Render(fmt.Sprintf("Client '%s' deleted successfully.", name)))
	return nil
}
