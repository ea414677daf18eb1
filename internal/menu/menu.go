// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu is the interactive terminal front end: a numbered main
// menu for brief creation and a client management submenu. Each workflow
// receives what it needs explicitly; the menu holds no current profile or
// last record between workflows.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// BriefGenerator produces a brief record.
type BriefGenerator interface {
	Generate(ctx context.Context, req types.BriefRequest) (*types.BriefRecord, error)
}

// Exporter writes a record to a document file in dir.
type Exporter interface {
	WriteFile(dir string, rec *types.BriefRecord) (string, error)
}

// Config wires the menu to its collaborators.
type Config struct {
	Store profile.Store

	// Providers are the selectable providers in display order.
	Providers []provider.Kind

	// NewGenerator builds a generator for kind that reports progress to w.
	NewGenerator func(kind provider.Kind, w io.Writer) (BriefGenerator, error)

	Exporter  Exporter
	OutputDir string

	// OnExported is called with each written document path and its record.
	OnExported func(path string, rec *types.BriefRecord) error
}

// Menu runs the interactive loop over in and out.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
	cfg Config
	st  styles
}

// New returns a Menu reading from in and writing to out.
func New(in io.Reader, out io.Writer, cfg Config) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out, cfg: cfg, st: newStyles(out)}
}

// Run shows the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	m.println("\n" + rule("=", 60))
	m.println(m.st.title.Render("Content Brief Creator"))
	m.println(rule("=", 60))

	for {
		m.println("\n" + m.st.heading.Render("Main Menu:"))
		m.println("1. Create Brief")
		m.println("2. Manage Clients")
		m.println("3. Exit")

		choice, err := m.prompt("\nEnter choice (1-3): ")
		if err != nil {
			return endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.createBrief(ctx)
		case "2":
			err = m.manageClients(ctx)
		case "3":
			m.println("\nExiting...")
			return nil
		default:
			m.fail("Invalid choice. Please enter 1, 2, or 3.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput treats EOF on the input as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// --- input helpers ---

// prompt writes label and returns the next trimmed input line. A final
// line without a newline is returned before io.EOF.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptList reads items one per line until an empty line.
func (m *Menu) promptList(label string) ([]string, error) {
	m.printf("\n%s (enter items one per line, empty line to finish):\n", label)
	items := []string{}
	for {
		item, err := m.prompt("  - ")
		if err != nil {
			return nil, err
		}
		if item == "" {
			return items, nil
		}
		items = append(items, item)
	}
}

// promptIndex reads a 1-based choice and returns the 0-based index, or
// ok=false when the input is not a valid choice.
func (m *Menu) promptIndex(label string, n int) (idx int, ok bool, err error) {
	s, err := m.prompt(label)
	if err != nil {
		return 0, false, err
	}
	idx, ok = parseChoice(s, n)
	return idx, ok, nil
}

// parseChoice converts a 1-based choice among n items to an index.
func parseChoice(s string, n int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

func (m *Menu) println(s string)                  { fmt.Fprintln(m.out, s) }
func (m *Menu) printf(format string, args ...any) { fmt.Fprintf(m.out, format, args...) }
func (m *Menu) fail(s string)                     { m.println(m.st.err.Render(s)) }

func (m *Menu) section(title string) {
	m.println("\n" + rule("-", 60))
	m.println(m.st.title.Render(title))
	m.println(rule("-", 60))
}

func (m *Menu) numbered(items []string) {
	for i, item := range items {
		m.printf("%d. %s\n", i+1, item)
	}
}
