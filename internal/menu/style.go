// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#7aa2f7")
	colorSuccess = lipgloss.Color("#9ece6a")
	colorError   = lipgloss.Color("#f7768e")
	colorMuted   = lipgloss.Color("#565f89")
)

// styles are bound to the menu's output so colour is only emitted when
// that output supports it.
type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Foreground(colorPrimary).Bold(true),
		heading: r.NewStyle().Foreground(colorPrimary),
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		err:     r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

func rule(ch string, n int) string { return strings.Repeat(ch, n) }
