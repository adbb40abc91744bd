package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

var (
	chipBase = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	chipStyles = map[models.EntityType]lipgloss.Style{
		models.EntitySheet:      chipBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1e8e3e")),
		models.EntityNamedRange: chipBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1a73e8")),
		models.EntityTable:      chipBase.Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#9334e6")),
	}

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#80868b"))
)

// chip renders a labelled entity badge.
func chip(t models.EntityType, name string) string {
	return chipStyles[t].Render(t.Label() + " " + name)
}

// renderMarkdown formats an answer for the terminal, falling back to the raw
// text when rendering fails.
func renderMarkdown(text string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}
