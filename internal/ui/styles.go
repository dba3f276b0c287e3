package ui

import (
	"github.com/charmbracelet/lipgloss"

	"lugat-go/internal/progress"
)

type styles struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	highlight   lipgloss.Style
	subtle      lipgloss.Style
	header      lipgloss.Style
	error       lipgloss.Style
	notice      lipgloss.Style
	inputDiff   lipgloss.Style
	correctDiff lipgloss.Style
	accent      lipgloss.Style
	cursor      lipgloss.Style
	favorite    lipgloss.Style
	barFilled   lipgloss.Style
	barEmpty    lipgloss.Style
	slot        lipgloss.Style
	slotFocus   lipgloss.Style
	timer       lipgloss.Style
	timerLow    lipgloss.Style
}

type palette struct {
	fg, subtle, accent, highlightBg, highlightFg, barEmpty lipgloss.Color
}

var (
	lightPalette = palette{fg: "0", subtle: "8", accent: "4", highlightBg: "153", highlightFg: "0", barEmpty: "252"}
	darkPalette  = palette{fg: "15", subtle: "245", accent: "14", highlightBg: "24", highlightFg: "15", barEmpty: "238"}
)

func newStyles(theme progress.Theme) styles {
	p := lightPalette
	if theme == progress.ThemeDark {
		p = darkPalette
	}
	return styles{
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		highlight:   lipgloss.NewStyle().Background(p.highlightBg).Foreground(p.highlightFg),
		subtle:      lipgloss.NewStyle().Foreground(p.subtle),
		header:      lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1),
		notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		inputDiff:   lipgloss.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.Color("0")),
		correctDiff: lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0")),
		accent:      lipgloss.NewStyle().Foreground(p.accent),
		cursor:      lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		favorite:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		barFilled:   lipgloss.NewStyle().Background(p.accent).SetString(" "),
		barEmpty:    lipgloss.NewStyle().Background(p.barEmpty).SetString(" "),
		slot:        lipgloss.NewStyle().Foreground(p.fg),
		slotFocus:   lipgloss.NewStyle().Foreground(p.accent).Bold(true).Underline(true),
		timer:       lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		timerLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
