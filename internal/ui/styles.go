package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors for the UI theme - Muted Professional Palette
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple (Lavender 400)
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan (Cyan 400)
	ColorSuccess   = lipgloss.Color("#059669") // Emerald 600 (muted green)
	ColorWarning   = lipgloss.Color("#D97706") // Amber 600 (muted amber)
	ColorError     = lipgloss.Color("#DC2626") // Red 600 (muted red)
	ColorMuted     = lipgloss.Color("#9CA3AF") // Neutral Gray (Gray 400)
	ColorText      = lipgloss.Color("#F1F5F9") // Soft White (Slate 100)
	ColorBg        = lipgloss.Color("#0F172A") // Deep Navy (Slate 900)

	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate Border
	ColorHighlight = lipgloss.Color("#E9D5FF") // Soft Purple (Purple 200)
	ColorDim       = lipgloss.Color("#6B7280") // Gray 500
	ColorAccent    = lipgloss.Color("#F472B6") // Pink Accent (Pink 400)
	ColorRunning   = lipgloss.Color("#60A5FA") // Sky Blue (Blue 400)
	ColorInfo      = lipgloss.Color("#2DD4BF") // Teal Info (Teal 400)
	ColorRose      = lipgloss.Color("#FB7185") // Rose 400
)

// truncateRunes shortens s to at most max characters, ellipsis included.
// Cutting on rune boundaries keeps multibyte text intact.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max < 1 {
		return ""
	}
	return string(runes[:max-1]) + "…"
}

// Styles contains all UI styles.
type Styles struct {
	App       lipgloss.Style
	Header    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Spinner   lipgloss.Style
	StatusBar lipgloss.Style
	Editor    lipgloss.Style
	Response  lipgloss.Style

	// Box styles for structured output
	InfoBox    lipgloss.Style
	WarningBox lipgloss.Style
	ErrorBox   lipgloss.Style

	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style

	// Suggestion panel styles
	SuggestionSelected lipgloss.Style
	SuggestionNormal   lipgloss.Style
	SuggestionMeta     lipgloss.Style

	// Segmented status bar styles
	StatusSectionName  lipgloss.Style
	StatusSectionValue lipgloss.Style
}

// DefaultStyles returns the default UI styles.
func DefaultStyles() *Styles {
	return &Styles{
		App: lipgloss.NewStyle(),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		StatusBar: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorBg).
			Padding(0, 1),

		Editor: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder),

		Response: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1),

		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorInfo).
			Padding(0, 1),

		WarningBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1),

		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1),

		Dim: lipgloss.NewStyle().
			Foreground(ColorDim),

		Highlight: lipgloss.NewStyle().
			Foreground(ColorHighlight),

		Accent: lipgloss.NewStyle().
			Foreground(ColorAccent),

		SuggestionSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),

		SuggestionNormal: lipgloss.NewStyle().
			Foreground(ColorMuted),

		SuggestionMeta: lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true),

		StatusSectionName: lipgloss.NewStyle().
			Foreground(ColorDim).
			Bold(true),

		StatusSectionValue: lipgloss.NewStyle().
			Foreground(ColorText),
	}
}
