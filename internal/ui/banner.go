package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"koda/internal/ai"
)

// Banner renders the persistent error surface for blocking failures. Unlike
// toasts it never expires; only an explicit dismissal clears it, which is
// also what re-enables the AI actions.
type Banner struct {
	cls    ai.Classification
	active bool
	styles *Styles
}

// NewBanner creates an inactive banner.
func NewBanner(styles *Styles) *Banner {
	return &Banner{styles: styles}
}

// Show activates the banner for a blocking classification.
func (b *Banner) Show(cls ai.Classification) {
	b.cls = cls
	b.active = true
}

// Dismiss clears the banner.
func (b *Banner) Dismiss() {
	b.active = false
	b.cls = ai.Classification{}
}

// Active reports whether the banner is visible.
func (b *Banner) Active() bool {
	return b.active
}

// suggestionFor maps a classification to an actionable next step.
func suggestionFor(cls ai.Classification) string {
	switch cls.Class {
	case ai.ClassQuotaOrKey:
		return "Check the API key and billing status on the backend, then dismiss with Esc"
	case ai.ClassConfiguration:
		return "Review the backend's environment and proxy settings, then dismiss with Esc"
	}
	return "Dismiss with Esc"
}

func titleFor(cls ai.Classification) string {
	switch cls.Class {
	case ai.ClassQuotaOrKey:
		return "API quota or key error"
	case ai.ClassConfiguration:
		return "Backend configuration error"
	}
	return "Error"
}

// View renders the banner, or an empty string when inactive.
func (b *Banner) View(width int) string {
	if !b.active {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(ColorRose).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(ColorText)
	hintStyle := lipgloss.NewStyle().Foreground(ColorDim)
	markerStyle := lipgloss.NewStyle().Foreground(ColorDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render("✗ "+titleFor(b.cls)+": ") + msgStyle.Render(b.cls.Message))
	sb.WriteString("\n")
	sb.WriteString(markerStyle.Render("  ↳ ") + hintStyle.Render(suggestionFor(b.cls)))

	box := b.styles.ErrorBox
	if width > 4 {
		box = box.Width(width - 2)
	}
	return box.Render(sb.String())
}
