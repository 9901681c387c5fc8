package ui

import (
	"fmt"
	"strings"

	"koda/internal/suggest"
)

// SuggestionsPanel holds the current ranked quick suggestions and the
// selection cursor. The list is replaced wholesale on every fetch result;
// a failed or empty fetch clears it.
type SuggestionsPanel struct {
	items    []suggest.Suggestion
	selected int
	styles   *Styles
}

// NewSuggestionsPanel creates an empty panel.
func NewSuggestionsPanel(styles *Styles) SuggestionsPanel {
	return SuggestionsPanel{styles: styles}
}

// Set replaces the suggestion list and resets the cursor to the top-ranked
// entry.
func (p *SuggestionsPanel) Set(items []suggest.Suggestion) {
	p.items = items
	p.selected = 0
}

// Clear drops all suggestions.
func (p *SuggestionsPanel) Clear() {
	p.items = nil
	p.selected = 0
}

// Empty reports whether the panel has anything to show.
func (p *SuggestionsPanel) Empty() bool {
	return len(p.items) == 0
}

// Next moves the cursor down, wrapping around.
func (p *SuggestionsPanel) Next() {
	if len(p.items) == 0 {
		return
	}
	p.selected = (p.selected + 1) % len(p.items)
}

// Prev moves the cursor up, wrapping around.
func (p *SuggestionsPanel) Prev() {
	if len(p.items) == 0 {
		return
	}
	p.selected = (p.selected + len(p.items) - 1) % len(p.items)
}

// Selected returns the suggestion under the cursor.
func (p *SuggestionsPanel) Selected() (suggest.Suggestion, bool) {
	if len(p.items) == 0 {
		return suggest.Suggestion{}, false
	}
	return p.items[p.selected], true
}

// View renders the list, selection marked, one line per suggestion.
func (p *SuggestionsPanel) View(width int) string {
	if len(p.items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(p.styles.Dim.Render("suggestions (ctrl+n/ctrl+p, ctrl+o to accept)"))
	sb.WriteString("\n")

	for i, s := range p.items {
		line := firstLine(s.Completion)
		meta := fmt.Sprintf(" %.0f%%", s.Confidence*100)
		if s.Type != "" {
			meta += " " + s.Type
		}

		maxLen := width - len(meta) - 6
		if maxLen < 10 {
			maxLen = 10
		}
		line = truncateRunes(line, maxLen)

		if i == p.selected {
			sb.WriteString(p.styles.SuggestionSelected.Render("▸ " + line))
		} else {
			sb.WriteString(p.styles.SuggestionNormal.Render("  " + line))
		}
		sb.WriteString(p.styles.SuggestionMeta.Render(meta))
		if i < len(p.items)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
