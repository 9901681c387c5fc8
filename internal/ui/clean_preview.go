package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// CleanDecision is the user's verdict on a cleanup preview.
type CleanDecision int

const (
	CleanPending CleanDecision = iota
	CleanApply
	CleanReject
)

// CleanDecisionMsg is emitted when the user decides on the preview.
type CleanDecisionMsg struct {
	Decision CleanDecision
}

// CleanPreviewModel shows what a cleanup result would change before it is
// applied to the buffer.
type CleanPreviewModel struct {
	viewport viewport.Model
	label    string
	diff     string
	decision CleanDecision
	styles   *Styles
	width    int
	height   int
}

// NewCleanPreviewModel creates a new preview model.
func NewCleanPreviewModel(styles *Styles) CleanPreviewModel {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	return CleanPreviewModel{viewport: vp, styles: styles, decision: CleanPending}
}

// SetSize sets the size of the preview.
func (m *CleanPreviewModel) SetSize(width, height int) {
	if width < 10 {
		width = 80
	}
	if height < 10 {
		height = 24
	}
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 8
}

// SetContent computes and loads the diff between the current text and the
// cleaned replacement. label names what is being replaced ("selection" or
// the file name).
func (m *CleanPreviewModel) SetContent(label, oldContent, newContent string) {
	m.label = label
	m.decision = CleanPending
	m.diff = generateDiff(label, oldContent, newContent)
	m.viewport.SetContent(highlightDiff(m.diff))
	m.viewport.GotoTop()
}

// generateDiff creates a unified-style diff between old and new content.
func generateDiff(label, oldContent, newContent string) string {
	dmp := diffmatchpatch.New()

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s\n", label))
	result.WriteString(fmt.Sprintf("+++ %s\n", label))

	diffs := dmp.DiffMain(oldContent, newContent, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		lines := strings.Split(d.Text, "\n")
		for i, line := range lines {
			// Skip empty trailing element from split
			if i == len(lines)-1 && line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				result.WriteString(fmt.Sprintf(" %s\n", line))
			case diffmatchpatch.DiffDelete:
				result.WriteString(fmt.Sprintf("-%s\n", line))
			case diffmatchpatch.DiffInsert:
				result.WriteString(fmt.Sprintf("+%s\n", line))
			}
		}
	}
	return result.String()
}

// highlightDiff applies terminal colors to the diff lines.
func highlightDiff(diff string) string {
	addedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	removedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

	lines := strings.Split(diff, "\n")
	var result strings.Builder

	for _, line := range lines {
		var styledLine string
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			styledLine = headerStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			styledLine = addedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			styledLine = removedStyle.Render(line)
		default:
			styledLine = contextStyle.Render(line)
		}
		result.WriteString(styledLine)
		result.WriteString("\n")
	}
	return result.String()
}

// Update handles input events for the preview.
func (m CleanPreviewModel) Update(msg tea.Msg) (CleanPreviewModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			m.decision = CleanApply
			return m, func() tea.Msg { return CleanDecisionMsg{Decision: CleanApply} }

		case "n", "N", "esc":
			m.decision = CleanReject
			return m, func() tea.Msg { return CleanDecisionMsg{Decision: CleanReject} }

		case "j", "down":
			m.viewport, cmd = m.viewport.Update(tea.KeyMsg{Type: tea.KeyDown})
			return m, cmd

		case "k", "up":
			m.viewport, cmd = m.viewport.Update(tea.KeyMsg{Type: tea.KeyUp})
			return m, cmd

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}

	return m, nil
}

// countChanges counts added and removed lines.
func (m CleanPreviewModel) countChanges() (added, removed int) {
	for _, line := range strings.Split(m.diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			added++
		} else if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			removed++
		}
	}
	return
}

// View renders the preview.
func (m CleanPreviewModel) View() string {
	var builder strings.Builder

	bulletStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(ColorDim)
	fileStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	builder.WriteString(bulletStyle.Render("● ") + nameStyle.Render("Cleanup Preview"))
	builder.WriteString("\n")
	builder.WriteString(markerStyle.Render("  ⎿  ") + fileStyle.Render(m.label))
	builder.WriteString("\n")

	added, removed := m.countChanges()
	stats := fmt.Sprintf("%s, %s",
		lipgloss.NewStyle().Foreground(ColorSuccess).Render(fmt.Sprintf("+%d", added)),
		lipgloss.NewStyle().Foreground(ColorError).Render(fmt.Sprintf("-%d", removed)))
	builder.WriteString(markerStyle.Render("     ") + stats)
	builder.WriteString("\n\n")

	builder.WriteString(m.viewport.View())
	builder.WriteString("\n\n")

	applyStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorSuccess).
		Padding(0, 2)
	rejectStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(ColorError).
		Padding(0, 2)
	hintStyle := lipgloss.NewStyle().Foreground(ColorDim)

	builder.WriteString(applyStyle.Render("y Apply"))
	builder.WriteString("  ")
	builder.WriteString(rejectStyle.Render("n Reject"))
	builder.WriteString("\n")
	builder.WriteString(hintStyle.Render("j/k: Scroll | g/G: Top/Bottom"))

	return builder.String()
}
