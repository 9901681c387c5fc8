// Package highlight renders code with terminal syntax colors. It is used
// for the response pane and suggestion previews; the editor pane itself is
// plain text while being edited.
package highlight

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter applies syntax highlighting for a fixed style.
type Highlighter struct {
	style     string
	formatter chroma.Formatter
}

// New creates a Highlighter. Supported styles include "monokai", "dracula",
// "github-dark", "native"; empty defaults to monokai.
func New(style string) *Highlighter {
	if style == "" {
		style = "monokai"
	}
	return &Highlighter{
		style:     style,
		formatter: formatters.Get("terminal256"),
	}
}

// Highlight colors code for the given language ID. On any tokenization
// failure the input is returned unchanged.
func (h *Highlighter) Highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(h.style)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}

// WithLineNumbers highlights code and prefixes each line with its number.
func (h *Highlighter) WithLineNumbers(code, lang string, startLine int) string {
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	lines := strings.Split(h.Highlight(code, lang), "\n")

	var out strings.Builder
	for i, line := range lines {
		out.WriteString(numStyle.Render(pad(startLine+i, 4)))
		out.WriteString(" │ ")
		out.WriteString(line)
		if i < len(lines)-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func pad(n, width int) string {
	num := strconv.Itoa(n)
	if len(num) >= width {
		return num
	}
	return strings.Repeat(" ", width-len(num)) + num
}
