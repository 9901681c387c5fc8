package ui

import (
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koda/internal/config"
	"koda/internal/editor"
	"koda/internal/transport"
)

func newTestModel(t *testing.T, text string) *Model {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Suggest.Enabled = false
	cfg.Watcher.Enabled = false

	backend := transport.New("http://127.0.0.1:1", time.Second)
	m, err := New(cfg, backend, "", text)
	require.NoError(t, err)
	m.textarea.SetWidth(80)
	return m
}

func TestCursorOffsetCountsBytesNotRunes(t *testing.T) {
	m := newTestModel(t, "é=1")

	// SetValue leaves the cursor at the end of the line: 3 characters,
	// 4 bytes.
	assert.Equal(t, len("é=1"), m.cursorOffset())

	m.textarea.SetCursor(2)
	assert.Equal(t, len("é="), m.cursorOffset())

	m.textarea.SetCursor(0)
	assert.Equal(t, 0, m.cursorOffset())
}

func TestCursorOffsetMultilineMultibyte(t *testing.T) {
	m := newTestModel(t, "é=1\nπ=2")

	// Cursor ends on the second line; the first line contributes its byte
	// length plus the newline.
	assert.Equal(t, len("é=1")+1+len("π=2"), m.cursorOffset())

	m.textarea.SetCursor(1)
	assert.Equal(t, len("é=1")+1+len("π"), m.cursorOffset())
}

func TestSelectionCoversMultibyteBuffer(t *testing.T) {
	m := newTestModel(t, "é=1")

	end := m.cursorOffset()
	m.orch.Buffer().Select(0, end)
	assert.Equal(t, "é=1", m.orch.Buffer().SelectedText())
}

func TestRenderResponseHonorsMarkdownToggle(t *testing.T) {
	m := newTestModel(t, "")
	m.cfg.UI.MarkdownRendering = false

	raw := "# Heading\n\nplain prose"
	assert.Equal(t, raw, m.renderResponse(editor.ActionExplain, raw))

	m.cfg.UI.MarkdownRendering = true
	assert.NotEqual(t, raw, m.renderResponse(editor.ActionExplain, raw))
}

func TestTabInsertsConfiguredWidth(t *testing.T) {
	m := newTestModel(t, "")
	m.cfg.Editor.TabWidth = 4

	m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "    ", m.textarea.Value())
	assert.Equal(t, "    ", m.orch.Buffer().Text())
	assert.True(t, m.dirty)
}

func TestHeaderShowsVersion(t *testing.T) {
	m := newTestModel(t, "")
	m.cfg.Version = "0.1.0"
	assert.Contains(t, m.headerView(), "v0.1.0")
}

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	long := "éééééééééééééééééééééééééééééééééé"

	out := truncateRunes(long, 10)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 10, len([]rune(out)))
	assert.Contains(t, out, "…")

	assert.Equal(t, "short", truncateRunes("short", 10))
}
