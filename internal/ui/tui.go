// Package ui is the bubbletea front end: an editor pane mirrored into the
// code buffer, a response pane for AI results, quick suggestions below the
// editor, and the transient/blocking error surfaces.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"koda/internal/ai"
	"koda/internal/config"
	"koda/internal/editor"
	"koda/internal/fileutil"
	"koda/internal/highlight"
	"koda/internal/logging"
	"koda/internal/suggest"
	"koda/internal/transport"
	"koda/internal/watcher"
)

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	styles *Styles

	textarea textarea.Model
	respView viewport.Model
	spin     spinner.Model

	orch    *editor.Orchestrator
	actions *ai.Service
	fetcher *suggest.Fetcher
	fw      *watcher.Watcher
	backend *transport.Client

	toasts      *ToastManager
	banner      *Banner
	suggestions SuggestionsPanel
	preview     CleanPreviewModel
	previewOpen bool

	hl *highlight.Highlighter
	md *glamour.TermRenderer

	filePath  string
	languages []editor.Language
	dirty     bool
	backendUp bool

	// Selection mark: ctrl+space once sets the anchor, a second press
	// selects from anchor to cursor. -1 means no anchor.
	selAnchor int

	// Writes we made ourselves show up as watcher events too.
	suppressWatchUntil time.Time

	respTitle     string
	suggestFailed bool
	width         int
	height        int
	ready         bool
}

// New assembles the model. filePath may be empty for a scratch buffer.
func New(cfg *config.Config, backend *transport.Client, filePath, initialText string) (*Model, error) {
	styles := DefaultStyles()

	langID := cfg.Editor.Language
	if filePath != "" {
		langID = editor.DetectLanguageID(filePath)
	}
	language := editor.LookupLanguage(editor.DefaultLanguages, langID)

	ta := textarea.New()
	ta.Placeholder = "Start typing code..."
	ta.CharLimit = 0
	ta.SetValue(initialText)
	ta.Focus()

	vp := viewport.New(80, 10)
	vp.MouseWheelEnabled = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, err
	}

	buf := editor.NewBuffer(initialText)
	m := &Model{
		cfg:         cfg,
		styles:      styles,
		textarea:    ta,
		respView:    vp,
		spin:        sp,
		orch:        editor.NewOrchestrator(buf, language),
		actions:     ai.NewService(backend),
		backend:     backend,
		toasts:      NewToastManager(),
		banner:      NewBanner(styles),
		suggestions: NewSuggestionsPanel(styles),
		preview:     NewCleanPreviewModel(styles),
		hl:          highlight.New(cfg.UI.Theme),
		md:          md,
		filePath:    filePath,
		languages:   editor.DefaultLanguages,
		selAnchor:   -1,
	}

	if cfg.Suggest.Enabled {
		m.fetcher = suggest.NewFetcher(backend, cfg.Suggest.Debounce)
	}
	if cfg.Watcher.Enabled && filePath != "" {
		fw, err := watcher.New(filePath, cfg.Watcher.DebounceMs)
		if err != nil {
			logging.Warn("file watcher unavailable", "error", err)
		} else {
			m.fw = fw
		}
	}

	return m, nil
}

// Init starts the background plumbing.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		TickCmd(time.Second),
		pingCmd(m.backend),
		fetchLanguagesCmd(m.backend),
	}
	if m.fetcher != nil {
		cmds = append(cmds, waitForSuggestionsCmd(m.fetcher.Results()))
	}
	if m.fw != nil {
		if err := m.fw.Start(); err != nil {
			logging.Warn("file watcher failed to start", "error", err)
		} else {
			cmds = append(cmds, waitForFileChangeCmd(m.fw.Changes()))
		}
	}
	return tea.Batch(cmds...)
}

// Update is the event loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.ready = true
		return m, nil

	case TickMsg:
		m.toasts.Update()
		return m, TickCmd(time.Second)

	case spinner.TickMsg:
		if m.orch.State().Phase != editor.PhaseInFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case backendStatusMsg:
		m.backendUp = msg.up
		if !msg.up {
			m.toasts.ShowWarning("backend unreachable at " + m.cfg.Backend.BaseURL)
		}
		return m, nil

	case languagesMsg:
		m.languages = msg
		m.orch.SetLanguage(editor.LookupLanguage(msg, m.orch.Language().ID))
		return m, nil

	case actionResultMsg:
		return m, m.handleActionResult(msg)

	case CleanDecisionMsg:
		m.previewOpen = false
		if msg.Decision == CleanApply {
			if m.orch.ApplyInsert() {
				m.syncFromBuffer()
				m.toasts.ShowSuccess("cleanup applied")
			}
		}
		return m, nil

	case suggestionsMsg:
		if msg.Err != nil || len(msg.Suggestions) == 0 {
			m.suggestions.Clear()
			// Notify once per failure streak, not on every keystroke.
			if msg.Err != nil && !m.suggestFailed {
				m.toasts.ShowWarning("suggestions unavailable")
			}
			m.suggestFailed = msg.Err != nil
		} else {
			m.suggestions.Set(msg.Suggestions)
			m.suggestFailed = false
		}
		if m.fetcher != nil {
			return m, waitForSuggestionsCmd(m.fetcher.Results())
		}
		return m, nil

	case fileChangedMsg:
		cmd := m.handleFileChanged()
		if m.fw != nil {
			return m, tea.Batch(cmd, waitForFileChangeCmd(m.fw.Changes()))
		}
		return m, cmd

	case tea.KeyMsg:
		if m.previewOpen {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.previewOpen {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.respView, cmd = m.respView.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		m.shutdown()
		return tea.Quit

	case "ctrl+s":
		m.saveFile()
		return nil

	case "ctrl+k":
		return m.trigger(editor.ActionComplete)
	case "ctrl+d":
		return m.trigger(editor.ActionDocument)
	case "ctrl+e":
		return m.trigger(editor.ActionExplain)
	case "ctrl+r":
		return m.trigger(editor.ActionClean)

	case "ctrl+j":
		if m.orch.ApplyAppend() {
			m.syncFromBuffer()
			m.toasts.ShowSuccess("appended to editor")
		}
		return nil

	case "ctrl+t":
		return m.applyInsert()

	case "ctrl+y":
		m.copyResponse()
		return nil

	case "ctrl+@", "ctrl+ ":
		m.markSelection()
		return nil

	case "esc":
		if m.banner.Active() {
			m.banner.Dismiss()
			m.orch.ClearBlock()
			m.respTitle = ""
			m.respView.SetContent("")
			return nil
		}
		m.selAnchor = -1
		m.orch.Buffer().ClearSelection()
		m.suggestions.Clear()
		return nil

	case "tab":
		// Soft tabs at the configured width.
		if w := m.cfg.Editor.TabWidth; w > 0 {
			m.textarea.InsertString(strings.Repeat(" ", w))
			m.orch.Buffer().SetText(m.textarea.Value())
			m.dirty = true
			if m.fetcher != nil {
				m.fetcher.Edit(m.textarea.Value(), m.orch.Language().ID)
			}
			return nil
		}

	case "ctrl+n":
		m.suggestions.Next()
		return nil
	case "ctrl+p":
		m.suggestions.Prev()
		return nil
	case "ctrl+o":
		m.acceptSuggestion()
		return nil
	}

	// Everything else is an edit or cursor movement in the editor pane.
	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	after := m.textarea.Value()

	if after != before {
		m.orch.Buffer().SetText(after)
		m.selAnchor = -1
		m.dirty = true
		if m.fetcher != nil {
			m.fetcher.Edit(after, m.orch.Language().ID)
		}
	}
	return cmd
}

// trigger starts an AI action on the selection, or on the whole buffer when
// nothing is selected.
func (m *Model) trigger(action editor.Action) tea.Cmd {
	if err := m.orch.Begin(action); err != nil {
		m.toasts.ShowWarning(err.Error())
		return nil
	}

	code := m.orch.Buffer().SelectedText()
	if strings.TrimSpace(code) == "" {
		m.orch.Fail(action, ai.Classification{Class: ai.ClassGeneric, Message: "nothing to send"})
		m.toasts.ShowWarning("buffer is empty")
		return nil
	}

	m.respTitle = string(action)
	return tea.Batch(
		runActionCmd(m.actions, action, code, m.orch.Language().ID),
		m.spin.Tick,
	)
}

func (m *Model) handleActionResult(msg actionResultMsg) tea.Cmd {
	if msg.err != nil {
		cls := ai.ClassificationOf(msg.err)
		m.orch.Fail(msg.action, cls)
		if cls.Blocking() {
			m.banner.Show(cls)
		} else {
			m.toasts.ShowError(cls.Message)
		}
		return nil
	}

	m.orch.Succeed(msg.action, msg.resp)
	if m.orch.State().Phase != editor.PhaseSucceeded {
		// A newer action superseded this one; drop the render.
		return nil
	}

	m.respTitle = string(msg.action)
	m.layout()
	m.respView.SetContent(m.renderResponse(msg.action, msg.resp.Text))
	m.respView.GotoTop()
	return nil
}

// renderResponse formats the response pane: prose actions go through the
// markdown renderer (unless disabled in config), code actions through the
// syntax highlighter.
func (m *Model) renderResponse(action editor.Action, text string) string {
	switch action {
	case editor.ActionDocument, editor.ActionExplain:
		if !m.cfg.UI.MarkdownRendering {
			return text
		}
		if out, err := m.md.Render(text); err == nil {
			return out
		}
		return text
	default:
		return m.hl.Highlight(text, m.orch.Language().ID)
	}
}

// applyInsert applies the stored response at the selection (or over the whole
// buffer). Cleanups get a diff preview first.
func (m *Model) applyInsert() tea.Cmd {
	st := m.orch.State()
	if !m.orch.CanInsert() || st.Response == nil {
		return nil
	}

	if st.Action == editor.ActionClean {
		label := "buffer"
		if m.filePath != "" {
			label = m.filePath
		}
		old := m.orch.Buffer().SelectedText()
		if _, ok := m.orch.Buffer().Selection(); ok {
			label = "selection"
		}
		m.preview.SetSize(m.width, m.height)
		m.preview.SetContent(label, old, st.Response.Text)
		m.previewOpen = true
		return nil
	}

	if m.orch.ApplyInsert() {
		m.syncFromBuffer()
		m.toasts.ShowSuccess("inserted")
	}
	return nil
}

func (m *Model) copyResponse() {
	st := m.orch.State()
	if st.Phase != editor.PhaseSucceeded || st.Response == nil {
		return
	}
	if err := clipboard.WriteAll(st.Response.Text); err != nil {
		m.toasts.ShowError("clipboard: " + err.Error())
		return
	}
	m.toasts.ShowSuccess("copied to clipboard")
}

func (m *Model) markSelection() {
	offset := m.cursorOffset()
	if m.selAnchor < 0 {
		m.selAnchor = offset
		m.toasts.ShowInfo("selection mark set")
		return
	}
	m.orch.Buffer().Select(m.selAnchor, offset)
	sel, _ := m.orch.Buffer().Selection()
	m.selAnchor = -1
	m.toasts.ShowInfo(fmt.Sprintf("selected %d bytes", sel.End-sel.Start))
}

// cursorOffset maps the textarea cursor to a byte offset in the buffer. The
// widget reports the column in characters; it has to be converted against the
// current line's runes before it can index the buffer.
func (m *Model) cursorOffset() int {
	row := m.textarea.Line()
	li := m.textarea.LineInfo()
	col := li.StartColumn + li.CharOffset

	lines := strings.Split(m.textarea.Value(), "\n")
	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len(lines[i]) + 1
	}
	if row >= len(lines) {
		return offset + col
	}

	runes := []rune(lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	return offset + len(string(runes[:col]))
}

func (m *Model) acceptSuggestion() {
	s, ok := m.suggestions.Selected()
	if !ok {
		return
	}
	m.textarea.InsertString(s.Completion)
	m.orch.Buffer().SetText(m.textarea.Value())
	m.dirty = true
	m.suggestions.Clear()
}

// syncFromBuffer pushes orchestrator-applied edits back into the widget.
func (m *Model) syncFromBuffer() {
	m.textarea.SetValue(m.orch.Buffer().Text())
	m.selAnchor = -1
	m.dirty = true
}

func (m *Model) saveFile() {
	if m.filePath == "" {
		m.toasts.ShowWarning("no file to save to")
		return
	}
	m.suppressWatchUntil = time.Now().Add(time.Second)
	if err := fileutil.AtomicWrite(m.filePath, []byte(m.orch.Buffer().Text()), 0644); err != nil {
		m.toasts.ShowError("save failed: " + err.Error())
		return
	}
	m.dirty = false
	m.toasts.ShowSuccess("saved " + m.filePath)
}

func (m *Model) handleFileChanged() tea.Cmd {
	if time.Now().Before(m.suppressWatchUntil) {
		return nil
	}
	if m.dirty {
		m.toasts.ShowWarning("file changed on disk; save or reload manually")
		return nil
	}
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		m.toasts.ShowError("reload failed: " + err.Error())
		return nil
	}
	m.orch.Buffer().SetText(string(data))
	m.textarea.SetValue(string(data))
	m.toasts.ShowInfo("reloaded from disk")
	return nil
}

func (m *Model) shutdown() {
	if m.fetcher != nil {
		m.fetcher.Stop()
	}
	if m.fw != nil {
		m.fw.Stop()
	}
}

// layout distributes the terminal between the editor and response panes.
func (m *Model) layout() {
	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	// Header, status bar, panel chrome.
	avail := m.height - 6
	if avail < 8 {
		avail = 8
	}

	editorHeight := avail
	respHeight := 0
	if m.respTitle != "" {
		editorHeight = avail * 3 / 5
		respHeight = avail - editorHeight - 2
		if respHeight < 3 {
			respHeight = 3
		}
	}

	m.textarea.SetWidth(contentWidth)
	m.textarea.SetHeight(editorHeight)
	m.respView.Width = contentWidth - 2
	m.respView.Height = respHeight
	m.preview.SetSize(m.width, m.height)
}

// View renders the whole screen.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.previewOpen {
		return m.preview.View()
	}

	var sb strings.Builder

	if toasts := m.toasts.View(m.width); toasts != "" {
		sb.WriteString(toasts)
		sb.WriteString("\n")
	}

	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Editor.Render(m.textarea.View()))
	sb.WriteString("\n")

	if !m.suggestions.Empty() {
		sb.WriteString(m.suggestions.View(m.width))
		sb.WriteString("\n")
	}

	if m.respTitle != "" && m.orch.State().Phase == editor.PhaseSucceeded {
		title := m.styles.Header.Render(m.respTitle)
		hints := m.affordanceHints()
		sb.WriteString(m.styles.Response.Render(title + " " + hints + "\n" + m.respView.View()))
		sb.WriteString("\n")
	}

	if banner := m.banner.View(m.width); banner != "" {
		sb.WriteString(banner)
		sb.WriteString("\n")
	}

	sb.WriteString(m.statusBarView())
	return sb.String()
}

func (m *Model) headerView() string {
	name := m.filePath
	if name == "" {
		name = "[scratch]"
	}
	if m.dirty {
		name += " *"
	}
	title := "koda"
	if m.cfg.Version != "" {
		title += " v" + m.cfg.Version
	}
	return m.styles.Header.Render(title) + " " + m.styles.Dim.Render(name)
}

// affordanceHints lists only the apply actions valid for the current result.
func (m *Model) affordanceHints() string {
	var hints []string
	if m.orch.CanAppend() {
		hints = append(hints, "ctrl+j append")
	}
	if m.orch.CanInsert() {
		hints = append(hints, "ctrl+t insert")
	}
	hints = append(hints, "ctrl+y copy")
	return m.styles.Dim.Render(strings.Join(hints, " · "))
}

func (m *Model) statusBarView() string {
	lang := m.orch.Language()

	backendDot := lipgloss.NewStyle().Foreground(ColorError).Render("●")
	if m.backendUp {
		backendDot = lipgloss.NewStyle().Foreground(ColorSuccess).Render("●")
	}

	var phase string
	switch m.orch.State().Phase {
	case editor.PhaseInFlight:
		phase = m.spin.View() + string(m.orch.State().Action)
	case editor.PhaseFailed:
		phase = m.styles.Error.Render("failed")
	}

	segments := []string{
		m.styles.StatusSectionName.Render("lang ") + m.styles.StatusSectionValue.Render(lang.Name),
		m.styles.StatusSectionName.Render("backend ") + backendDot,
	}
	if phase != "" {
		segments = append(segments, phase)
	}
	segments = append(segments,
		m.styles.Dim.Render("ctrl+k complete · ctrl+d document · ctrl+e explain · ctrl+r clean · ctrl+s save · ctrl+q quit"))

	return m.styles.StatusBar.Render(strings.Join(segments, "  "))
}
