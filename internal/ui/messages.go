package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"koda/internal/ai"
	"koda/internal/editor"
	"koda/internal/suggest"
)

// TickMsg is sent periodically to expire toasts and refresh the status bar.
type TickMsg time.Time

// TickCmd returns a command that sends TickMsg at intervals.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// actionResultMsg carries the outcome of one AI action.
type actionResultMsg struct {
	action editor.Action
	resp   *ai.Response
	err    error
}

// suggestionsMsg carries one quick-suggestion fetch result.
type suggestionsMsg suggest.Result

// fileChangedMsg signals that the open file changed on disk.
type fileChangedMsg struct{}

// backendStatusMsg carries the result of the startup/periodic liveness probe.
type backendStatusMsg struct {
	up bool
}

// languagesMsg carries the language catalog fetched from the backend.
type languagesMsg []editor.Language

// runActionCmd dispatches one AI action off the event loop and reports the
// result as a message.
func runActionCmd(svc *ai.Service, action editor.Action, code, language string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var resp *ai.Response
		var err error
		switch action {
		case editor.ActionComplete:
			resp, err = svc.Complete(ctx, code, language)
		case editor.ActionDocument:
			resp, err = svc.Document(ctx, code, language)
		case editor.ActionExplain:
			resp, err = svc.Explain(ctx, code, language)
		case editor.ActionClean:
			resp, err = svc.Clean(ctx, code, language)
		}
		return actionResultMsg{action: action, resp: resp, err: err}
	}
}

// waitForSuggestionsCmd blocks on the fetcher's result channel. The Update
// loop re-issues it after every delivery.
func waitForSuggestionsCmd(ch <-chan suggest.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return suggestionsMsg(r)
	}
}

// waitForFileChangeCmd blocks on the watcher's change channel.
func waitForFileChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// pinger is the transport surface the liveness probe needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// pingCmd probes backend liveness.
func pingCmd(backend pinger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return backendStatusMsg{up: backend.Ping(ctx) == nil}
	}
}

// fetchLanguagesCmd refreshes the language catalog.
func fetchLanguagesCmd(backend editor.Getter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return languagesMsg(editor.FetchLanguages(ctx, backend))
	}
}
