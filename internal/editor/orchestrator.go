// Package editor owns the UI-facing state: the code buffer, the active
// language, and the action state machine that decides what the user sees
// and which edits are applied.
package editor

import (
	"errors"

	"koda/internal/ai"
)

// Action is one of the four user-triggered AI operations.
type Action string

const (
	ActionComplete Action = "complete"
	ActionDocument Action = "document"
	ActionExplain  Action = "explain"
	ActionClean    Action = "clean"
)

// Phase is the lifecycle stage of the current action.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

// State is the full action state. Only the latest response or failure is
// retained; triggering a new action discards the previous one.
type State struct {
	Phase          Phase
	Action         Action
	Response       *ai.Response
	Classification ai.Classification
}

var (
	// ErrActionInFlight is returned when an action is already running.
	ErrActionInFlight = errors.New("an AI action is already in flight")
	// ErrActionsBlocked is returned while a quota or configuration error
	// is pending dismissal.
	ErrActionsBlocked = errors.New("AI actions are disabled until the error is dismissed")
)

// Orchestrator holds the state container and enforces the transitions. All
// mutation of action state and all AI text insertion go through it.
type Orchestrator struct {
	buffer   *Buffer
	language Language
	state    State
	blocked  bool
}

// NewOrchestrator creates an orchestrator over the buffer.
func NewOrchestrator(buffer *Buffer, language Language) *Orchestrator {
	return &Orchestrator{buffer: buffer, language: language}
}

// Buffer returns the underlying code buffer.
func (o *Orchestrator) Buffer() *Buffer {
	return o.buffer
}

// Language returns the active language.
func (o *Orchestrator) Language() Language {
	return o.language
}

// SetLanguage switches the active language.
func (o *Orchestrator) SetLanguage(l Language) {
	o.language = l
}

// State returns the current action state.
func (o *Orchestrator) State() State {
	return o.state
}

// Blocked reports whether a quota/configuration failure is pending dismissal.
func (o *Orchestrator) Blocked() bool {
	return o.blocked
}

// CanTrigger reports whether a new action may start: not while one is in
// flight, and not while a blocking classification is pending.
func (o *Orchestrator) CanTrigger() bool {
	return !o.blocked && o.state.Phase != PhaseInFlight
}

// Begin transitions into InFlight(action). The previous response or failure
// is discarded.
func (o *Orchestrator) Begin(action Action) error {
	if o.blocked {
		return ErrActionsBlocked
	}
	if o.state.Phase == PhaseInFlight {
		return ErrActionInFlight
	}
	o.state = State{Phase: PhaseInFlight, Action: action}
	return nil
}

// Succeed transitions InFlight(action) to Succeeded(action) and stores the
// response. Results for an action that is no longer current are ignored.
func (o *Orchestrator) Succeed(action Action, resp *ai.Response) {
	if o.state.Phase != PhaseInFlight || o.state.Action != action {
		return
	}
	o.state = State{Phase: PhaseSucceeded, Action: action, Response: resp}
}

// Fail transitions InFlight(action) to Failed(action, classification).
// Blocking classifications disable all triggers until ClearBlock.
func (o *Orchestrator) Fail(action Action, cls ai.Classification) {
	if o.state.Phase != PhaseInFlight || o.state.Action != action {
		return
	}
	o.state = State{Phase: PhaseFailed, Action: action, Classification: cls}
	if cls.Blocking() {
		o.blocked = true
	}
}

// ClearBlock is the user's explicit recovery action (banner dismissal).
// The failed state resets to idle.
func (o *Orchestrator) ClearBlock() {
	o.blocked = false
	if o.state.Phase == PhaseFailed {
		o.state = State{}
	}
}

// CanAppend reports whether the append-to-editor affordance is enabled:
// only after a successful complete or document action.
func (o *Orchestrator) CanAppend() bool {
	if o.state.Phase != PhaseSucceeded {
		return false
	}
	return o.state.Action == ActionComplete || o.state.Action == ActionDocument
}

// CanInsert reports whether the insert-at-cursor / replace affordance is
// enabled: after a successful complete, document, or clean action.
func (o *Orchestrator) CanInsert() bool {
	if o.state.Phase != PhaseSucceeded {
		return false
	}
	switch o.state.Action {
	case ActionComplete, ActionDocument, ActionClean:
		return true
	}
	return false
}

// ApplyAppend appends the stored response text to the buffer.
func (o *Orchestrator) ApplyAppend() bool {
	if !o.CanAppend() || o.state.Response == nil {
		return false
	}
	o.buffer.Append(o.state.Response.Text)
	return true
}

// ApplyInsert applies the stored response through ReplaceRange: it replaces
// the current selection, or the whole buffer when nothing is selected.
func (o *Orchestrator) ApplyInsert() bool {
	if !o.CanInsert() || o.state.Response == nil {
		return false
	}
	var sel *Selection
	if s, ok := o.buffer.Selection(); ok {
		sel = &s
	}
	o.buffer.ReplaceRange(o.state.Response.Text, sel)
	return true
}
