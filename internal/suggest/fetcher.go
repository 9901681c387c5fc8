// Package suggest issues debounced quick-suggestion requests while the user
// types. Suggestions are lighter and unclassified compared to the AI actions:
// any failure degrades to an empty list, never a blocking error.
package suggest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"koda/internal/logging"
)

const (
	completeEndpoint = "api/complete"

	// DefaultDebounce is the quiet period after the last edit before a
	// request is dispatched.
	DefaultDebounce = 500 * time.Millisecond
)

// Suggestion is one ranked completion candidate. List order is ranking order.
type Suggestion struct {
	Completion string  `json:"completion"`
	Confidence float64 `json:"confidence"`
	Type       string  `json:"type,omitempty"`
}

// Result is delivered for every dispatched fetch. On error the suggestion
// list is empty; callers clear their list either way before applying it.
type Result struct {
	Seq         uint64
	Suggestions []Suggestion
	Err         error
}

// Backend is the transport surface the fetcher needs.
type Backend interface {
	Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Fetcher debounces edits and fetches suggestions for the latest one.
//
// Each dispatch carries a sequence number. A response is delivered only when
// its sequence is still the newest issued, so a slow response can never
// overwrite the result of a later edit.
type Fetcher struct {
	backend  Backend
	debounce time.Duration
	results  chan Result

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	code    string
	lang    string
	stopped bool
}

// NewFetcher creates a fetcher. A zero debounce falls back to DefaultDebounce.
func NewFetcher(backend Backend, debounce time.Duration) *Fetcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Fetcher{
		backend:  backend,
		debounce: debounce,
		results:  make(chan Result, 8),
	}
}

// Results delivers one Result per dispatched fetch, stale ones excluded.
func (f *Fetcher) Results() <-chan Result {
	return f.results
}

// Edit records a buffer change. The pending timer restarts, so a burst of
// edits inside the debounce window produces exactly one request carrying the
// last edit's value.
func (f *Fetcher) Edit(code, language string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped {
		return
	}
	f.code, f.lang = code, language
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, f.dispatch)
}

// Stop cancels any pending dispatch. In-flight requests are not cancelled;
// their results are simply dropped once stale.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

type completeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type completeResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// dispatch runs on the timer goroutine once the quiet period elapses.
func (f *Fetcher) dispatch() {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	code, lang := f.code, f.lang
	f.mu.Unlock()

	if code == "" {
		f.deliver(Result{Seq: seq})
		return
	}

	raw, err := f.backend.Post(context.Background(), completeEndpoint, completeRequest{
		Code:     code,
		Language: lang,
	})
	if err != nil {
		logging.Debug("suggestion fetch failed", "seq", seq, "error", err)
		f.deliver(Result{Seq: seq, Err: err})
		return
	}

	var resp completeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		f.deliver(Result{Seq: seq, Err: err})
		return
	}

	f.deliver(Result{Seq: seq, Suggestions: resp.Suggestions})
}

// deliver forwards a result unless a newer dispatch has been issued since.
func (f *Fetcher) deliver(r Result) {
	f.mu.Lock()
	stale := r.Seq != f.seq || f.stopped
	f.mu.Unlock()

	if stale {
		logging.Debug("dropping stale suggestion result", "seq", r.Seq)
		return
	}

	select {
	case f.results <- r:
	default:
		// Receiver fell behind; drop rather than block the timer goroutine.
	}
}
