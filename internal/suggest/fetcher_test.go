package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records requests and serves canned responses per code value.
type fakeBackend struct {
	mu        sync.Mutex
	requests  []completeRequest
	responses map[string]string // code -> raw JSON body
	delays    map[string]time.Duration
	err       error
}

func (b *fakeBackend) Post(_ context.Context, endpoint string, payload any) (json.RawMessage, error) {
	req := payload.(completeRequest)
	b.mu.Lock()
	b.requests = append(b.requests, req)
	delay := b.delays[req.Code]
	body, ok := b.responses[req.Code]
	err := b.err
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		body = `{"suggestions": []}`
	}
	return json.RawMessage(body), nil
}

func (b *fakeBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func waitResult(t *testing.T, f *Fetcher) Result {
	t.Helper()
	select {
	case r := <-f.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for suggestion result")
		return Result{}
	}
}

func TestBurstOfEditsIssuesOneRequestWithLastValue(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{
			"def add(a, b):": `{"suggestions": [{"completion": "\n    return a + b", "confidence": 0.9, "type": "pattern_match"}]}`,
		},
	}
	f := NewFetcher(backend, 50*time.Millisecond)
	defer f.Stop()

	// A burst of edits inside the debounce window.
	for i := 0; i < 5; i++ {
		f.Edit(fmt.Sprintf("def add(a, b)%d", i), "python")
		time.Sleep(5 * time.Millisecond)
	}
	f.Edit("def add(a, b):", "python")

	r := waitResult(t, f)
	require.NoError(t, r.Err)
	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, "\n    return a + b", r.Suggestions[0].Completion)
	assert.InDelta(t, 0.9, r.Suggestions[0].Confidence, 1e-9)
	assert.Equal(t, "pattern_match", r.Suggestions[0].Type)

	// Exactly one request, carrying the last edit of the burst.
	assert.Equal(t, 1, backend.requestCount())
	assert.Equal(t, "def add(a, b):", backend.requests[0].Code)
	assert.Equal(t, "python", backend.requests[0].Language)
}

func TestSeparateQuietPeriodsIssueSeparateRequests(t *testing.T) {
	backend := &fakeBackend{responses: map[string]string{}}
	f := NewFetcher(backend, 20*time.Millisecond)
	defer f.Stop()

	f.Edit("first", "python")
	waitResult(t, f)
	f.Edit("second", "python")
	waitResult(t, f)

	assert.Equal(t, 2, backend.requestCount())
}

func TestStaleResponseIsDropped(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{
			"slow": `{"suggestions": [{"completion": "stale", "confidence": 0.5}]}`,
			"fast": `{"suggestions": [{"completion": "fresh", "confidence": 0.9}]}`,
		},
		delays: map[string]time.Duration{"slow": 150 * time.Millisecond},
	}
	f := NewFetcher(backend, 10*time.Millisecond)
	defer f.Stop()

	f.Edit("slow", "python")
	time.Sleep(30 * time.Millisecond) // let the slow dispatch start
	f.Edit("fast", "python")

	r := waitResult(t, f)
	require.NoError(t, r.Err)
	require.Len(t, r.Suggestions, 1)
	assert.Equal(t, "fresh", r.Suggestions[0].Completion)

	// The slow response resolves after the fast one; it must never arrive.
	select {
	case r := <-f.Results():
		t.Fatalf("stale result delivered: %+v", r)
	case <-time.After(250 * time.Millisecond):
	}
}

func TestFailureDeliversEmptyListWithError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("backend down")}
	f := NewFetcher(backend, 10*time.Millisecond)
	defer f.Stop()

	f.Edit("anything", "python")
	r := waitResult(t, f)
	require.Error(t, r.Err)
	assert.Empty(t, r.Suggestions)
}

func TestStopCancelsPendingDispatch(t *testing.T) {
	backend := &fakeBackend{}
	f := NewFetcher(backend, 30*time.Millisecond)

	f.Edit("code", "python")
	f.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, backend.requestCount())
}

func TestEmptyBufferSkipsNetworkCall(t *testing.T) {
	backend := &fakeBackend{}
	f := NewFetcher(backend, 10*time.Millisecond)
	defer f.Stop()

	f.Edit("", "python")
	r := waitResult(t, f)
	assert.NoError(t, r.Err)
	assert.Empty(t, r.Suggestions)
	assert.Equal(t, 0, backend.requestCount())
}
