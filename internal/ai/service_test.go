package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koda/internal/transport"
)

type recordedRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens"`
	Language     string  `json:"language"`
	RequestType  string  `json:"request_type"`
}

func newMockBackend(t *testing.T, status int, body string, got *[]recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/completion", r.URL.Path)
		var req recordedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*got = append(*got, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestCompleteBuildsCompletionRequest(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusOK,
		`{"response": " # adds two numbers", "model": "x", "timestamp": "t"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	resp, err := svc.Complete(context.Background(), "def add(a, b):\n    return a + b", "python")
	require.NoError(t, err)

	require.Len(t, got, 1, "exactly one HTTP call per trigger")
	assert.Equal(t, "completion", got[0].RequestType)
	assert.InDelta(t, 0.3, got[0].Temperature, 1e-9)
	assert.Contains(t, got[0].SystemPrompt, "python")
	assert.Contains(t, got[0].Prompt, "def add(a, b):")
	assert.Equal(t, "python", got[0].Language)

	// Provider absent: the displayed text is the response with no suffix.
	assert.Equal(t, " # adds two numbers", resp.Text)
	assert.Equal(t, "x", resp.Model)
	assert.Equal(t, "t", resp.Timestamp)
}

func TestKindTemperaturesAndPrompts(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusOK, `{"response": "ok", "model": "m", "timestamp": "t"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	ctx := context.Background()

	_, err := svc.Document(ctx, "code", "javascript")
	require.NoError(t, err)
	_, err = svc.Explain(ctx, "code", "go")
	require.NoError(t, err)

	require.Len(t, got, 2)

	assert.Equal(t, "documentation", got[0].RequestType)
	assert.InDelta(t, 0.5, got[0].Temperature, 1e-9)
	assert.Contains(t, got[0].SystemPrompt, "javascript")
	assert.Contains(t, got[0].SystemPrompt, "document")

	assert.Equal(t, "explanation", got[1].RequestType)
	assert.InDelta(t, 0.7, got[1].Temperature, 1e-9)
	assert.Contains(t, got[1].SystemPrompt, "go")
	assert.Contains(t, got[1].SystemPrompt, "plain English")
}

func TestCleanReusesCompletionEntryPoint(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusOK, `{"response": "cleaned", "model": "m", "timestamp": "t"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	_, err := svc.Clean(context.Background(), "x = 1  # unused\ny = 2", "python")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "completion", got[0].RequestType)
	assert.InDelta(t, 0.3, got[0].Temperature, 1e-9)
	assert.True(t, strings.Contains(got[0].Prompt, "remove unnecessary code while preserving functionality"))
	assert.Contains(t, got[0].Prompt, "x = 1  # unused")
}

func TestProviderSuffixAppended(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusOK,
		`{"response": "answer", "model": "gemini-1.5-pro", "timestamp": "t", "provider": "gemini"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	resp, err := svc.Explain(context.Background(), "code", "python")
	require.NoError(t, err)
	assert.Equal(t, "answer\n\n(Generated by gemini)", resp.Text)
}

func TestQuotaErrorClassification(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusTooManyRequests,
		`{"error": "You exceeded your current quota, check billing"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	_, err := svc.Complete(context.Background(), "code", "python")
	require.Error(t, err)

	cls := ClassificationOf(err)
	assert.Equal(t, ClassQuotaOrKey, cls.Class)
	assert.True(t, cls.Blocking())
	assert.Equal(t, "You exceeded your current quota, check billing", cls.Message)
}

func TestConfigurationErrorClassification(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusInternalServerError,
		`{"error": "proxies argument not supported"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	_, err := svc.Document(context.Background(), "code", "python")
	require.Error(t, err)

	cls := ClassificationOf(err)
	assert.Equal(t, ClassConfiguration, cls.Class)
	assert.True(t, cls.Blocking())
}

func TestGenericErrorKeepsMessageVerbatim(t *testing.T) {
	var got []recordedRequest
	srv := newMockBackend(t, http.StatusInternalServerError,
		`{"error": "Internal server error"}`, &got)
	defer srv.Close()

	svc := NewService(transport.New(srv.URL, 0))
	_, err := svc.Explain(context.Background(), "code", "python")
	require.Error(t, err)

	cls := ClassificationOf(err)
	assert.Equal(t, ClassGeneric, cls.Class)
	assert.False(t, cls.Blocking())
	assert.Equal(t, "Internal server error", cls.Message)
}

func TestTransportErrorsSurfaceAsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	svc := NewService(transport.New(url, 0))
	_, err := svc.Complete(context.Background(), "code", "python")
	require.Error(t, err)
	assert.Equal(t, ClassGeneric, ClassificationOf(err).Class)
	assert.Equal(t, transport.KindConnectionRefused, transport.KindOf(err))
}
