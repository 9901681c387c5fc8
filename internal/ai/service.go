// Package ai builds the four user-triggered actions (complete, document,
// explain, clean) into backend requests and classifies their failures.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"koda/internal/logging"
)

const (
	completionEndpoint = "api/ai/completion"

	defaultMaxTokens = 1000

	temperatureCompletion    = 0.3
	temperatureDocumentation = 0.5
	temperatureExplanation   = 0.7
)

// System prompt templates, one per action kind. The active language name is
// interpolated into each.
const (
	systemCompletion = "You are an expert %s programmer. Complete the code that follows. Respond with concise code only, no commentary."

	systemDocumentation = "You are an expert %s programmer. Analyze the code that follows and document it: describe what it does, its parameters, and its return values."

	systemExplanation = "You are an expert %s programmer. Explain the code that follows in plain English, so that a junior developer can understand it."
)

// Backend is the transport surface the service needs.
type Backend interface {
	Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error)
}

// Service dispatches AI actions against the backend proxy. It performs no
// retries and keeps no state between calls.
type Service struct {
	backend   Backend
	maxTokens int
}

// NewService creates a service over the given backend.
func NewService(backend Backend) *Service {
	return &Service{backend: backend, maxTokens: defaultMaxTokens}
}

// Complete asks for a completion of code in the given language.
func (s *Service) Complete(ctx context.Context, code, language string) (*Response, error) {
	req := s.build(KindCompletion, language, fmt.Sprintf("Complete the following %s code:\n\n%s", language, code))
	return s.send(ctx, req)
}

// Document asks for documentation of code in the given language.
func (s *Service) Document(ctx context.Context, code, language string) (*Response, error) {
	req := s.build(KindDocumentation, language, fmt.Sprintf("Document the following %s code:\n\n%s", language, code))
	return s.send(ctx, req)
}

// Explain asks for a plain-English explanation of code in the given language.
func (s *Service) Explain(ctx context.Context, code, language string) (*Response, error) {
	req := s.build(KindExplanation, language, fmt.Sprintf("Explain the following %s code:\n\n%s", language, code))
	return s.send(ctx, req)
}

// Clean reuses the completion entry point with a synthesized prompt. The
// caller passes either the current selection or the full buffer.
func (s *Service) Clean(ctx context.Context, code, language string) (*Response, error) {
	prompt := fmt.Sprintf(
		"Clean up the following %s code: remove unnecessary code while preserving functionality. Return only the cleaned code.\n\n%s",
		language, code)
	req := s.build(KindCompletion, language, prompt)
	return s.send(ctx, req)
}

// build constructs the immutable request for one action.
func (s *Service) build(kind Kind, language, prompt string) Request {
	var system string
	var temperature float64
	switch kind {
	case KindDocumentation:
		system, temperature = systemDocumentation, temperatureDocumentation
	case KindExplanation:
		system, temperature = systemExplanation, temperatureExplanation
	default:
		system, temperature = systemCompletion, temperatureCompletion
	}

	return Request{
		ID:           uuid.New().String(),
		Prompt:       prompt,
		SystemPrompt: fmt.Sprintf(system, language),
		Temperature:  temperature,
		Language:     language,
		Kind:         kind,
	}
}

// wireRequest is the backend's request envelope for api/ai/completion.
type wireRequest struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Language     string  `json:"language,omitempty"`
	RequestType  string  `json:"request_type,omitempty"`
}

func (s *Service) send(ctx context.Context, req Request) (*Response, error) {
	log := logging.With("request_id", req.ID, "kind", string(req.Kind), "language", req.Language)
	log.Debug("dispatching AI action")

	raw, err := s.backend.Post(ctx, completionEndpoint, wireRequest{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    s.maxTokens,
		Language:     req.Language,
		RequestType:  string(req.Kind),
	})
	if err != nil {
		cls := Classify(err.Error())
		log.Warn("AI action failed", "class", cls.Class, "error", err)
		return nil, &ActionError{Classification: cls, Err: err}
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		cls := Classify(err.Error())
		return nil, &ActionError{Classification: cls, Err: fmt.Errorf("decode AI response: %w", err)}
	}

	if resp.Provider != "" {
		resp.Text = fmt.Sprintf("%s\n\n(Generated by %s)", resp.Text, resp.Provider)
	}

	log.Info("AI action succeeded", "model", resp.Model, "provider", resp.Provider)
	return &resp, nil
}
