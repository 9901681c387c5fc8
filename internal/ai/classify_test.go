package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Class
	}{
		{"quota", "You exceeded your current quota, check billing", ClassQuotaOrKey},
		{"billing only", "billing account not active", ClassQuotaOrKey},
		{"api key", "API key not valid. Please pass a valid API key.", ClassQuotaOrKey},
		{"proxies", "proxies argument not supported", ClassConfiguration},
		{"quota wins over proxies", "quota exhausted behind proxies", ClassQuotaOrKey},
		{"generic", "Internal server error", ClassGeneric},
		{"case sensitive quota", "QUOTA exceeded", ClassGeneric},
		{"case sensitive api key", "api key missing", ClassGeneric},
		{"empty", "", ClassGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			assert.Equal(t, tt.want, got.Class)
			assert.Equal(t, tt.message, got.Message, "raw message must be preserved verbatim")
		})
	}
}

func TestClassificationBlocking(t *testing.T) {
	assert.True(t, Classification{Class: ClassQuotaOrKey}.Blocking())
	assert.True(t, Classification{Class: ClassConfiguration}.Blocking())
	assert.False(t, Classification{Class: ClassGeneric}.Blocking())
}

func TestClassificationOf(t *testing.T) {
	ae := &ActionError{
		Classification: Classify("proxies argument not supported"),
		Err:            errors.New("proxies argument not supported"),
	}
	got := ClassificationOf(ae)
	assert.Equal(t, ClassConfiguration, got.Class)

	// Wrapped action errors still unwrap to their classification.
	wrapped := &ActionError{Classification: Classify("quota"), Err: ae}
	assert.Equal(t, ClassQuotaOrKey, ClassificationOf(wrapped).Class)

	// Foreign errors degrade to generic with the message kept.
	plain := errors.New("dial tcp: connection refused")
	got = ClassificationOf(plain)
	assert.Equal(t, ClassGeneric, got.Class)
	assert.Equal(t, "dial tcp: connection refused", got.Message)
}
