package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koda/internal/ai"
)

func TestBannerShowsUntilDismissed(t *testing.T) {
	b := NewBanner(DefaultStyles())
	require.False(t, b.Active())
	require.Empty(t, b.View(80))

	b.Show(ai.Classification{Class: ai.ClassQuotaOrKey, Message: "API quota exceeded"})
	assert.True(t, b.Active())

	view := b.View(80)
	assert.Contains(t, view, "API quota exceeded")
	assert.Contains(t, view, "quota or key")

	b.Dismiss()
	assert.False(t, b.Active())
	assert.Empty(t, b.View(80))
}

func TestBannerSuggestionsMatchClassification(t *testing.T) {
	quota := suggestionFor(ai.Classification{Class: ai.ClassQuotaOrKey})
	assert.Contains(t, quota, "API key")

	cfg := suggestionFor(ai.Classification{Class: ai.ClassConfiguration})
	assert.Contains(t, cfg, "proxy")

	// Every suggestion tells the user how to recover.
	for _, cls := range []ai.Class{ai.ClassQuotaOrKey, ai.ClassConfiguration, ai.ClassGeneric} {
		assert.Contains(t, suggestionFor(ai.Classification{Class: cls}), "Esc")
	}
}
