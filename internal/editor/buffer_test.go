package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceRangeWholeBuffer(t *testing.T) {
	b := NewBuffer("old")
	b.ReplaceRange("new", nil)
	assert.Equal(t, "new", b.Text())
}

func TestReplaceRangeSelection(t *testing.T) {
	b := NewBuffer("hello world")
	b.ReplaceRange("there", &Selection{Start: 6, End: 11})
	assert.Equal(t, "hello there", b.Text())
}

func TestReplaceRangeClampsBounds(t *testing.T) {
	b := NewBuffer("abc")
	b.ReplaceRange("X", &Selection{Start: -5, End: 99})
	assert.Equal(t, "X", b.Text())
}

func TestSelectNormalizesReversedRange(t *testing.T) {
	b := NewBuffer("abcdef")
	b.Select(4, 1)
	sel, ok := b.Selection()
	assert.True(t, ok)
	assert.Equal(t, Selection{Start: 1, End: 4}, sel)
	assert.Equal(t, "bcd", b.SelectedText())
}

func TestSelectedTextFallsBackToWholeBuffer(t *testing.T) {
	b := NewBuffer("abcdef")
	assert.Equal(t, "abcdef", b.SelectedText())
}

func TestSetTextInvalidatesSelection(t *testing.T) {
	b := NewBuffer("abcdef")
	b.Select(0, 3)
	b.SetText("xy")
	_, ok := b.Selection()
	assert.False(t, ok)
}

func TestDetectLanguageID(t *testing.T) {
	assert.Equal(t, "python", DetectLanguageID("main.py"))
	assert.Equal(t, "javascript", DetectLanguageID("app.jsx"))
	assert.Equal(t, "cpp", DetectLanguageID("thing.hpp"))
	assert.Equal(t, "go", DetectLanguageID("main.go"))
	assert.Equal(t, "python", DetectLanguageID("README.weird"))
}

func TestLookupLanguage(t *testing.T) {
	l := LookupLanguage(DefaultLanguages, "rust")
	assert.Equal(t, "Rust", l.Name)

	fallback := LookupLanguage(DefaultLanguages, "cobol")
	assert.Equal(t, "python", fallback.ID)
}
