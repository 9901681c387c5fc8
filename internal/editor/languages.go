package editor

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
)

// Language is one entry of the backend's language catalog.
type Language struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DefaultLanguages is the static catalog used when the backend's
// api/languages endpoint is unreachable. It mirrors what the backend serves.
var DefaultLanguages = []Language{
	{ID: "python", Name: "Python", Version: "3.x"},
	{ID: "javascript", Name: "JavaScript", Version: "ES6+"},
	{ID: "typescript", Name: "TypeScript", Version: "4.x"},
	{ID: "java", Name: "Java", Version: "11+"},
	{ID: "cpp", Name: "C++", Version: "17+"},
	{ID: "csharp", Name: "C#", Version: "8+"},
	{ID: "go", Name: "Go", Version: "1.x"},
	{ID: "rust", Name: "Rust", Version: "1.x"},
}

// Getter is the transport surface the catalog fetch needs.
type Getter interface {
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

// FetchLanguages refreshes the catalog from the backend, falling back to
// DefaultLanguages on any failure.
func FetchLanguages(ctx context.Context, backend Getter) []Language {
	raw, err := backend.Get(ctx, "api/languages")
	if err != nil {
		return DefaultLanguages
	}
	var resp struct {
		Languages []Language `json:"languages"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Languages) == 0 {
		return DefaultLanguages
	}
	return resp.Languages
}

// LookupLanguage finds a catalog entry by ID, defaulting to python.
func LookupLanguage(catalog []Language, id string) Language {
	for _, l := range catalog {
		if l.ID == id {
			return l
		}
	}
	for _, l := range catalog {
		if l.ID == "python" {
			return l
		}
	}
	return Language{ID: id, Name: id}
}

var extLanguages = map[string]string{
	".py":   "python",
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".java": "java",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".h":    "cpp",
	".hpp":  "cpp",
	".cs":   "csharp",
	".go":   "go",
	".rs":   "rust",
}

// DetectLanguageID maps a filename to a backend language ID, defaulting to
// python when the extension is unknown.
func DetectLanguageID(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if id, ok := extLanguages[ext]; ok {
		return id
	}
	return "python"
}
