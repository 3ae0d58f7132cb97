package note

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Metadata
	}{
		{
			name: "full header",
			input: `:PROPERTIES:
:ID: 123e4567-e89b-12d3-a456-426614174000
:END:
#+title: Related Note
#+filetags: :research:go:

Body.`,
			expected: Metadata{
				Title: "Related Note",
				Tags:  []string{"research", "go"},
				ID:    "123e4567-e89b-12d3-a456-426614174000",
			},
		},
		{
			name:     "no header at all",
			input:    "Just some text.\n",
			expected: Metadata{},
		},
		{
			name:     "legacy roam key",
			input:    "#+roam_key: https://example.com\n#+title: Clip\n",
			expected: Metadata{Title: "Clip", ID: "https://example.com"},
		},
		{
			name:     "id property wins over roam key",
			input:    ":ID: abc\n#+roam_key: legacy\n",
			expected: Metadata{ID: "abc"},
		},
		{
			name:     "uppercase keywords",
			input:    "#+TITLE: Shouting\n#+FILETAGS: :a:\n",
			expected: Metadata{Title: "Shouting", Tags: []string{"a"}},
		},
		{
			name:     "tags without surrounding colons",
			input:    "#+filetags: a:b\n",
			expected: Metadata{Tags: []string{"a", "b"}},
		},
		{
			name:     "empty title line does not swallow next line",
			input:    "#+title:\nBody line\n",
			expected: Metadata{},
		},
		{
			name:     "indented id is not a file-level id",
			input:    "* Heading\n  :PROPERTIES:\n  :ID: nested\n  :END:\n",
			expected: Metadata{},
		},
		{
			name:     "crlf line endings",
			input:    "#+title: Windows\r\n:ID: w1\r\n",
			expected: Metadata{Title: "Windows", ID: "w1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := ParseMetadata(tt.input)
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("ParseMetadata() = %#v, want %#v", actual, tt.expected)
			}
		})
	}
}

func TestLoadTitleFallback(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "untitled note.org")
	if err := os.WriteFile(path, []byte("no header here\n"), 0644); err != nil {
		t.Fatalf("Failed to write note: %v", err)
	}

	n, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if n.Title != "untitled note" {
		t.Errorf("Title = %q, want %q", n.Title, "untitled note")
	}
	if n.HasExplicitID() {
		t.Error("Expected no explicit id")
	}
	if len(n.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", n.Tags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.org")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadInvalidEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.org")
	// "#+title: Élève" encoded as Latin-1
	if err := os.WriteFile(path, []byte("#+title: \xc9l\xe8ve\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("Load() error = %v, want ErrInvalidEncoding", err)
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"notes/intro.org":         "intro",
		"20240101-some-note.org":  "20240101-some-note",
		"noext":                   "noext",
		"/abs/path/with.dots.org": "with.dots",
	}
	for input, want := range tests {
		if got := Stem(input); got != want {
			t.Errorf("Stem(%q) = %q, want %q", input, got, want)
		}
	}
}
