package convert

import (
	"os"
	"strings"
	"testing"

	"github.com/gerunddev/orgroam2cosma/internal/ident"
	"github.com/gerunddev/orgroam2cosma/internal/note"
	"gopkg.in/yaml.v3"
)

func TestRewriteSample(t *testing.T) {
	// Read org fixture
	orgContent, err := os.ReadFile("testdata/sample.org")
	if err != nil {
		t.Fatalf("Failed to read org fixture: %v", err)
	}

	// Read expected markdown output
	expectedMD, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("Failed to read markdown fixture: %v", err)
	}

	index := ident.NewIndex()
	index.Add("Intro Page", "20240101120000")

	n := note.FromContent("testdata/sample.org", string(orgContent))
	actualMD, unresolved := NewRewriter(index, StyleCosma).Rewrite(n)

	// Normalize whitespace for comparison
	expected := normalizeWhitespace(string(expectedMD))
	actual := normalizeWhitespace(actualMD)

	if actual != expected {
		t.Errorf("Conversion mismatch.\n\nExpected:\n%s\n\nGot:\n%s", expected, actual)

		// Show diff for debugging
		showDiff(t, expected, actual)
	}

	if len(unresolved) != 1 || unresolved[0] != "missing.org" {
		t.Errorf("unresolved = %v, want [missing.org]", unresolved)
	}
}

func TestConvertOrgLinks(t *testing.T) {
	index := ident.NewIndex()
	index.Add("Related Note", "42")
	index.Add("Élan vital", "77")

	tests := []struct {
		name     string
		input    string
		style    LinkStyle
		expected string
	}{
		{
			name:     "id link with label",
			input:    "[[id:123][Foo]]",
			style:    StyleCosma,
			expected: "[[123|Foo]]",
		},
		{
			name:     "id link zettlr style",
			input:    "[[id:123][Foo]]",
			style:    StyleZettlr,
			expected: "[Foo]([[123]])",
		},
		{
			name:     "id link without label uses whole target",
			input:    "[[id:123]]",
			style:    StyleCosma,
			expected: "[[123|id:123]]",
		},
		{
			name:     "resolved file link",
			input:    "[[file:Related Note.org][see this]]",
			style:    StyleCosma,
			expected: "[[42|see this]]",
		},
		{
			name:     "resolved file link in subdirectory zettlr style",
			input:    "[[file:../notes/Related Note.org][see this]]",
			style:    StyleZettlr,
			expected: "[see this]([[42]])",
		},
		{
			name:     "file link resolved after accent folding",
			input:    "[[file:Élan vital.org][elan]]",
			style:    StyleCosma,
			expected: "[[77|elan]]",
		},
		{
			name:     "unresolved file link",
			input:    "[[file:nowhere.org][Lost]]",
			style:    StyleCosma,
			expected: "[[Lost]]",
		},
		{
			name:     "https link",
			input:    "[[https://example.com/a?b=c][Example]]",
			style:    StyleCosma,
			expected: "[Example](https://example.com/a?b=c)",
		},
		{
			name:     "http link without label",
			input:    "[[http://example.com]]",
			style:    StyleZettlr,
			expected: "[http://example.com](http://example.com)",
		},
		{
			name:     "other scheme",
			input:    "[[roam:Something][else]]",
			style:    StyleCosma,
			expected: "[[else]]",
		},
		{
			name:     "several links on one line",
			input:    "a [[id:1][One]] b [[id:2][Two]] c",
			style:    StyleCosma,
			expected: "a [[1|One]] b [[2|Two]] c",
		},
		{
			name:     "plain text untouched",
			input:    "no links [here] at all",
			style:    StyleCosma,
			expected: "no links [here] at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, _ := ConvertOrgLinks(tt.input, index, tt.style)
			if actual != tt.expected {
				t.Errorf("ConvertOrgLinks(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestIDLinkIgnoresIndex(t *testing.T) {
	// 123 is not in the index, the id is used as is
	actual, unresolved := ConvertOrgLinks("[[id:123][Foo]]", ident.NewIndex(), StyleCosma)
	if actual != "[[123|Foo]]" {
		t.Errorf("got %q", actual)
	}
	if len(unresolved) != 0 {
		t.Errorf("id links are never unresolved, got %v", unresolved)
	}
}

func TestUnresolvedFileLinkHasNoID(t *testing.T) {
	index := ident.NewIndex()
	index.Add("Known", "20240101000000")

	actual, unresolved := ConvertOrgLinks("[[file:unknown.org][Label]]", index, StyleZettlr)
	if actual != "[[Label]]" {
		t.Errorf("got %q, want placeholder", actual)
	}
	if strings.Contains(actual, "20240101000000") {
		t.Errorf("placeholder leaked an identifier: %q", actual)
	}
	if len(unresolved) != 1 || unresolved[0] != "unknown.org" {
		t.Errorf("unresolved = %v", unresolved)
	}
}

func TestConvertImages(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "png", input: "[[file:pic.png]]", expected: "![](pic.png)"},
		{name: "jpeg with path", input: "[[file:img/photo.jpeg]]", expected: "![](img/photo.jpeg)"},
		{name: "gif inline", input: "look: [[file:a.gif]] ok", expected: "look: ![](a.gif) ok"},
		{name: "labeled image is a link not an embed", input: "[[file:pic.png][cap]]", expected: "[[file:pic.png][cap]]"},
		{name: "not an image", input: "[[file:notes.org]]", expected: "[[file:notes.org]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := ConvertImages(tt.input); actual != tt.expected {
				t.Errorf("ConvertImages(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestRewriteImageNotHijackedByTitle(t *testing.T) {
	index := ident.NewIndex()
	index.Add("pic", "999")

	n := note.FromContent("n.org", ":ID: 1\n#+title: N\n\n[[file:pic.png]]\n[[file:pic.org][Pic note]]\n")
	doc, _ := NewRewriter(index, StyleCosma).Rewrite(n)

	if !strings.Contains(doc, "![](pic.png)") {
		t.Errorf("expected image embed, got:\n%s", doc)
	}
	if !strings.Contains(doc, "[[999|Pic note]]") {
		t.Errorf("expected resolved note link, got:\n%s", doc)
	}
	if strings.Contains(doc, "ORG2COSMA_IMG_") {
		t.Errorf("marker left in output:\n%s", doc)
	}
}

func TestStripMetadata(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keywords and leading drawer",
			input:    ":PROPERTIES:\n:ID: x\n:END:\n#+title: T\n\nBody",
			expected: "Body",
		},
		{
			name:     "every column 0 drawer",
			input:    "A\n:PROPERTIES:\n:X: 1\n:END:\nB\n:PROPERTIES:\n:Y: 2\n:END:\nC",
			expected: "A\n\nB\n\nC",
		},
		{
			name:     "indented drawer kept",
			input:    "* H\n  :PROPERTIES:\n  :ID: y\n  :END:\ntext",
			expected: "* H\n  :PROPERTIES:\n  :ID: y\n  :END:\ntext",
		},
		{
			name:     "hash without plus kept",
			input:    "# comment\n#+begin_quote\nq\n#+end_quote",
			expected: "# comment\n\nq",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := StripMetadata(tt.input); actual != tt.expected {
				t.Errorf("StripMetadata(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestFrontMatterTags(t *testing.T) {
	tagged := &note.Note{Title: "Tagged", ID: "1", Tags: []string{"a", "b"}}
	fm := FrontMatter(tagged)
	if !strings.Contains(fm, "tags: [a, b]\n") {
		t.Errorf("expected tags line, got:\n%s", fm)
	}

	untagged := &note.Note{Title: "Plain", ID: "2"}
	fm = FrontMatter(untagged)
	if strings.Contains(fm, "tags") {
		t.Errorf("expected no tags line, got:\n%s", fm)
	}
	if fm != "---\ntitle: Plain\nid: 2\n---\n\n" {
		t.Errorf("unexpected front matter:\n%q", fm)
	}
}

func TestFrontMatterIsYAML(t *testing.T) {
	n := note.FromContent("x.org", ":ID: 20240102030405\n#+title: Graph Theory\n#+filetags: :math:graphs:\nbody")
	doc, _ := NewRewriter(ident.NewIndex(), StyleCosma).Rewrite(n)

	parts := strings.SplitN(doc, "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("expected front matter delimiters, got:\n%s", doc)
	}

	var meta struct {
		Title string   `yaml:"title"`
		ID    string   `yaml:"id"`
		Tags  []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		t.Fatalf("front matter is not valid YAML: %v", err)
	}

	if meta.Title != "Graph Theory" || meta.ID != "20240102030405" {
		t.Errorf("meta = %+v", meta)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "math" || meta.Tags[1] != "graphs" {
		t.Errorf("tags = %v", meta.Tags)
	}
}

func TestParseLinkStyle(t *testing.T) {
	for input, want := range map[string]LinkStyle{"": StyleCosma, "cosma": StyleCosma, "Zettlr": StyleZettlr} {
		got, err := ParseLinkStyle(input)
		if err != nil || got != want {
			t.Errorf("ParseLinkStyle(%q) = %q, %v, want %q", input, got, err, want)
		}
	}
	if _, err := ParseLinkStyle("obsidian"); err == nil {
		t.Error("Expected error for unknown style")
	}
}

// Helper functions

func normalizeWhitespace(s string) string {
	// Normalize line endings and trim trailing whitespace
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func showDiff(t *testing.T, expected, actual string) {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}

	t.Log("\nLine-by-line diff:")
	for i := 0; i < maxLines; i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}

		if expLine != actLine {
			t.Logf("Line %d:\n  Expected: %q\n  Actual:   %q", i+1, expLine, actLine)
		}
	}
}
