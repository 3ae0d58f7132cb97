package note

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned for notes that are not valid UTF-8
var ErrInvalidEncoding = errors.New("note is not valid UTF-8")

// Line-anchored org-roam header fields
var (
	titleRe    = regexp.MustCompile(`(?im)^#\+title:[ \t]*(.+)$`)
	filetagsRe = regexp.MustCompile(`(?im)^#\+filetags:[ \t]*(.+)$`)
	idRe       = regexp.MustCompile(`(?m)^:ID:[ \t]*(.+)$`)
	roamKeyRe  = regexp.MustCompile(`(?im)^#\+roam_key:[ \t]*(.+)$`)
)

// Metadata holds the header fields extracted from an org-roam note.
// Empty fields mean the field was absent.
type Metadata struct {
	Title string
	Tags  []string
	ID    string
}

// Note is a single org-roam file moving through the conversion pipeline
type Note struct {
	Path  string
	Title string
	Tags  []string
	ID    string
	Raw   string
	Body  string

	// explicitID is true when ID came from the note itself
	explicitID bool
}

// HasExplicitID reports whether the identifier was declared in the note
func (n *Note) HasExplicitID() bool {
	return n.explicitID
}

// Load reads an org file and extracts its metadata.
// The title falls back to the filename stem.
func Load(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("failed to decode note %s: %w", path, ErrInvalidEncoding)
	}
	return FromContent(path, string(data)), nil
}

// FromContent builds a Note from already loaded content
func FromContent(path, content string) *Note {
	meta := ParseMetadata(content)

	title := meta.Title
	if title == "" {
		title = Stem(path)
	}

	return &Note{
		Path:       path,
		Title:      title,
		Tags:       meta.Tags,
		ID:         meta.ID,
		Raw:        content,
		explicitID: meta.ID != "",
	}
}

// ParseMetadata extracts title, filetags and identifier from note content.
// The :ID: property wins over the legacy #+roam_key keyword.
func ParseMetadata(content string) Metadata {
	var meta Metadata

	if m := titleRe.FindStringSubmatch(content); m != nil {
		meta.Title = strings.TrimSpace(m[1])
	}

	if m := filetagsRe.FindStringSubmatch(content); m != nil {
		meta.Tags = parseOrgTags(m[1])
	}

	if m := idRe.FindStringSubmatch(content); m != nil {
		meta.ID = strings.TrimSpace(m[1])
	}
	if meta.ID == "" {
		if m := roamKeyRe.FindStringSubmatch(content); m != nil {
			meta.ID = strings.TrimSpace(m[1])
		}
	}

	return meta
}

// parseOrgTags parses :tag1:tag2:tag3: format
func parseOrgTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ":") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Stem returns the filename without directory and extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
