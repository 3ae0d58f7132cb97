package convert

import (
	"regexp"
	"strings"

	"github.com/gerunddev/orgroam2cosma/internal/ident"
	"github.com/gerunddev/orgroam2cosma/internal/note"
)

var (
	// #+title:, #+filetags:, #+begin_src ... keyword lines
	orgKeywordRe = regexp.MustCompile(`(?m)^#\+.*$`)
	// column 0 property drawers, matched lazily up to the nearest :END:
	orgDrawerRe = regexp.MustCompile(`(?m)^:PROPERTIES:[\s\S]*?:END:`)
)

// Rewriter turns org-roam notes into Cosma markdown documents
type Rewriter struct {
	index *ident.Index
	style LinkStyle
}

// NewRewriter creates a rewriter resolving file links against index
func NewRewriter(index *ident.Index, style LinkStyle) *Rewriter {
	return &Rewriter{
		index: index,
		style: style,
	}
}

// Rewrite converts a note and stores the markdown body on it. It returns the
// full document and the file links that could not be resolved.
//
// The note must already carry its identifier; see ident.Resolve.
func (r *Rewriter) Rewrite(n *note.Note) (string, []string) {
	// Step 1: Keep image embeds out of the link pass
	body, markers := protectImages(n.Raw)

	// Step 2: Translate links, then put the images back as embeds
	body, unresolved := ConvertOrgLinks(body, r.index, r.style)
	body = restoreImages(body, markers)

	// Step 3: Drop org metadata
	body = StripMetadata(body)
	n.Body = body

	// Step 4: Prepend Cosma front matter
	return FrontMatter(n) + body + "\n", unresolved
}

// StripMetadata blanks #+ keyword lines, removes column 0 property drawers
// and trims surrounding whitespace
func StripMetadata(content string) string {
	content = orgKeywordRe.ReplaceAllString(content, "")
	content = orgDrawerRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// FrontMatter renders the YAML block Cosma expects. The tags line is
// omitted for untagged notes.
func FrontMatter(n *note.Note) string {
	var fm strings.Builder

	fm.WriteString("---\n")
	fm.WriteString("title: " + n.Title + "\n")
	fm.WriteString("id: " + n.ID + "\n")
	if len(n.Tags) > 0 {
		fm.WriteString("tags: [" + strings.Join(n.Tags, ", ") + "]\n")
	}
	fm.WriteString("---\n\n")

	return fm.String()
}
