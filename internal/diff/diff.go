package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Change classifies what writing a document would do to its destination
type Change int

const (
	// ChangeNone means the destination already holds the document
	ChangeNone Change = iota
	// ChangeNew means the destination does not exist yet
	ChangeNew
	// ChangeModified means the destination exists with different content
	ChangeModified
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "unchanged"
	case ChangeNew:
		return "new"
	case ChangeModified:
		return "modified"
	default:
		return fmt.Sprintf("change(%d)", int(c))
	}
}

// Generate compares the file at dest with the proposed content. For modified
// files it also returns a rendered unified diff (old file → new document).
func Generate(dest, proposed string) (Change, string, error) {
	current, err := os.ReadFile(dest)
	if err != nil {
		if os.IsNotExist(err) {
			return ChangeNew, "", nil
		}
		return ChangeNone, "", fmt.Errorf("failed to read %s: %w", dest, err)
	}

	if string(current) == proposed {
		return ChangeNone, "", nil
	}

	return ChangeModified, Render(Unified(dest, string(current), proposed)), nil
}

// Unified returns a unified diff between the current and proposed content
func Unified(dest, current, proposed string) string {
	name := filepath.Base(dest)
	edits := myers.ComputeEdits(span.URIFromPath(name), current, proposed)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (converted)", current, edits))
}

// Render wraps a unified diff in a diff code fence and renders it with
// Glamour. The plain fenced diff is returned if rendering fails.
func Render(unified string) string {
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}
