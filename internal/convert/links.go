package convert

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gerunddev/orgroam2cosma/internal/ident"
)

// LinkStyle selects how resolved note references are rendered
type LinkStyle string

const (
	// StyleCosma renders [[id|label]]
	StyleCosma LinkStyle = "cosma"
	// StyleZettlr renders [label]([[id]])
	StyleZettlr LinkStyle = "zettlr"
)

// ParseLinkStyle validates a link style name
func ParseLinkStyle(s string) (LinkStyle, error) {
	switch LinkStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleCosma, "":
		return StyleCosma, nil
	case StyleZettlr:
		return StyleZettlr, nil
	default:
		return "", fmt.Errorf("invalid link style '%s': must be one of: cosma, zettlr", s)
	}
}

var (
	// [[target][label]] or [[target]]
	orgLinkRe = regexp.MustCompile(`\[\[([^\]]+?)\](?:\[([^\]]+)\])?\]`)
	webLinkRe = regexp.MustCompile(`^https?://`)
)

// ConvertOrgLinks rewrites every org link in content for Cosma and returns the
// file links that did not match any note in the index.
//
//	[[id:X][label]]        → [[X|label]]
//	[[file:note.org][lbl]] → [[<id of note>|lbl]] or [[lbl]] when unknown
//	[[https://...][label]] → [label](https://...)
//	[[anything][label]]    → [[label]]
//
// The label defaults to the full target.
func ConvertOrgLinks(content string, index *ident.Index, style LinkStyle) (string, []string) {
	var unresolved []string

	converted := orgLinkRe.ReplaceAllStringFunc(content, func(match string) string {
		submatches := orgLinkRe.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		target := submatches[1]
		label := target
		if len(submatches) > 2 && submatches[2] != "" {
			label = submatches[2]
		}

		switch {
		case strings.HasPrefix(target, "id:"):
			return noteRef(strings.TrimPrefix(target, "id:"), label, style)

		case strings.HasPrefix(target, "file:"):
			ref := strings.TrimPrefix(target, "file:")
			stem := strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
			if id, ok := index.Lookup(stem); ok {
				return noteRef(id, label, style)
			}
			unresolved = append(unresolved, ref)
			return placeholder(label)

		case webLinkRe.MatchString(target):
			return fmt.Sprintf("[%s](%s)", label, target)
		}

		return placeholder(label)
	})

	return converted, unresolved
}

// noteRef renders a resolved reference to another note
func noteRef(id, label string, style LinkStyle) string {
	if style == StyleZettlr {
		return fmt.Sprintf("[%s]([[%s]])", label, id)
	}
	return fmt.Sprintf("[[%s|%s]]", id, label)
}

// placeholder renders a link Cosma cannot resolve to a note
func placeholder(label string) string {
	return fmt.Sprintf("[[%s]]", label)
}
