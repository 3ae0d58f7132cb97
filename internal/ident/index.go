package ident

import (
	"fmt"

	"github.com/gerunddev/orgroam2cosma/internal/note"
)

// Entry is one title→identifier pair of the index
type Entry struct {
	Title string
	ID    string
}

// Index maps cleaned note titles to identifiers. Keys keep the order they
// were first added; adding an existing key overwrites its identifier in place
// (last write wins).
type Index struct {
	order []string
	ids   map[string]string
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		ids: make(map[string]string),
	}
}

// Add records the identifier for a title. The title is cleaned first.
func (x *Index) Add(title, id string) {
	key := Clean(title)
	if _, exists := x.ids[key]; !exists {
		x.order = append(x.order, key)
	}
	x.ids[key] = id
}

// Lookup returns the identifier for a title or filename stem
func (x *Index) Lookup(title string) (string, bool) {
	id, ok := x.ids[Clean(title)]
	return id, ok
}

// Len returns the number of distinct titles
func (x *Index) Len() int {
	return len(x.order)
}

// Entries returns all pairs in insertion order
func (x *Index) Entries() []Entry {
	entries := make([]Entry, 0, len(x.order))
	for _, key := range x.order {
		entries = append(entries, Entry{Title: key, ID: x.ids[key]})
	}
	return entries
}

// Resolve assigns an identifier to every note and builds the title index.
// Notes keep their explicit identifier. Otherwise, when previous is non-nil,
// an identifier recorded for the same title by an earlier run is reused;
// failing that a timestamp token is generated.
//
// Resolve must see every note before any content is rewritten, so that
// links to notes later in file order still resolve.
func Resolve(notes []*note.Note, gen *Generator, previous *Index) (*Index, error) {
	index := NewIndex()

	for _, n := range notes {
		if n.ID == "" {
			if previous != nil {
				if id, ok := previous.Lookup(n.Title); ok {
					n.ID = id
				}
			}
		}
		if n.ID == "" {
			id, err := gen.Generate(n.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to generate id for %s: %w", n.Path, err)
			}
			n.ID = id
		}

		index.Add(n.Title, n.ID)
	}

	return index, nil
}
