package ident

import (
	"fmt"
	"os"
	"time"
)

// TokenLayout formats generated identifiers to second precision (YYYYMMDDhhmmss).
// Two notes stamped within the same second get the same token.
const TokenLayout = "20060102150405"

// Generator produces timestamp identifiers for notes without an :ID: property
type Generator struct {
	// UseCreationDate stamps notes with their file creation time instead of
	// the processing time
	UseCreationDate bool

	// Now returns the processing time; defaults to time.Now
	Now func() time.Time
}

// NewGenerator creates a generator backed by the wall clock
func NewGenerator(useCreationDate bool) *Generator {
	return &Generator{
		UseCreationDate: useCreationDate,
		Now:             time.Now,
	}
}

// Generate returns a timestamp token for the note at path
func (g *Generator) Generate(path string) (string, error) {
	if g.UseCreationDate {
		created, err := CreationTime(path)
		if err != nil {
			return "", fmt.Errorf("failed to read creation time of %s: %w", path, err)
		}
		return Format(created), nil
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return Format(now()), nil
}

// Format renders t as an identifier token in local time
func Format(t time.Time) string {
	return t.Local().Format(TokenLayout)
}

// modTime is the fallback on platforms without a birth time
func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
