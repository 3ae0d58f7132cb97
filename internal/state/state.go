package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/orgroam2cosma/internal/ident"
	"github.com/natefinch/atomic"
)

// DefaultIndexFile is the name of the title→id side file in the output directory
const DefaultIndexFile = "_title2id.csv"

// LoadIndex reads a title→id side file written by a previous run
func LoadIndex(path string) (*ident.Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ident.NewIndex(), nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	index := ident.NewIndex()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse index %s: %w", path, err)
		}
		index.Add(record[0], record[1])
	}

	return index, nil
}

// SaveIndex writes every title,id pair of the index, one per line
func SaveIndex(path string, index *ident.Index) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, entry := range index.Entries() {
		if err := w.Write([]string{entry.Title, entry.ID}); err != nil {
			return fmt.Errorf("failed to encode index: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if err := WriteFile(path, buf.String()); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}

// WriteFile atomically replaces path with content, readable by everyone
func WriteFile(path string, content string) error {
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return err
	}

	// atomic.WriteFile creates new files with 0600
	return os.Chmod(path, 0644)
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HashContent computes the SHA256 hash of in-memory content in the same
// format as ComputeHash
func HashContent(content string) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256([]byte(content)))
}

// HasChanged reports whether writing content to path would change the file.
// A missing file counts as changed.
func HasChanged(path string, content string) (bool, error) {
	hash, err := ComputeHash(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return hash != HashContent(content), nil
}
