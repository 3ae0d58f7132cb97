package verify

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/orgroam2cosma/internal/collect"
)

// ErrProblems is returned by Check when the report contains problems
var ErrProblems = errors.New("converted notes have problems")

var (
	cosmaRefRe  = regexp.MustCompile(`\[\[([^\]|]+)\|[^\]]*\]\]`)
	zettlrRefRe = regexp.MustCompile(`\]\(\[\[([^\]]+)\]\]\)`)
)

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Header is the front matter of a converted note
type Header struct {
	Title string   `yaml:"title"`
	ID    string   `yaml:"id"`
	Tags  []string `yaml:"tags"`
}

// Problem describes a single defect found in the output directory
type Problem struct {
	File    string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.File, p.Message)
}

// Report summarizes a verification pass
type Report struct {
	Files    int
	Problems []Problem
}

// OK reports whether no problems were found
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) add(file, format string, args ...any) {
	r.Problems = append(r.Problems, Problem{File: file, Message: fmt.Sprintf(format, args...)})
}

// Check reads every markdown note in dir and reports missing front matter
// fields, identifiers used by more than one note, and references to
// identifiers no note carries. Bare [[label]] links are placeholders for
// unresolved targets and are not checked.
func Check(dir string) (*Report, error) {
	paths, err := collect.ScanDirectory(dir, ".md")
	if err != nil {
		return nil, err
	}

	report := &Report{}
	owners := make(map[string]string)
	refs := make(map[string][]string)

	for _, path := range paths {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		report.Files++

		var header Header
		body, err := frontmatter.MustParse(bytes.NewReader(data), &header, yamlFormat)
		if err != nil {
			report.add(rel, "invalid front matter: %v", err)
			continue
		}

		if strings.TrimSpace(header.Title) == "" {
			report.add(rel, "missing title")
		}
		if strings.TrimSpace(header.ID) == "" {
			report.add(rel, "missing id")
		} else if first, ok := owners[header.ID]; ok {
			report.add(rel, "id %s already used by %s", header.ID, first)
		} else {
			owners[header.ID] = rel
		}

		refs[rel] = References(string(body))
	}

	files := make([]string, 0, len(refs))
	for file := range refs {
		files = append(files, file)
	}
	sort.Strings(files)

	for _, file := range files {
		for _, ref := range refs[file] {
			if _, ok := owners[ref]; !ok {
				report.add(file, "dangling reference to %s", ref)
			}
		}
	}

	if !report.OK() {
		return report, ErrProblems
	}
	return report, nil
}

// References extracts note identifiers referenced from a markdown body, in
// both the cosma [[id|label]] and the zettlr [label]([[id]]) forms.
func References(body string) []string {
	var out []string
	for _, m := range zettlrRefRe.FindAllStringSubmatch(body, -1) {
		out = append(out, m[1])
	}
	stripped := zettlrRefRe.ReplaceAllString(body, "]()")
	for _, m := range cosmaRefRe.FindAllStringSubmatch(stripped, -1) {
		out = append(out, m[1])
	}
	return out
}
