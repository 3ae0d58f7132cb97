package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gerunddev/orgroam2cosma/internal/collect"
	"github.com/gerunddev/orgroam2cosma/internal/convert"
	"github.com/gerunddev/orgroam2cosma/internal/diff"
	"github.com/gerunddev/orgroam2cosma/internal/ident"
	"github.com/gerunddev/orgroam2cosma/internal/logger"
	"github.com/gerunddev/orgroam2cosma/internal/note"
	"github.com/gerunddev/orgroam2cosma/internal/state"
)

// MarkdownExt is the extension of emitted notes
const MarkdownExt = ".md"

// Options configures a conversion run
type Options struct {
	InputDir  string
	OutputDir string

	// Tags is accepted for compatibility but does not filter notes
	Tags string

	LinkStyle    convert.LinkStyle
	CreationDate bool

	// ReuseIDs seeds identifiers from the index file of a previous run
	ReuseIDs  bool
	IndexFile string

	// DryRun writes nothing and reports what would change
	DryRun bool
}

// Converter runs the org-roam → Cosma pipeline
type Converter struct {
	opts Options
	gen  *ident.Generator
	log  *logger.Logger
	out  io.Writer
}

// NewConverter creates a new converter instance
func NewConverter(opts Options) *Converter {
	if opts.IndexFile == "" {
		opts.IndexFile = state.DefaultIndexFile
	}
	if opts.LinkStyle == "" {
		opts.LinkStyle = convert.StyleCosma
	}

	return &Converter{
		opts: opts,
		gen:  ident.NewGenerator(opts.CreationDate),
		log:  logger.Discard(),
		out:  io.Discard,
	}
}

// SetLogger sets the logger for conversion operations
func (c *Converter) SetLogger(l *logger.Logger) {
	c.log = l
}

// SetOutput sets where dry-run reports are printed
func (c *Converter) SetOutput(w io.Writer) {
	c.out = w
}

// SetClock replaces the clock used for generated identifiers
func (c *Converter) SetClock(now func() time.Time) {
	c.gen.Now = now
}

// Result represents the result of a conversion run
type Result struct {
	NotesProcessed int
	Written        int
	Unchanged      int
	IndexEntries   int
	Unresolved     int
	DryRun         bool
	StartTime      time.Time
	EndTime        time.Time
}

// String returns a human-readable summary of the conversion result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	verb := "written"
	if r.DryRun {
		verb = "would be written"
	}
	return fmt.Sprintf(
		"Conversion complete: %d notes processed, %d %s, %d unchanged, %d unresolved links (took %v)",
		r.NotesProcessed,
		r.Written,
		verb,
		r.Unchanged,
		r.Unresolved,
		duration.Round(time.Millisecond),
	)
}

// Run collects every note, resolves identifiers for all of them, then
// rewrites and writes each one followed by the title index. Any I/O error
// aborts the run.
func (c *Converter) Run() (*Result, error) {
	result := &Result{
		StartTime: time.Now(),
		DryRun:    c.opts.DryRun,
	}

	c.log.ConversionStarted(c.opts.InputDir, c.opts.OutputDir)
	if c.opts.Tags != "" {
		c.log.TagFilterIgnored(c.opts.Tags)
	}

	// Step 1: collect files
	paths, err := collect.Scan(c.opts.InputDir)
	if err != nil {
		return nil, err
	}
	c.log.NotesCollected(len(paths))

	// Step 2: extract metadata
	notes := make([]*note.Note, 0, len(paths))
	for _, path := range paths {
		n, err := note.Load(path)
		if err != nil {
			c.log.FileError(path, err)
			return nil, err
		}
		notes = append(notes, n)
	}

	// Step 3: assign identifiers and build the title index
	indexPath := filepath.Join(c.opts.OutputDir, c.opts.IndexFile)
	var previous *ident.Index
	if c.opts.ReuseIDs {
		previous, err = state.LoadIndex(indexPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load previous index: %w", err)
		}
	}

	index, err := ident.Resolve(notes, c.gen, previous)
	if err != nil {
		return nil, err
	}
	result.IndexEntries = index.Len()
	c.log.IndexBuilt(index.Len(), countReused(notes, previous))

	if !c.opts.DryRun {
		if err := os.MkdirAll(c.opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Step 4: rewrite and export each note
	rewriter := convert.NewRewriter(index, c.opts.LinkStyle)
	written := make(map[string]string)

	for _, n := range notes {
		doc, unresolved := rewriter.Rewrite(n)
		for _, target := range unresolved {
			c.log.UnresolvedLink(n.Path, target)
		}
		result.Unresolved += len(unresolved)

		dest := OutputPath(c.opts.OutputDir, n.Title)
		if first, ok := written[dest]; ok {
			c.log.TitleCollision(dest, first, n.Path)
		}
		written[dest] = n.Path

		if c.opts.DryRun {
			if err := c.preview(dest, doc, result); err != nil {
				return nil, err
			}
		} else {
			if err := c.write(n, dest, doc, result); err != nil {
				c.log.FileError(dest, err)
				return nil, err
			}
		}
		result.NotesProcessed++
	}

	// Step 5: save title→id mapping
	if !c.opts.DryRun {
		if err := state.SaveIndex(indexPath, index); err != nil {
			return nil, err
		}
		c.log.IndexWritten(indexPath, index.Len())
	}

	result.EndTime = time.Now()
	c.log.ConversionCompleted(result.NotesProcessed, result.Written, result.EndTime.Sub(result.StartTime))

	return result, nil
}

// write stores doc at dest unless the file already holds it
func (c *Converter) write(n *note.Note, dest, doc string, result *Result) error {
	changed, err := state.HasChanged(dest, doc)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dest, err)
	}
	if !changed {
		result.Unchanged++
		c.log.NoteUnchanged(n.Path, dest)
		return nil
	}

	if err := state.WriteFile(dest, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	result.Written++
	c.log.NoteConverted(n.Path, dest, n.ID)
	return nil
}

// preview reports what writing doc to dest would change
func (c *Converter) preview(dest, doc string, result *Result) error {
	change, rendered, err := diff.Generate(dest, doc)
	if err != nil {
		return err
	}

	switch change {
	case diff.ChangeNone:
		result.Unchanged++
	case diff.ChangeNew:
		result.Written++
		fmt.Fprintf(c.out, "new:      %s\n", filepath.Base(dest))
	case diff.ChangeModified:
		result.Written++
		fmt.Fprintf(c.out, "modified: %s\n%s\n", filepath.Base(dest), rendered)
	}
	return nil
}

// OutputPath derives the markdown path of a note from its cleaned title.
// Notes sharing a cleaned title map to the same path.
func OutputPath(outputDir, title string) string {
	return filepath.Join(outputDir, ident.Clean(filepath.Base(title))+MarkdownExt)
}

func countReused(notes []*note.Note, previous *ident.Index) int {
	if previous == nil {
		return 0
	}
	reused := 0
	for _, n := range notes {
		if n.HasExplicitID() {
			continue
		}
		if id, ok := previous.Lookup(n.Title); ok && id == n.ID {
			reused++
		}
	}
	return reused
}
