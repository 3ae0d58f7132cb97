package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewConsole creates the logger used by the CLI. Verbose runs report progress
// on stdout; quiet runs only surface warnings and errors on stderr. When
// logFile is set every message is also appended there.
func NewConsole(verbose bool, logFile string) (*Logger, func(), error) {
	var w io.Writer = os.Stderr
	level := log.WarnLevel
	if verbose {
		w = os.Stdout
		level = log.DebugLevel
	}

	cleanup := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(w, f)
		cleanup = func() {
			f.Close()
		}
	}

	return NewWithLevel(w, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a conversion run
func (l *Logger) ConversionStarted(inputDir, outputDir string) {
	l.Info("conversion started",
		"input_dir", inputDir,
		"output_dir", outputDir)
}

// NotesCollected logs how many org files were found
func (l *Logger) NotesCollected(count int) {
	l.Debug("notes collected",
		"count", count)
}

// IndexBuilt logs the size of the title index
func (l *Logger) IndexBuilt(entries int, reused int) {
	l.Debug("title index built",
		"entries", entries,
		"reused_ids", reused)
}

// NoteConverted logs a successfully written note
func (l *Logger) NoteConverted(source, dest, id string) {
	l.Info("note converted",
		"source", source,
		"dest", dest,
		"id", id)
}

// NoteUnchanged logs a note whose output was already up to date
func (l *Logger) NoteUnchanged(source, dest string) {
	l.Debug("note unchanged",
		"source", source,
		"dest", dest)
}

// UnresolvedLink logs a file link that matched no note
func (l *Logger) UnresolvedLink(source, target string) {
	l.Debug("unresolved file link",
		"source", source,
		"target", target)
}

// TitleCollision logs two notes writing the same output file
func (l *Logger) TitleCollision(dest, first, second string) {
	l.Warn("output overwritten by note with same title",
		"dest", dest,
		"first", first,
		"second", second)
}

// TagFilterIgnored logs that a tag filter was given but is not applied
func (l *Logger) TagFilterIgnored(tags string) {
	l.Warn("tag filter is accepted but not applied; converting all notes",
		"tags", tags)
}

// IndexWritten logs the title index side file
func (l *Logger) IndexWritten(path string, entries int) {
	l.Info("title index written",
		"path", path,
		"entries", entries)
}

// ConversionCompleted logs the completion of a conversion run
func (l *Logger) ConversionCompleted(notes int, written int, duration time.Duration) {
	l.Info("conversion completed",
		"notes", notes,
		"written", written,
		"duration", duration.Round(time.Millisecond))
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, linkStyle string, creationDate bool) {
	l.Debug("config loaded",
		"path", path,
		"link_style", linkStyle,
		"creation_date", creationDate)
}
