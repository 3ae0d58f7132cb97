package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.DebugLevel)

	l.ConversionStarted("/org", "/cosma")
	l.NoteConverted("/org/a.org", "/cosma/A.md", "1")
	l.UnresolvedLink("/org/a.org", "missing.org")
	l.ConversionCompleted(2, 1, 1500*time.Microsecond)
	l.FileError("/org/b.org", errors.New("permission denied"))

	out := buf.String()
	for _, want := range []string{
		"conversion started",
		"input_dir=/org",
		"note converted",
		"dest=/cosma/A.md",
		"unresolved file link",
		"target=missing.org",
		"conversion completed",
		"written=1",
		"permission denied",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.WarnLevel)

	l.NotesCollected(3)
	l.NoteConverted("a.org", "A.md", "1")
	if buf.Len() != 0 {
		t.Errorf("expected info/debug to be filtered, got:\n%s", buf.String())
	}

	l.TagFilterIgnored("project")
	if !strings.Contains(buf.String(), "tag filter") {
		t.Errorf("expected warning, got:\n%s", buf.String())
	}
}

func TestNewConsoleWithLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.log")

	l, cleanup, err := NewConsole(false, logPath)
	if err != nil {
		t.Fatalf("NewConsole failed: %v", err)
	}
	l.TitleCollision("/out/A.md", "a.org", "b.org")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "output overwritten") {
		t.Errorf("log file missing warning:\n%s", data)
	}
}

func TestNewConsoleBadLogFile(t *testing.T) {
	if _, _, err := NewConsole(true, filepath.Join(t.TempDir(), "missing", "dir", "run.log")); err == nil {
		t.Error("Expected error for unwritable log file")
	}
}
