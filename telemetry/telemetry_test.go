package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.csv")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	first := []EpisodeRecord{
		{Episode: 0, Score: 1, Steps: 30, Epsilon: 0.9},
		{Episode: 1, Score: 0, Steps: 12, Epsilon: 0.89},
	}
	second := []EpisodeRecord{
		{Episode: 2, Score: 3, Steps: 80, Epsilon: 0.88},
	}

	if err := w.Append(first); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := w.Append(second); err != nil {
		t.Fatalf("second Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 records:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "episode,") {
		t.Errorf("first line is not the header: %q", lines[0])
	}
	if strings.HasPrefix(lines[3], "episode,") {
		t.Error("header repeated on a later batch")
	}
	if !strings.HasPrefix(lines[3], "2,3,80,") {
		t.Errorf("last record = %q, want episode 2", lines[3])
	}
}

func TestWriterDisabled(t *testing.T) {
	w, err := NewWriter("")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if w != nil {
		t.Fatal("empty path should disable telemetry")
	}

	// Nil writer is a no-op, not a crash.
	if err := w.Append([]EpisodeRecord{{Episode: 0}}); err != nil {
		t.Errorf("Append on disabled writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close on disabled writer: %v", err)
	}
}

func TestWriterSkipsEmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.csv")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Append(nil); err != nil {
		t.Fatalf("Append(nil): %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("empty batch wrote %d bytes", len(data))
	}
}
