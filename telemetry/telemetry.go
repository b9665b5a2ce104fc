// Package telemetry writes per-episode training records as CSV for
// offline analysis of learning curves.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// EpisodeRecord is one row of the training telemetry CSV.
type EpisodeRecord struct {
	Episode      int     `csv:"episode"`
	Score        int     `csv:"score"`
	Steps        int     `csv:"steps"`
	Epsilon      float64 `csv:"epsilon"`
	States       int     `csv:"states"`
	AverageScore float64 `csv:"avg_score"`
	BestScore    int     `csv:"best_score"`
}

// Writer appends episode records to a CSV file, writing the header once.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates the telemetry file, truncating any previous run.
// Returns nil if path is empty (telemetry disabled).
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}

	return &Writer{file: f}, nil
}

// Append writes a batch of records. The first call includes the header.
func (w *Writer) Append(records []EpisodeRecord) error {
	if w == nil || len(records) == 0 {
		return nil
	}

	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close flushes and closes the telemetry file.
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}
