// Package srt formats subtitle records in the SubRip (.srt) format:
// sequential numbered blocks of "ordinal, start --> end, text" separated
// by a blank line.
package srt

import (
	"fmt"
	"os"
)

// Record is one subtitle block. Ordinal is the source segment's ordinal;
// skipped segments leave gaps in the output numbering so every block stays
// traceable to its time window.
type Record struct {
	Ordinal int
	StartMS int64
	EndMS   int64
	Text    string
}

// FormatTime renders milliseconds as the SRT timestamp "HH:MM:SS,mmm".
func FormatTime(ms int64) string {
	hours := ms / 3_600_000
	minutes := ms / 60_000 % 60
	seconds := ms / 1000 % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// Block renders the record as one SRT block including the trailing blank
// line separator.
func (r Record) Block() string {
	return fmt.Sprintf("%d\n%s --> %s\n%s\n\n",
		r.Ordinal, FormatTime(r.StartMS), FormatTime(r.EndMS), r.Text)
}

// Writer appends records to an SRT file as they complete, so partial
// output survives cancellation or a mid-run failure.
type Writer struct {
	f *os.File
}

// NewWriter truncates any existing file at path and opens it for
// appending.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f}, nil
}

// Append writes one record block to the file.
func (w *Writer) Append(r Record) error {
	_, err := w.f.WriteString(r.Block())
	return err
}

func (w *Writer) Close() error {
	return w.f.Close()
}
