package io

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dagstats/pkg/dag"
)

// WriteDatabase encodes records in the database text format and writes them
// to w. Record ids are not written; they follow from line positions, so
// records must be in id order for a lossless round trip.
func WriteDatabase(w io.Writer, records []dag.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, len(records)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", r.Left, r.Right, r.Timestamp); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}
	return bw.Flush()
}

// ExportDatabase writes records to a database file at path.
// This is a convenience wrapper around [WriteDatabase] for file-based output.
func ExportDatabase(path string, records []dag.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDatabase(f, records)
}
