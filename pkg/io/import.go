package io

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/dagstats/pkg/dag"
	"github.com/matzehuels/dagstats/pkg/errors"
)

// fieldsPerRecord is the number of integers on a data line.
const fieldsPerRecord = 3

// MaxLineBytes bounds the length of a single line. Three int64 values with
// separators fit in well under 100 bytes.
const MaxLineBytes = 64 * 1024

// ReadDatabase decodes a transaction database from r.
//
// ReadDatabase returns a PARSE_ERROR if:
//   - The first line is missing or not an integer
//   - A data line does not hold exactly three integers
//   - The file has fewer or more data lines than declared
//
// A line longer than [MaxLineBytes] is a PARSE_ERROR as well.
//
// It returns a VALIDATION_ERROR if the declared count is outside
// [0, 10000), and an IO_ERROR if reading from r fails.
//
// Reference ranges are not checked here; that is [dag.Build]'s job.
// ReadDatabase does not close r.
func ReadDatabase(r io.Reader) ([]dag.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, scanError(err, 1)
		}
		return nil, errors.Parse(1, "missing record count")
	}
	header := strings.TrimSpace(sc.Text())
	n, err := strconv.Atoi(header)
	if err != nil {
		return nil, errors.Parse(1, "record count %q is not an integer", header)
	}
	if err := errors.ValidateRecordCount(n, 1); err != nil {
		return nil, err
	}

	records := make([]dag.Record, 0, n)
	line := 1
	for len(records) < n {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, scanError(err, line+1)
			}
			return nil, errors.Parse(line+1, "expected %d records, found %d", n, len(records))
		}
		line++
		rec, err := parseRecord(sc.Text(), line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	for sc.Scan() {
		line++
		if strings.TrimSpace(sc.Text()) != "" {
			return nil, errors.Parse(line, "unexpected data after %d declared records", n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, scanError(err, line+1)
	}

	return records, nil
}

// scanError classifies a scanner failure while reading the given line.
func scanError(err error, line int) error {
	if stderrors.Is(err, bufio.ErrTooLong) {
		return errors.Parse(line, "line longer than %d bytes", MaxLineBytes)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "read line %d", line)
}

// parseRecord decodes one data line. The record id is the line number.
func parseRecord(text string, line int) (dag.Record, error) {
	fields := strings.Fields(text)
	if len(fields) != fieldsPerRecord {
		return dag.Record{}, errors.Parse(line, "expected %d fields, got %d", fieldsPerRecord, len(fields))
	}

	left, err := strconv.Atoi(fields[0])
	if err != nil {
		return dag.Record{}, errors.Parse(line, "left reference %q is not an integer", fields[0])
	}
	right, err := strconv.Atoi(fields[1])
	if err != nil {
		return dag.Record{}, errors.Parse(line, "right reference %q is not an integer", fields[1])
	}
	ts, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return dag.Record{}, errors.Parse(line, "timestamp %q is not an integer", fields[2])
	}

	return dag.Record{ID: line, Left: left, Right: right, Timestamp: ts}, nil
}

// ImportDatabase reads the database file at path.
//
// ImportDatabase opens the file, decodes it using [ReadDatabase], and closes
// the file. Open failures are returned as IO_ERROR wrapping the os error;
// decoding failures are returned unchanged.
func ImportDatabase(path string) ([]dag.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open database")
	}
	defer f.Close()
	return ReadDatabase(f)
}
