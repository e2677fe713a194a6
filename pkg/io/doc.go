// Package io reads and writes transaction databases.
//
// # Overview
//
// A database is a plain text file. The first line holds the record count N;
// each of the following N lines holds three whitespace-separated integers:
// the left parent id, the right parent id and the timestamp.
//
//	4
//	1 1 0
//	1 1 0
//	2 2 1
//	3 3 2
//
// Record ids are implicit and equal to the line number, so the first record is
// id 2 and the synthetic root (id 1) never appears in the file.
//
// # Strictness
//
// [ReadDatabase] is all-or-nothing. A malformed line, a wrong token count, a
// count outside [0, 10000) or a mismatch between the declared and the actual
// number of lines aborts the whole read; the returned error carries the
// offending 1-based line number (see errors.GetLine). A partial record list
// would shift every later id, so none is ever returned.
//
// Whitespace-only lines after the last declared record are accepted so that
// files ending in one or more newlines load normally.
//
// # Writing
//
// [WriteDatabase] emits the same format, so a generated or filtered record
// list can be read back with [ReadDatabase].
package io
