package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPrecision is the number of decimals used for reported averages.
const DefaultPrecision = 3

// Report labels, in output order.
const (
	LabelAvgDepth       = "AVG DAG DEPTH"
	LabelAvgTxsPerDepth = "AVG TXS PER DEPTH"
	LabelAvgRef         = "AVG REF"
	LabelMostReferenced = "MOST REFERENCED TX"
	LabelLastTx         = "LAST TX"
)

// Line is one labeled value of the console report.
type Line struct {
	Label string
	Value string
}

// String renders the line as "> LABEL: value".
func (l Line) String() string { return "> " + l.Label + ": " + l.Value }

// Format renders v with precision decimals, trimming trailing zeros but
// keeping at least one fractional digit: 1.500 → "1.5", 2.000 → "2.0".
// A precision of 0 renders an integer.
func Format(v float64, precision int) string {
	s := strconv.FormatFloat(round(v, precision), 'f', precision, 64)
	if precision == 0 {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Lines returns the console report lines in their fixed order.
func (s Stats) Lines(precision int) []Line {
	return []Line{
		{LabelAvgDepth, Format(s.AvgDepth, precision)},
		{LabelAvgTxsPerDepth, Format(s.AvgTxsPerDepth, precision)},
		{LabelAvgRef, Format(s.AvgRef, precision)},
		{LabelMostReferenced, strconv.Itoa(s.MostReferenced)},
		{LabelLastTx, strconv.Itoa(s.LastTransaction)},
	}
}

// WriteText writes the console report to w, one line per statistic.
func WriteText(w io.Writer, s Stats, precision int) error {
	var b strings.Builder
	for _, l := range s.Lines(precision) {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Report is the serializable form of Stats, with averages rounded to the
// report precision.
type Report struct {
	AvgDepth            float64  `json:"avg_depth" yaml:"avg_depth"`
	AvgTxsPerDepth      float64  `json:"avg_txs_per_depth" yaml:"avg_txs_per_depth"`
	AvgRef              float64  `json:"avg_ref" yaml:"avg_ref"`
	MostReferenced      int      `json:"most_referenced_tx" yaml:"most_referenced_tx"`
	MostReferencedCount int      `json:"most_referenced_count" yaml:"most_referenced_count"`
	LastTransaction     int      `json:"last_tx" yaml:"last_tx"`
	MaxDepth            int      `json:"max_depth" yaml:"max_depth"`
	Nodes               int      `json:"nodes" yaml:"nodes"`
	Edges               int      `json:"edges" yaml:"edges"`
	Reachable           int      `json:"reachable" yaml:"reachable"`
	BucketWidth         int64    `json:"bucket_width" yaml:"bucket_width"`
	TimestampBuckets    []Bucket `json:"timestamp_buckets" yaml:"timestamp_buckets"`
}

// NewReport converts s into a Report rounded to precision decimals.
func NewReport(s Stats, precision int) Report {
	buckets := s.TimestampBuckets
	if buckets == nil {
		buckets = []Bucket{}
	}
	return Report{
		AvgDepth:            round(s.AvgDepth, precision),
		AvgTxsPerDepth:      round(s.AvgTxsPerDepth, precision),
		AvgRef:              round(s.AvgRef, precision),
		MostReferenced:      s.MostReferenced,
		MostReferencedCount: s.MostReferencedCount,
		LastTransaction:     s.LastTransaction,
		MaxDepth:            s.MaxDepth,
		Nodes:               s.Nodes,
		Edges:               s.Edges,
		Reachable:           s.Reachable,
		BucketWidth:         s.BucketWidth,
		TimestampBuckets:    buckets,
	}
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, s Stats, precision int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(s, precision)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes the report as YAML.
func WriteYAML(w io.Writer, s Stats, precision int) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewReport(s, precision)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
