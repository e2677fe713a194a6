package pipeline

import (
	"io"

	"github.com/matzehuels/dagstats/pkg/stats"
)

// WriteReport encodes the statistics of res to w in opts.Format.
// Nothing is written if the format is invalid.
func WriteReport(w io.Writer, res *Result, opts Options) error {
	if err := ValidateFormat(opts.Format); err != nil {
		return err
	}
	switch opts.Format {
	case FormatJSON:
		return stats.WriteJSON(w, res.Stats, opts.Precision)
	case FormatYAML:
		return stats.WriteYAML(w, res.Stats, opts.Precision)
	default:
		return stats.WriteText(w, res.Stats, opts.Precision)
	}
}
