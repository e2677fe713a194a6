package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagstats/pkg/errors"
	"github.com/matzehuels/dagstats/pkg/observability"
)

const scenarioDB = "4\n1 1 0\n1 1 0\n2 2 1\n3 3 2\n"

func quietRunner() *Runner {
	var buf bytes.Buffer
	return NewRunner(log.New(&buf))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"yaml", false},
		{"JSON", true}, // case-sensitive
		{"svg", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions should pass: %v", err)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"bad format", Options{Format: "xml", Precision: 3, BucketWidth: 10}},
		{"negative precision", Options{Format: "text", Precision: -1, BucketWidth: 10}},
		{"large precision", Options{Format: "text", Precision: 11, BucketWidth: 10}},
		{"zero bucket width", Options{Format: "text", Precision: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != errors.ErrCodeInvalidInput {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestRunReader(t *testing.T) {
	res, err := quietRunner().RunReader(context.Background(), strings.NewReader(scenarioDB), "scenario", DefaultOptions())
	if err != nil {
		t.Fatalf("RunReader error: %v", err)
	}

	if res.Source != "scenario" {
		t.Errorf("Source = %q, want %q", res.Source, "scenario")
	}
	if res.Graph.NodeCount() != 5 {
		t.Errorf("NodeCount = %d, want 5", res.Graph.NodeCount())
	}
	if res.Stats.AvgDepth != 1.5 {
		t.Errorf("AvgDepth = %v, want 1.5", res.Stats.AvgDepth)
	}
	if res.Stats.LastTransaction != 5 {
		t.Errorf("LastTransaction = %d, want 5", res.Stats.LastTransaction)
	}
	if res.Timings.Total() < 0 {
		t.Errorf("Total timing negative: %v", res.Timings.Total())
	}
}

func TestRunReaderErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"empty", "", errors.ErrCodeParse},
		{"bad header", "x\n", errors.ErrCodeParse},
		{"forward reference", "1\n2 1 0\n", errors.ErrCodeValidation},
		{"missing record", "2\n1 1 0\n", errors.ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := quietRunner().RunReader(context.Background(), strings.NewReader(tt.input), "t", DefaultOptions())
			if err == nil {
				t.Fatal("expected error")
			}
			if res != nil {
				t.Errorf("expected nil result on error, got %+v", res)
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestRunReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietRunner().RunReader(ctx, strings.NewReader(scenarioDB), "t", DefaultOptions())
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.txt")
	if err := os.WriteFile(path, []byte(scenarioDB), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := quietRunner().Run(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Source != path {
		t.Errorf("Source = %q, want %q", res.Source, path)
	}
}

func TestRunMissingFile(t *testing.T) {
	_, err := quietRunner().Run(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("err = %v, want IO_ERROR", err)
	}
}

func TestWriteReport(t *testing.T) {
	res, err := quietRunner().RunReader(context.Background(), strings.NewReader(scenarioDB), "t", DefaultOptions())
	if err != nil {
		t.Fatalf("RunReader error: %v", err)
	}

	tests := []struct {
		format string
		want   string
	}{
		{FormatText, "> AVG DAG DEPTH: 1.5\n"},
		{FormatJSON, `"avg_depth": 1.5`},
		{FormatYAML, "avg_depth: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Format = tt.format
			var buf bytes.Buffer
			if err := WriteReport(&buf, res, opts); err != nil {
				t.Fatalf("WriteReport error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, buf.String())
			}
		})
	}

	var buf bytes.Buffer
	if err := WriteReport(&buf, res, Options{Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for invalid format", buf.Len())
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	stages []string
}

func (h *recordingHooks) add(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, s)
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	if err != nil {
		h.add("load:error")
		return
	}
	h.add("load")
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	if err != nil {
		h.add("build:error")
		return
	}
	h.add("build")
}

func (h *recordingHooks) OnDepthComplete(context.Context, int, time.Duration) { h.add("depth") }

func (h *recordingHooks) OnAggregateComplete(context.Context, time.Duration) { h.add("aggregate") }

func TestRunHooks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"success", scenarioDB, "load,build,depth,aggregate"},
		{"parse failure", "x\n", "load:error"},
		{"validation failure", "1\n5 1 0\n", "load,build:error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHooks{}
			observability.SetPipelineHooks(h)
			t.Cleanup(observability.Reset)

			_, _ = quietRunner().RunReader(context.Background(), strings.NewReader(tt.input), "t", DefaultOptions())
			if got := strings.Join(h.stages, ","); got != tt.want {
				t.Errorf("stages = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunMissingFileHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	_, err := quietRunner().Run(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("err = %v, want IO_ERROR", err)
	}
	if got := strings.Join(h.stages, ","); got != "load:error" {
		t.Errorf("stages = %q, want %q", got, "load:error")
	}
}
