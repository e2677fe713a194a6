package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dagstats/pkg/pipeline"
	"github.com/matzehuels/dagstats/pkg/stats"
)

const scenarioDB = "4\n1 1 0\n1 1 0\n2 2 1\n3 3 2\n"

func newTestServer(t *testing.T, maxBody int64) (*httptest.Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.New(&logs)
	h := New(Options{
		Runner:       pipeline.NewRunner(logger),
		Logger:       logger,
		Defaults:     pipeline.DefaultOptions(),
		MaxBodyBytes: maxBody,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, &logs
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestComputeStats(t *testing.T) {
	srv, logs := newTestServer(t, 0)

	resp := post(t, srv.URL+"/v1/stats", scenarioDB)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing X-Request-ID header")
	}

	var got stats.Report
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := stats.Report{
		AvgDepth:            1.5,
		AvgTxsPerDepth:      2,
		AvgRef:              1.6,
		MostReferenced:      1,
		MostReferencedCount: 4,
		LastTransaction:     5,
		MaxDepth:            2,
		Nodes:               5,
		Edges:               8,
		Reachable:           4,
		BucketWidth:         10,
		TimestampBuckets:    []stats.Bucket{{Start: 0, Count: 4}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "/v1/stats") {
		t.Errorf("request not logged:\n%s", logs.String())
	}
}

func TestComputeStatsPrecision(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp := post(t, srv.URL+"/v1/stats?precision=1", "5\n1 1 0\n1 2 0\n2 2 1\n3 3 2\n3 4 3\n")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got stats.Report
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AvgRef != 1.7 {
		t.Errorf("AvgRef = %v, want 1.7", got.AvgRef)
	}
}

func TestComputeStatsErrors(t *testing.T) {
	srv, _ := newTestServer(t, 64)

	tests := []struct {
		name       string
		query      string
		body       string
		wantStatus int
		wantCode   string
		wantLine   int
	}{
		{"parse error", "", "2\n1 1 0\n1 x 0\n", http.StatusUnprocessableEntity, "PARSE_ERROR", 3},
		{"validation error", "", "1\n2 1 0\n", http.StatusUnprocessableEntity, "VALIDATION_ERROR", 0},
		{"bad precision", "?precision=abc", scenarioDB, http.StatusBadRequest, "INVALID_INPUT", 0},
		{"precision out of range", "?precision=42", scenarioDB, http.StatusBadRequest, "INVALID_INPUT", 0},
		{"bad bucket width", "?bucket_width=0", scenarioDB, http.StatusBadRequest, "INVALID_INPUT", 0},
		{"body too large", "", "100\n" + strings.Repeat("1 1 0\n", 20), http.StatusRequestEntityTooLarge, "IO_ERROR", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/stats"+tt.query, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var got errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", got.Line, tt.wantLine)
			}
			if got.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "abc-123")
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	post(t, srv.URL+"/v1/stats", scenarioDB)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	want := `dagstats_http_requests_total{route="/v1/stats",status="200"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics missing %q:\n%s", want, body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp, err := http.Get(srv.URL + "/v1/stats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("statusFor(io.EOF) = %d, want 500", got)
	}
}

func TestComputeStatsLongLine(t *testing.T) {
	srv, _ := newTestServer(t, 0)

	resp := post(t, srv.URL+"/v1/stats", "1\n1 1 "+strings.Repeat("0", 70000)+"\n")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	var got errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Code != "PARSE_ERROR" || got.Line != 2 {
		t.Errorf("error = %+v, want PARSE_ERROR on line 2", got)
	}
}
