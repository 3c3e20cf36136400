package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pagelift/evalsample/internal/bundle"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "json", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "table", want: FormatTable},
		{input: "text", want: FormatText},
		{input: "", want: FormatText},
		{input: "bogus", want: FormatText},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func sampleInfo() *bundle.BundleInfo {
	return &bundle.BundleInfo{
		Dir: "my-logs-www",
		Logs: []bundle.LogInfo{
			{Name: "run_a.json", Task: "demo", Samples: 25, Declared: 25, Bytes: 2048,
				Created: time.Now().Add(-2 * time.Hour)},
			{Name: "run_b.json", Task: "math", Samples: 3, Declared: 3, Bytes: 512},
		},
		TotalBytes: 4096,
		HasIndex:   true,
	}
}

func TestWriteBundleInfoText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatText).WriteBundleInfo(sampleInfo()); err != nil {
		t.Fatalf("WriteBundleInfo() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"run_a.json", "demo", "25 samples", "run_b.json", "2 logs"} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteBundleInfoJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatJSON).WriteBundleInfo(sampleInfo()); err != nil {
		t.Fatalf("WriteBundleInfo() error = %v", err)
	}

	var decoded bundle.BundleInfo
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Dir != "my-logs-www" {
		t.Errorf("dir = %q, want %q", decoded.Dir, "my-logs-www")
	}
	if len(decoded.Logs) != 2 {
		t.Errorf("got %d logs, want 2", len(decoded.Logs))
	}
	if decoded.TotalBytes != 4096 {
		t.Errorf("total_bytes = %d, want 4096", decoded.TotalBytes)
	}
}

func TestWriteBundleInfoTable(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatTable).WriteBundleInfo(sampleInfo()); err != nil {
		t.Fatalf("WriteBundleInfo() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"NAME", "TASK", "SAMPLES", "run_a.json", "run_b.json", "TOTAL"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}

func sampleSummary() *bundle.RunSummary {
	sum := &bundle.RunSummary{OutputDir: "my-logs-sampled"}
	sum.Add(bundle.LogReport{Name: "run_a.json", Original: 25, Kept: 10, Sampled: true, BytesIn: 2048, BytesOut: 900})
	sum.Add(bundle.LogReport{Name: "run_b.json", Original: 3, Kept: 3, BytesIn: 512, BytesOut: 520})
	return sum
}

func TestWriteRunSummaryText(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatText).WriteRunSummary(sampleSummary()); err != nil {
		t.Fatalf("WriteRunSummary() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"my-logs-sampled", "2 logs", "1 sampled"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary output missing %q:\n%s", want, got)
		}
	}
}

func TestWriteRunSummaryJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatJSON).WriteRunSummary(sampleSummary()); err != nil {
		t.Fatalf("WriteRunSummary() error = %v", err)
	}

	var decoded bundle.RunSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.OutputDir != "my-logs-sampled" {
		t.Errorf("output_dir = %q, want %q", decoded.OutputDir, "my-logs-sampled")
	}
	if decoded.Sampled != 1 {
		t.Errorf("sampled = %d, want 1", decoded.Sampled)
	}
	if decoded.BytesIn != 2560 || decoded.BytesOut != 1420 {
		t.Errorf("bytes = %d in, %d out, want 2560, 1420", decoded.BytesIn, decoded.BytesOut)
	}
}

func TestWriteRunSummaryTable(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := New(buf, FormatTable).WriteRunSummary(sampleSummary()); err != nil {
		t.Fatalf("WriteRunSummary() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"ORIGINAL", "KEPT", "run_a.json", "TOTAL"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
}
