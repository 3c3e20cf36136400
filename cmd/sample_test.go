package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newSampleTestCmd(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "sample"}
	cmd.SetOut(out)
	return cmd
}

func TestRunSampleReduces(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "run_a.json")
	if err := os.WriteFile(srcPath, []byte(evalLogJSON(25)), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	outPath := filepath.Join(dir, "run_a_small.json")

	var out bytes.Buffer
	if err := runSample(newSampleTestCmd(&out), []string{srcPath, outPath}); err != nil {
		t.Fatalf("runSample() error = %v", err)
	}

	doc := parseLogFile(t, outPath)
	if n := len(doc.GetArray("samples")); n != 10 {
		t.Errorf("output has %d examples, want 10", n)
	}
	if n := doc.GetInt("results", "total_samples"); n != 10 {
		t.Errorf("results.total_samples = %d, want 10", n)
	}

	if got := out.String(); !strings.Contains(got, "10 of 25 examples") {
		t.Errorf("output = %q, want the sampling report", got)
	}
}

func TestRunSamplePassThrough(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "run_b.json")
	if err := os.WriteFile(srcPath, []byte(evalLogJSON(3)), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	outPath := filepath.Join(dir, "run_b_small.json")

	var out bytes.Buffer
	if err := runSample(newSampleTestCmd(&out), []string{srcPath, outPath}); err != nil {
		t.Fatalf("runSample() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	// The file is rewritten pretty-printed even when nothing was cut.
	if !strings.HasPrefix(string(data), "{\n  ") {
		t.Errorf("output is not pretty-printed:\n%s", data)
	}
	doc := parseLogFile(t, outPath)
	if n := len(doc.GetArray("samples")); n != 3 {
		t.Errorf("output has %d examples, want 3", n)
	}

	if got := out.String(); !strings.Contains(got, "all 3 examples") {
		t.Errorf("output = %q, want the pass-through report", got)
	}
}

func TestRunSamplePositionalTarget(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "run_a.json")
	if err := os.WriteFile(srcPath, []byte(evalLogJSON(25)), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	outPath := filepath.Join(dir, "out.json")

	var out bytes.Buffer
	if err := runSample(newSampleTestCmd(&out), []string{srcPath, outPath, "5"}); err != nil {
		t.Fatalf("runSample() error = %v", err)
	}

	doc := parseLogFile(t, outPath)
	if n := len(doc.GetArray("samples")); n != 5 {
		t.Errorf("output has %d examples, want 5", n)
	}
}

func TestRunSampleInvalidCount(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "run_a.json")
	if err := os.WriteFile(srcPath, []byte(evalLogJSON(5)), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	err := runSample(newSampleTestCmd(&out), []string{srcPath, filepath.Join(dir, "out.json"), "many"})
	if err == nil {
		t.Fatal("runSample() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid sample count") {
		t.Errorf("runSample() error = %q, want invalid sample count", err)
	}
}

func TestRunSampleMissingFile(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	var out bytes.Buffer
	err := runSample(newSampleTestCmd(&out), []string{filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.json")})
	if err == nil {
		t.Fatal("runSample() expected error, got nil")
	}
}

func TestRunSampleMissingSummary(t *testing.T) {
	setTestConfig(t)

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "run_a.json")
	content := `{"samples":[{"id":1},{"id":2},{"id":3},{"id":4},{"id":5},{"id":6},{"id":7},{"id":8},{"id":9},{"id":10},{"id":11}]}`
	if err := os.WriteFile(srcPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out bytes.Buffer
	err := runSample(newSampleTestCmd(&out), []string{srcPath, filepath.Join(dir, "out.json")})
	if err == nil {
		t.Fatal("runSample() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "run_a.json") {
		t.Errorf("runSample() error = %q, want it to name the file", err)
	}
}
