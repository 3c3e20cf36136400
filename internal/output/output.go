// Package output provides formatted rendering of bundle summaries and
// run reports. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pagelift/evalsample/internal/bundle"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteBundleInfo renders a bundle summary in the configured format.
func (wr *Writer) WriteBundleInfo(info *bundle.BundleInfo) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(info)
	case FormatTable:
		return wr.writeInfoTable(info)
	default:
		return wr.writeInfoText(info)
	}
}

func (wr *Writer) writeInfoText(info *bundle.BundleInfo) error {
	for _, li := range info.Logs {
		line := li.Name
		if li.Task != "" {
			line += "  " + li.Task
		}
		line += fmt.Sprintf("  %d samples  %s", li.Samples, humanize.Bytes(uint64(li.Bytes)))
		if !li.Created.IsZero() {
			line += "  " + humanize.Time(li.Created)
		}
		fmt.Fprintln(wr.w, line)
	}
	fmt.Fprintf(wr.w, "%d logs, %s total\n", len(info.Logs), humanize.Bytes(uint64(info.TotalBytes)))
	return nil
}

func (wr *Writer) writeInfoTable(info *bundle.BundleInfo) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(wr.w)
	tw.AppendHeader(table.Row{"Name", "Task", "Samples", "Size", "Created"})

	for _, li := range info.Logs {
		created := ""
		if !li.Created.IsZero() {
			created = humanize.Time(li.Created)
		}
		tw.AppendRow(table.Row{li.Name, li.Task, li.Samples, humanize.Bytes(uint64(li.Bytes)), created})
	}
	tw.AppendFooter(table.Row{"Total", "", "", humanize.Bytes(uint64(info.TotalBytes)), ""})

	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}

// WriteRunSummary renders the result of an assembly run in the
// configured format. In text mode this is a single closing line; the
// per-file detail has already been streamed while the run progressed.
func (wr *Writer) WriteRunSummary(sum *bundle.RunSummary) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(sum)
	case FormatTable:
		return wr.writeRunTable(sum)
	default:
		return wr.writeRunText(sum)
	}
}

func (wr *Writer) writeRunText(sum *bundle.RunSummary) error {
	fmt.Fprintf(wr.w, "Wrote %s: %d logs (%d sampled), %s from %s\n",
		sum.OutputDir, len(sum.Logs), sum.Sampled,
		humanize.Bytes(uint64(sum.BytesOut)), humanize.Bytes(uint64(sum.BytesIn)))
	return nil
}

func (wr *Writer) writeRunTable(sum *bundle.RunSummary) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(wr.w)
	tw.AppendHeader(table.Row{"Name", "Original", "Kept", "In", "Out"})

	for _, r := range sum.Logs {
		tw.AppendRow(table.Row{
			r.Name, r.Original, r.Kept,
			humanize.Bytes(uint64(r.BytesIn)), humanize.Bytes(uint64(r.BytesOut)),
		})
	}
	tw.AppendFooter(table.Row{
		"Total", "", "",
		humanize.Bytes(uint64(sum.BytesIn)), humanize.Bytes(uint64(sum.BytesOut)),
	})

	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}
