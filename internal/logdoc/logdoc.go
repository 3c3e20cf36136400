// Package logdoc models a single evaluation log document.
//
// Documents are parsed with fastjson so that every field this program does
// not touch survives a read/modify/write cycle byte-for-byte, including
// object key order and fields with no schema known to this tool.
package logdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/valyala/fastjson"
)

// Doc is one parsed evaluation log document.
//
// The parser and arena are owned by the document and keep the parsed tree
// valid for as long as the Doc is reachable. A Doc must not be shared
// across goroutines.
type Doc struct {
	parser fastjson.Parser
	arena  fastjson.Arena
	root   *fastjson.Value
}

// Parse parses a log document from raw JSON bytes.
func Parse(data []byte) (*Doc, error) {
	d := &Doc{}
	root, err := d.parser.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	d.root = root
	return d, nil
}

// ParseFile reads and parses the log document at path.
func ParseFile(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// Samples returns the document's example list, or nil when the document has
// no "samples" array.
func (d *Doc) Samples() []*fastjson.Value {
	return d.root.GetArray("samples")
}

// SampleCount returns the number of examples in the "samples" array, or 0
// when the array is absent.
func (d *Doc) SampleCount() int {
	return len(d.Samples())
}

// SetSamples replaces the "samples" array with the given elements. The
// elements may come from the document's own parsed tree.
func (d *Doc) SetSamples(keep []*fastjson.Value) {
	arr := d.arena.NewArray()
	for i, v := range keep {
		arr.SetArrayItem(i, v)
	}
	d.root.Set("samples", arr)
}

// SetBookkeeping rewrites the derived summary fields to describe a document
// holding exactly n examples: eval.dataset.samples, eval.dataset.sample_ids
// (renumbered 1..n), results.total_samples and results.completed_samples.
//
// It fails when the eval.dataset or results substructure is missing, since
// there is then no place to record the new counts. Callers only invoke this
// after an actual reduction; pass-through documents are never validated.
func (d *Doc) SetBookkeeping(n int) error {
	ev := d.root.Get("eval")
	if ev == nil || ev.Type() != fastjson.TypeObject {
		return fmt.Errorf(`log document has no "eval" object`)
	}
	ds := ev.Get("dataset")
	if ds == nil || ds.Type() != fastjson.TypeObject {
		return fmt.Errorf(`log document has no "eval.dataset" object`)
	}
	res := d.root.Get("results")
	if res == nil || res.Type() != fastjson.TypeObject {
		return fmt.Errorf(`log document has no "results" object`)
	}

	ds.Set("samples", d.arena.NewNumberInt(n))

	ids := d.arena.NewArray()
	for i := 0; i < n; i++ {
		ids.SetArrayItem(i, d.arena.NewNumberInt(i+1))
	}
	ds.Set("sample_ids", ids)

	res.Set("total_samples", d.arena.NewNumberInt(n))
	res.Set("completed_samples", d.arena.NewNumberInt(n))
	return nil
}

// Task returns the eval task name, or "" when the document does not carry
// one.
func (d *Doc) Task() string {
	return string(d.root.GetStringBytes("eval", "task"))
}

// CreatedAt returns the raw eval creation timestamp, or "" when the
// document does not carry one.
func (d *Doc) CreatedAt() string {
	return string(d.root.GetStringBytes("eval", "created"))
}

// DeclaredSampleCount returns the eval.dataset.samples value when the
// document carries one.
func (d *Doc) DeclaredSampleCount() (int, bool) {
	v := d.root.Get("eval", "dataset", "samples")
	if v == nil {
		return 0, false
	}
	n, err := v.Int()
	if err != nil {
		return 0, false
	}
	return n, true
}

// Value returns the document's root value, for embedding the document into
// a larger JSON structure such as the bundle index.
func (d *Doc) Value() *fastjson.Value {
	return d.root
}

// MarshalIndent serializes the document as pretty-printed JSON with 2-space
// indentation.
func (d *Doc) MarshalIndent() ([]byte, error) {
	return Indent(d.root)
}

// Indent serializes any JSON value as pretty-printed JSON with 2-space
// indentation, the format used for every file this program writes.
func Indent(v *fastjson.Value) ([]byte, error) {
	compact := v.MarshalTo(nil)
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
