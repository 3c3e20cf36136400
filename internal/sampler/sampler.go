// Package sampler reduces the example list of an evaluation log document
// to a fixed target count by uniform random selection.
package sampler

import (
	"math/rand"
	"sort"

	"github.com/valyala/fastjson"

	"github.com/pagelift/evalsample/internal/logdoc"
)

// Sampler draws random subsets of log document examples. All documents
// sampled through the same Sampler consume a single random stream, so a
// run over a fixed set of files with a fixed seed is reproducible.
type Sampler struct {
	target int
	rng    *rand.Rand
}

// New returns a Sampler that keeps at most target examples per document,
// drawing randomness from rng. The caller owns rng and its seed.
func New(target int, rng *rand.Rand) *Sampler {
	return &Sampler{target: target, rng: rng}
}

// Result describes what Sample did to a single document.
type Result struct {
	Original int  // examples present before sampling
	Kept     int  // examples present after sampling
	Sampled  bool // true when the example list was actually reduced
}

// Sample reduces doc's example list in place when it holds more than the
// target count, and rewrites the derived summary fields to match. When
// the document has no example list, or the list already fits, the
// document is returned untouched and no summary fields are modified.
//
// A document that needs reduction but lacks the summary structures to
// rewrite is an error; doc may be partially modified in that case.
func (s *Sampler) Sample(doc *logdoc.Doc) (Result, error) {
	examples := doc.Samples()
	total := len(examples)
	if total <= s.target {
		return Result{Original: total, Kept: total}, nil
	}

	positions := s.rng.Perm(total)[:s.target]
	sort.Ints(positions)

	keep := make([]*fastjson.Value, 0, s.target)
	for _, pos := range positions {
		keep = append(keep, examples[pos])
	}
	doc.SetSamples(keep)

	if err := doc.SetBookkeeping(s.target); err != nil {
		return Result{}, err
	}
	return Result{Original: total, Kept: s.target, Sampled: true}, nil
}
