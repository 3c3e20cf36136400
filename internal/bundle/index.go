package bundle

import (
	"fmt"
	"os"

	"github.com/valyala/fastjson"

	"github.com/pagelift/evalsample/internal/config"
	"github.com/pagelift/evalsample/internal/logdoc"
)

// index accumulates the manifest written alongside the sampled logs: a
// single JSON object mapping each log file name to its full sampled
// document, in the order the files were processed.
type index struct {
	arena fastjson.Arena
	root  *fastjson.Value
}

func newIndex() *index {
	ix := &index{}
	ix.root = ix.arena.NewObject()
	return ix
}

// add records doc under the given file name. The document's parsed tree
// is embedded directly, so it must not be mutated afterwards.
func (ix *index) add(name string, doc *logdoc.Doc) {
	ix.root.Set(name, doc.Value())
}

// writeFile renders the manifest as pretty-printed JSON at path.
func (ix *index) writeFile(path string) error {
	out, err := logdoc.Indent(ix.root)
	if err != nil {
		return fmt.Errorf("encode %s: %w", config.IndexFile, err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", config.IndexFile, err)
	}
	return nil
}
