// Package bundle assembles a sampled copy of an evaluation log bundle,
// small enough to publish on a static web host.
package bundle

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/pagelift/evalsample/internal/config"
	"github.com/pagelift/evalsample/internal/logdoc"
	"github.com/pagelift/evalsample/internal/sampler"
)

// Options configures a bundle assembly run.
type Options struct {
	// SourceDir is the bundle to sample. It must contain the assets
	// directory, the viewer entry point, the crawler policy file, and
	// a logs directory.
	SourceDir string

	// OutputDir receives the sampled bundle. It is deleted and
	// recreated on every run.
	OutputDir string

	// TargetCount is the maximum number of examples kept per log file.
	TargetCount int

	// Rand supplies the randomness for example selection. All log
	// files in a run draw from this one stream, in ascending file
	// name order.
	Rand *rand.Rand

	// OnLog, when set, is called after each log file is written.
	OnLog func(LogReport)
}

// LogReport describes the processing of one log file.
type LogReport struct {
	Name     string `json:"name"`      // file name within the logs directory
	Original int    `json:"original"`  // examples before sampling
	Kept     int    `json:"kept"`      // examples after sampling
	Sampled  bool   `json:"sampled"`   // whether the example list was reduced
	BytesIn  int64  `json:"bytes_in"`  // source file size
	BytesOut int64  `json:"bytes_out"` // written file size
}

// RunSummary aggregates the per-file reports of one assembly run.
type RunSummary struct {
	OutputDir string      `json:"output_dir"`
	Logs      []LogReport `json:"logs"`
	Sampled   int         `json:"sampled"`
	BytesIn   int64       `json:"bytes_in"`
	BytesOut  int64       `json:"bytes_out"`
}

// Add folds one report into the summary.
func (s *RunSummary) Add(r LogReport) {
	s.Logs = append(s.Logs, r)
	if r.Sampled {
		s.Sampled++
	}
	s.BytesIn += r.BytesIn
	s.BytesOut += r.BytesOut
}

// Assembler builds a sampled bundle from a source bundle.
type Assembler struct {
	opts    Options
	sampler *sampler.Sampler
}

// New returns an Assembler for the given options.
func New(opts Options) *Assembler {
	return &Assembler{
		opts:    opts,
		sampler: sampler.New(opts.TargetCount, opts.Rand),
	}
}

// Assemble builds the sampled bundle and returns the output directory.
// Any failure aborts the run and leaves the output in an undefined
// partial state; the next run starts from scratch anyway.
func (a *Assembler) Assemble() (string, error) {
	if err := a.resetOutput(); err != nil {
		return "", err
	}
	if err := a.copyStatic(); err != nil {
		return "", err
	}
	if err := a.writeMarker(); err != nil {
		return "", err
	}
	if err := a.processLogs(); err != nil {
		return "", err
	}
	return a.opts.OutputDir, nil
}

// resetOutput deletes any previous output and creates a fresh directory,
// so stale files from earlier runs can never leak into the bundle.
func (a *Assembler) resetOutput() error {
	if err := os.RemoveAll(a.opts.OutputDir); err != nil {
		return fmt.Errorf("reset output dir: %w", err)
	}
	if err := os.Mkdir(a.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

// copyStatic copies the viewer's static files verbatim: the assets tree,
// the entry point, and the crawler policy.
func (a *Assembler) copyStatic() error {
	src := filepath.Join(a.opts.SourceDir, config.AssetsDir)
	dst := filepath.Join(a.opts.OutputDir, config.AssetsDir)
	if err := copyTree(src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", config.AssetsDir, err)
	}

	for _, name := range []string{config.IndexHTML, config.RobotsFile} {
		from := filepath.Join(a.opts.SourceDir, name)
		to := filepath.Join(a.opts.OutputDir, name)
		if err := copyFile(from, to); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
	}
	return nil
}

// writeMarker creates the empty marker file that stops GitHub Pages from
// running the bundle through Jekyll.
func (a *Assembler) writeMarker() error {
	path := filepath.Join(a.opts.OutputDir, config.MarkerFile)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return fmt.Errorf("write %s: %w", config.MarkerFile, err)
	}
	return nil
}

// processLogs samples every log file in ascending name order, writes the
// reduced documents, and regenerates the index manifest from them.
func (a *Assembler) processLogs() error {
	logsOut := filepath.Join(a.opts.OutputDir, config.LogsDir)
	if err := os.Mkdir(logsOut, 0755); err != nil {
		return fmt.Errorf("create %s dir: %w", config.LogsDir, err)
	}

	files, err := config.ListLogFiles(filepath.Join(a.opts.SourceDir, config.LogsDir))
	if err != nil {
		return err
	}

	idx := newIndex()
	for _, path := range files {
		name := filepath.Base(path)

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := logdoc.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}

		res, err := a.sampler.Sample(doc)
		if err != nil {
			return fmt.Errorf("sample %s: %w", name, err)
		}

		out, err := doc.MarshalIndent()
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(logsOut, name), out, 0644); err != nil {
			return err
		}

		idx.add(name, doc)

		if a.opts.OnLog != nil {
			a.opts.OnLog(LogReport{
				Name:     name,
				Original: res.Original,
				Kept:     res.Kept,
				Sampled:  res.Sampled,
				BytesIn:  int64(len(data)),
				BytesOut: int64(len(out)),
			})
		}
	}

	return idx.writeFile(filepath.Join(logsOut, config.IndexFile))
}
