package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pagelift/evalsample/internal/config"
	"github.com/pagelift/evalsample/internal/logdoc"
)

// BundleInfo summarizes an evaluation log bundle without modifying it.
// It works on source bundles and sampled output alike.
type BundleInfo struct {
	Dir        string    `json:"dir"`
	Logs       []LogInfo `json:"logs"`
	TotalBytes int64     `json:"total_bytes"`
	HasMarker  bool      `json:"has_marker"`
	HasIndex   bool      `json:"has_index"`
}

// LogInfo summarizes one evaluation log file.
type LogInfo struct {
	Name     string    `json:"name"`
	Task     string    `json:"task,omitempty"`
	Samples  int       `json:"samples"`
	Declared int       `json:"declared_samples,omitempty"`
	Created  time.Time `json:"created,omitzero"`
	Bytes    int64     `json:"bytes"`
}

// Inspect reads the bundle at dir and reports what it holds: one entry
// per log file plus the total on-disk size of the whole tree.
func Inspect(dir string) (*BundleInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	info := &BundleInfo{Dir: dir}

	files, err := config.ListLogFiles(filepath.Join(dir, config.LogsDir))
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		doc, err := logdoc.ParseFile(path)
		if err != nil {
			return nil, err
		}

		li := LogInfo{
			Name:    filepath.Base(path),
			Task:    doc.Task(),
			Samples: doc.SampleCount(),
			Bytes:   st.Size(),
		}
		if n, ok := doc.DeclaredSampleCount(); ok {
			li.Declared = n
		}
		if raw := doc.CreatedAt(); raw != "" {
			if t, err := config.ParseLogTime(raw); err == nil {
				li.Created = t
			}
		}
		info.Logs = append(info.Logs, li)
	}

	total, err := treeSize(dir)
	if err != nil {
		return nil, err
	}
	info.TotalBytes = total

	if _, err := os.Stat(filepath.Join(dir, config.MarkerFile)); err == nil {
		info.HasMarker = true
	}
	if _, err := os.Stat(filepath.Join(dir, config.LogsDir, config.IndexFile)); err == nil {
		info.HasIndex = true
	}

	return info, nil
}

// treeSize returns the combined size of all regular files under root.
func treeSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", root, err)
	}
	return total, nil
}
