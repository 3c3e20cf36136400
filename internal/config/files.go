package config

import (
	"path/filepath"
	"sort"
)

// ListLogFiles returns the evaluation log files directly under dir,
// sorted ascending by name so processing order is deterministic. The
// index manifest is excluded; it is derived from the logs, not one of
// them. A missing or empty directory yields an empty list.
func ListLogFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if filepath.Base(match) == IndexFile {
			continue
		}
		files = append(files, match)
	}

	sort.Strings(files)
	return files, nil
}
