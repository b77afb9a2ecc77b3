// # internal/fix/apply.go
package fix

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"logshift/internal/lint"
)

// Apply rewrites source with the given edits. Edits must target disjoint
// spans; within that constraint application order does not matter. The
// rewritten file is assembled in one pass over the sorted edits.
func Apply(source []byte, edits []lint.Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]lint.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	size := uint(len(source))
	for i, e := range sorted {
		if e.End < e.Start || e.End > size {
			return nil, fmt.Errorf("edit span [%d,%d) out of range (source %d bytes)", e.Start, e.End, size)
		}
		if i > 0 && sorted[i-1].End > e.Start {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.Start)
		}
	}

	result := make([]byte, 0, len(source))
	var cursor uint
	for _, e := range sorted {
		result = append(result, source[cursor:e.Start]...)
		result = append(result, e.NewText...)
		cursor = e.End
	}
	result = append(result, source[cursor:]...)

	return result, nil
}

// Collect flattens the edit lists of a file's reports into one batch.
func Collect(reports []lint.Report) []lint.Edit {
	var edits []lint.Edit
	for _, r := range reports {
		edits = append(edits, r.Edits...)
	}
	return edits
}

// WriteFile replaces path's content atomically: the rewritten bytes land in
// a sibling temp file first, then rename over the original.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".logshift-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode())
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
