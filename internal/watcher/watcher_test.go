// # internal/watcher/watcher_test.go
package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collectChanges(t *testing.T, dir string, excludeFiles []string) (<-chan []string, *Watcher) {
	t.Helper()

	changes := make(chan []string, 4)
	w, err := NewWatcher(50*time.Millisecond, []string{"node_modules"}, excludeFiles, func(paths []string) {
		changes <- paths
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatal(err)
	}
	return changes, w
}

func TestWatcherReportsSourceChanges(t *testing.T) {
	dir := t.TempDir()
	changes, _ := collectChanges(t, dir, nil)

	path := filepath.Join(dir, "app.js")
	if err := os.WriteFile(path, []byte("console.error(e);\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		if len(paths) != 1 || paths[0] != path {
			t.Errorf("unexpected change set: %v", paths)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	changes, _ := collectChanges(t, dir, nil)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		t.Errorf("unexpected notification for unsupported file: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherHonorsFileExcludes(t *testing.T) {
	dir := t.TempDir()
	changes, _ := collectChanges(t, dir, []string{"*.min.js"})

	if err := os.WriteFile(filepath.Join(dir, "bundle.min.js"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		t.Errorf("unexpected notification for excluded file: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}
