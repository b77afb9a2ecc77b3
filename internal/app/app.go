// # internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"logshift/internal/config"
	"logshift/internal/fix"
	"logshift/internal/history"
	"logshift/internal/lint"
	"logshift/internal/parser"
	"logshift/internal/shared/observability"
	"logshift/internal/shared/util"
	"logshift/internal/watcher"
)

// Update is pushed to the UI after every scan or watch-triggered re-lint.
type Update struct {
	ReportsByFile map[string][]lint.Report
	FilesScanned  int
}

// RunSummary describes one complete lint run.
type RunSummary struct {
	RunID        string
	FilesScanned int
	FilesSkipped int
	Occurrences  int
	ErrorCalls   int
	WarnCalls    int
	InfoCalls    int
	Duration     time.Duration
}

type fileResult struct {
	source  []byte
	reports []lint.Report
}

type App struct {
	Config *config.Config
	Parser *parser.Parser

	mu           sync.RWMutex
	results      map[string]fileResult
	filesScanned int
	filesSkipped int

	updateMu sync.RWMutex
	onUpdate func(Update)

	watcher *watcher.Watcher
	limiter *util.Limiter
}

func New(cfg *config.Config) *App {
	return &App{
		Config:  cfg,
		Parser:  parser.NewParser(parser.NewGrammarLoader()),
		results: make(map[string]fileResult),
		limiter: util.NewLimiter(cfg.Watch.RelintsPerSecond, 1),
	}
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

// Run scans every configured path once and returns the run summary.
func (a *App) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Run")
	defer span.End()

	start := time.Now()

	files, err := a.ScanDirectories(a.Config.ScanPaths, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return RunSummary{}, err
	}

	a.mu.Lock()
	a.results = make(map[string]fileResult, len(files))
	a.filesScanned = 0
	a.filesSkipped = 0
	a.mu.Unlock()

	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}
		if err := a.ProcessFile(ctx, filePath); err != nil {
			slog.Warn("failed to process file", "path", filePath, "error", err)
			a.mu.Lock()
			a.filesSkipped++
			a.mu.Unlock()
		}
	}

	summary := a.summarize(uuid.New().String(), time.Since(start))

	observability.ScanDuration.Observe(summary.Duration.Seconds())
	observability.FilesScanned.Set(float64(summary.FilesScanned))

	a.notify()
	return summary, nil
}

// ProcessFile lints a single file and caches its reports.
func (a *App) ProcessFile(ctx context.Context, path string) error {
	_, span := observability.Tracer.Start(ctx, "app.ProcessFile")
	defer span.End()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	source, err := a.Parser.ParseFile(path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer source.Close()

	reports := lint.NewEngine(source.Source).Run(source.Scope, path)
	for _, report := range reports {
		observability.DiagnosticsTotal.WithLabelValues(report.Method.String()).Inc()
	}

	a.mu.Lock()
	a.results[path] = fileResult{source: content, reports: reports}
	a.filesScanned++
	a.mu.Unlock()

	return nil
}

// ApplyFixes rewrites every file with outstanding reports and returns the
// number of files changed. Cached results are refreshed so a subsequent
// summary reflects the fixed state.
func (a *App) ApplyFixes(ctx context.Context) (int, error) {
	a.mu.RLock()
	pending := make(map[string]fileResult)
	for path, result := range a.results {
		if len(result.reports) > 0 {
			pending[path] = result
		}
	}
	a.mu.RUnlock()

	fixed := 0
	for path, result := range pending {
		rewritten, err := fix.Apply(result.source, fix.Collect(result.reports))
		if err != nil {
			return fixed, fmt.Errorf("apply fixes to %s: %w", path, err)
		}
		if err := fix.WriteFile(path, rewritten); err != nil {
			return fixed, err
		}
		fixed++
		observability.FixesTotal.Inc()

		if err := a.ProcessFile(ctx, path); err != nil {
			slog.Warn("failed to re-lint fixed file", "path", path, "error", err)
		}
	}

	return fixed, nil
}

// ScanDirectories walks roots collecting lintable files, honoring the
// exclude globs against directory and file base names.
func (a *App) ScanDirectories(roots, excludeDirs, excludeFiles []string) ([]string, error) {
	dirGlobs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, err
	}
	fileGlobs, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				for _, g := range dirGlobs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !parser.SupportedFile(path) {
				return nil
			}
			for _, g := range fileGlobs {
				if g.Match(base) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}
	return files, nil
}

// StartWatcher re-lints changed files until ctx is cancelled. Change bursts
// are debounced by the watcher and additionally rate limited.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) {
			if !a.limiter.Allow(1) {
				if err := a.limiter.Wait(ctx, 1); err != nil {
					return
				}
			}
			a.handleChanges(ctx, paths)
		},
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.Config.ScanPaths)
}

func (a *App) handleChanges(ctx context.Context, paths []string) {
	slog.Info("detected changes", "count", len(paths))

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			a.mu.Lock()
			delete(a.results, path)
			a.mu.Unlock()
			continue
		}
		if err := a.ProcessFile(ctx, path); err != nil {
			slog.Warn("failed to re-process file", "path", path, "error", err)
		}
	}

	a.notify()
}

func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// ReportsByFile returns a copy of the current diagnostics.
func (a *App) ReportsByFile() map[string][]lint.Report {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[string][]lint.Report, len(a.results))
	for path, result := range a.results {
		if len(result.reports) > 0 {
			out[path] = result.reports
		}
	}
	return out
}

func (a *App) CurrentUpdate() Update {
	a.mu.RLock()
	scanned := a.filesScanned
	a.mu.RUnlock()
	return Update{
		ReportsByFile: a.ReportsByFile(),
		FilesScanned:  scanned,
	}
}

func (a *App) Health() observability.HealthStatus {
	update := a.CurrentUpdate()
	total := 0
	for _, reports := range update.ReportsByFile {
		total += len(reports)
	}
	return observability.HealthStatus{
		Status:       "up",
		FilesScanned: update.FilesScanned,
		Diagnostics:  total,
	}
}

// RecordHistory persists one run snapshot, attaching git metadata of the
// first scan root.
func (a *App) RecordHistory(store *history.Store, summary RunSummary, filesFixed int) error {
	root := "."
	if len(a.Config.ScanPaths) > 0 {
		root = a.Config.ScanPaths[0]
	}
	commitHash, commitTime := history.ResolveGitMetadata(root)

	return store.SaveSnapshot(history.Snapshot{
		RunID:           summary.RunID,
		Timestamp:       time.Now().UTC(),
		CommitHash:      commitHash,
		CommitTimestamp: commitTime,
		FilesScanned:    summary.FilesScanned,
		FilesSkipped:    summary.FilesSkipped,
		Occurrences:     summary.Occurrences,
		ErrorCalls:      summary.ErrorCalls,
		WarnCalls:       summary.WarnCalls,
		InfoCalls:       summary.InfoCalls,
		FilesFixed:      filesFixed,
	})
}

func (a *App) summarize(runID string, elapsed time.Duration) RunSummary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	summary := RunSummary{
		RunID:        runID,
		FilesScanned: a.filesScanned,
		FilesSkipped: a.filesSkipped,
		Duration:     elapsed,
	}
	for _, result := range a.results {
		for _, report := range result.reports {
			summary.Occurrences++
			switch report.Method {
			case lint.MethodError:
				summary.ErrorCalls++
			case lint.MethodWarn:
				summary.WarnCalls++
			case lint.MethodInfo:
				summary.InfoCalls++
			}
		}
	}
	return summary
}

func (a *App) notify() {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(a.CurrentUpdate())
	}
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
