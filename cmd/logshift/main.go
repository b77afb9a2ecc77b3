// # cmd/logshift/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"logshift/internal/app"
	"logshift/internal/config"
	"logshift/internal/history"
	"logshift/internal/output"
	"logshift/internal/shared/observability"
)

var (
	configPath = flag.String("config", "./logshift.toml", "Path to config file")
	once       = flag.Bool("once", false, "Run a single scan and exit")
	write      = flag.Bool("write", false, "Apply fixes to the scanned files")
	sarifPath  = flag.String("sarif", "", "Write a SARIF report to this path (overrides config)")
	ui         = flag.Bool("ui", false, "Enable terminal UI mode")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("logshift v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	logOutput := os.Stderr
	if *ui {
		// In UI mode, avoid terminal logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600); err == nil {
			logOutput = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) || *configPath != "./logshift.toml" {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if flag.NArg() > 0 {
		cfg.ScanPaths = []string{flag.Arg(0)}
	}
	if *sarifPath != "" {
		cfg.Output.SARIF = *sarifPath
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observe.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer shutdownTracing(ctx)

	a := app.New(cfg)
	defer a.Close()

	summary, err := a.Run(ctx)
	if err != nil {
		slog.Error("initial scan failed", "error", err)
		os.Exit(1)
	}
	slog.Debug("scan complete", "run_id", summary.RunID, "files", summary.FilesScanned, "occurrences", summary.Occurrences)

	filesFixed := 0
	if *write {
		filesFixed, err = a.ApplyFixes(ctx)
		if err != nil {
			slog.Error("failed to apply fixes", "error", err)
			os.Exit(1)
		}
		slog.Info("fixes applied", "files", filesFixed)
	}

	if cfg.Output.SARIF != "" {
		if err := writeSARIF(a, cfg.Output.SARIF); err != nil {
			slog.Error("failed to write SARIF report", "error", err)
		}
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			slog.Error("failed to open history", "error", err)
		} else {
			if err := a.RecordHistory(store, summary, filesFixed); err != nil {
				slog.Error("failed to record history", "error", err)
			}
			store.Close()
		}
	}

	if !*ui {
		fmt.Print(output.RenderText(a.ReportsByFile(), summary.FilesScanned))
	}

	exitCode := 0
	if summary.Occurrences > 0 && !*write {
		exitCode = 1
	}

	if *once {
		os.Exit(exitCode)
	}

	// Watch mode
	if cfg.Observe.Listen != "" {
		server := observability.NewServer(cfg.Observe.Listen, a.Health)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
		}
		defer server.Stop(ctx)
	}

	if err := a.StartWatcher(ctx); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := runUI(a); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func writeSARIF(a *app.App, path string) error {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	doc, err := output.GenerateSARIF(root, a.ReportsByFile())
	if err != nil {
		return err
	}
	return os.WriteFile(path, doc, 0644)
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "logshift", "logshift.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "logshift", "logshift.log")
	}

	return "logshift.log"
}
