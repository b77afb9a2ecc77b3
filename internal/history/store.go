package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SaveSnapshot(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.RunID == "" {
		return fmt.Errorf("snapshot run id must not be empty")
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	if snapshot.SchemaVersion == 0 {
		snapshot.SchemaVersion = SchemaVersion
	}
	if snapshot.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snapshot.SchemaVersion)
	}

	commitTS := ""
	if !snapshot.CommitTimestamp.IsZero() {
		commitTS = snapshot.CommitTimestamp.UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
INSERT INTO runs (
  schema_version, run_id, ts_utc, commit_hash, commit_ts_utc,
  files_scanned, files_skipped, occurrences,
  error_calls, warn_calls, info_calls, files_fixed
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		snapshot.SchemaVersion,
		snapshot.RunID,
		snapshot.Timestamp.UTC().Format(time.RFC3339),
		snapshot.CommitHash,
		commitTS,
		snapshot.FilesScanned,
		snapshot.FilesSkipped,
		snapshot.Occurrences,
		snapshot.ErrorCalls,
		snapshot.WarnCalls,
		snapshot.InfoCalls,
		snapshot.FilesFixed,
	)
	if err != nil {
		return fmt.Errorf("insert run snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit snapshots, newest first.
func (s *Store) Recent(limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
SELECT schema_version, run_id, ts_utc, commit_hash, commit_ts_utc,
       files_scanned, files_skipped, occurrences,
       error_calls, warn_calls, info_calls, files_fixed
FROM runs
ORDER BY ts_utc DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts, commitTS string
		if err := rows.Scan(
			&snap.SchemaVersion,
			&snap.RunID,
			&ts,
			&snap.CommitHash,
			&commitTS,
			&snap.FilesScanned,
			&snap.FilesSkipped,
			&snap.Occurrences,
			&snap.ErrorCalls,
			&snap.WarnCalls,
			&snap.InfoCalls,
			&snap.FilesFixed,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			snap.Timestamp = parsed
		}
		if commitTS != "" {
			if parsed, err := time.Parse(time.RFC3339, commitTS); err == nil {
				snap.CommitTimestamp = parsed
			}
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
