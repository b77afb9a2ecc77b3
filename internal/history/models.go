package history

import "time"

const SchemaVersion = 1

// Snapshot is one recorded lint run.
type Snapshot struct {
	SchemaVersion   int       `json:"schema_version"`
	RunID           string    `json:"run_id"`
	Timestamp       time.Time `json:"timestamp"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp,omitempty"`
	FilesScanned    int       `json:"files_scanned"`
	FilesSkipped    int       `json:"files_skipped"`
	Occurrences     int       `json:"occurrences"`
	ErrorCalls      int       `json:"error_calls"`
	WarnCalls       int       `json:"warn_calls"`
	InfoCalls       int       `json:"info_calls"`
	FilesFixed      int       `json:"files_fixed"`
}
