// Package runstore persists the ledger of build and check runs in SQLite.
package runstore

import "time"

// Event types appended by the CLI and the daemon.
const (
	EventRunStarted    = "RunStarted"
	EventCheckPassed   = "CheckPassed"
	EventCheckFailed   = "CheckFailed"
	EventRunCompleted  = "RunCompleted"
	EventRunFailed     = "RunFailed"
	EventBuildFinished = "BuildFinished"
	EventBuildFailed   = "BuildFailed"
)

// Event is a single entry in the run ledger.
type Event struct {
	ID        int64
	RunID     string
	Type      string
	Timestamp time.Time
	Payload   []byte
	Metadata  map[string]string
}
