package update

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Log statuses for the machine-readable event log. One line per terminal
// event: "{ISO8601 timestamp} [{STATUS}] {app_name}: {detail}".
const (
	logSkip    = "SKIP"
	logUpdated = "UPDATED"
	logFailed  = "FAILED"
)

// EventLog writes terminal-event lines in the fixed grammar consumed by
// external tooling. Safe for concurrent use by batch workers.
type EventLog struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewEventLog returns an event log writing to w. A nil writer yields a log
// that discards everything.
func NewEventLog(w io.Writer) *EventLog {
	if w == nil {
		w = io.Discard
	}
	return &EventLog{w: w, now: time.Now}
}

func (l *EventLog) line(status, app, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s [%s] %s: %s\n", l.now().UTC().Format(time.RFC3339), status, app, detail)
}

func (l *EventLog) skip(app string, reason SkipReason, detail string) {
	if detail == "" {
		detail = string(reason)
	}
	l.line(logSkip, app, detail)
}

func (l *EventLog) updated(app, detail string) { l.line(logUpdated, app, detail) }
func (l *EventLog) failed(app, detail string)  { l.line(logFailed, app, detail) }
