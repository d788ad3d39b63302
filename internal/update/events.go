package update

// EventKind names a lifecycle transition of a per-record probe or update.
type EventKind string

const (
	EventChecking    EventKind = "checking"
	EventDownloading EventKind = "downloading"
	EventSucceeded   EventKind = "succeeded"
	EventFailed      EventKind = "failed"
	EventSkipped     EventKind = "skipped"
)

// Event is one lifecycle notification. Events are observational only: the
// engine never changes behavior based on whether anyone listens.
type Event struct {
	Kind    EventKind
	App     string
	Reason  SkipReason // set for skipped events
	Message string
	Version string // available/new version, when known
}

// Observer receives lifecycle events, typically a progress UI. Notify is
// called from batch worker goroutines and must be safe for concurrent use.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

func (u *Updater) emit(e Event) {
	if u.observer != nil {
		u.observer.Notify(e)
	}
}
