package chart

import "time"

// EventKind identifies the type of a render event.
type EventKind string

const (
	EventRunStarted      EventKind = "run_started"
	EventChartStarted    EventKind = "chart_started"
	EventChartFinished   EventKind = "chart_finished"
	EventChartFailed     EventKind = "chart_failed"
	EventArtifactWritten EventKind = "artifact_written"
	EventRunFinished     EventKind = "run_finished"
)

// Event describes one step of a render run. Chart-level events carry the
// chart identifier; artifact events additionally carry the written path and
// format.
type Event struct {
	Kind    EventKind
	RunID   string
	Chart   ID
	Format  string
	Path    string
	Err     string // message for EventChartFailed
	Time    time.Time
	Elapsed time.Duration // set on finished/failed events
}

// EventEmitter receives render events. Emitters must be fast and must not
// block; rendering is synchronous.
type EventEmitter func(Event)

// MultiEmitter fans an event out to several emitters in order.
func MultiEmitter(emitters ...EventEmitter) EventEmitter {
	return func(e Event) {
		for _, emit := range emitters {
			if emit != nil {
				emit(e)
			}
		}
	}
}
