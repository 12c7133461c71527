package changelog

import (
	"slices"
	"sync"
)

// Reserved rule names.
const (
	RuleNotice = "Notice"
	RuleError  = "Error"
)

// Event is a single change: which rule fired, what it matched, what it wrote.
type Event struct {
	Rule     string `json:"rule"`
	Before   string `json:"before"`
	After    string `json:"after"`
	Location string `json:"location,omitempty"`
}

// IsNotice reports whether the event is an informational entry.
func (e Event) IsNotice() bool { return e.Rule == RuleNotice }

// IsError reports whether the event flags a data problem.
func (e Event) IsError() bool { return e.Rule == RuleError }

// Sink receives change events.
type Sink interface {
	Record(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Record calls f(e).
func (f SinkFunc) Record(e Event) { f(e) }

// Discard is a Sink that drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Change records a rule event when the replacement differs from the match.
// A nil sink is allowed.
func Change(sink Sink, rule, before, after string) {
	if sink == nil || before == after {
		return
	}
	sink.Record(Event{Rule: rule, Before: before, After: after})
}

// Notice records an informational entry.
func Notice(sink Sink, message string) {
	if sink == nil {
		return
	}
	sink.Record(Event{Rule: RuleNotice, After: message})
}

// Error records a data problem, typically a value and the marker that replaced it.
func Error(sink Sink, before, after string) {
	if sink == nil {
		return
	}
	sink.Record(Event{Rule: RuleError, Before: before, After: after})
}

// At returns a sink that stamps location on events that have none.
func At(sink Sink, location string) Sink {
	if sink == nil {
		return Discard
	}
	return SinkFunc(func(e Event) {
		if e.Location == "" {
			e.Location = location
		}
		sink.Record(e)
	})
}

// Tee returns a sink that forwards every event to each non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	clean := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			clean = append(clean, s)
		}
	}
	return SinkFunc(func(e Event) {
		for _, s := range clean {
			s.Record(e)
		}
	})
}

// Log is an append-only, concurrency-safe event list.
// The zero value is ready to use.
type Log struct {
	mu     sync.Mutex
	events []Event
}

// Record appends an event.
func (l *Log) Record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

// Reset drops every recorded event.
func (l *Log) Reset() {
	l.mu.Lock()
	l.events = nil
	l.mu.Unlock()
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Events returns a copy of the recorded events in order.
func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

// Notices returns the informational entries.
func (l *Log) Notices() []Event {
	return l.filter(Event.IsNotice)
}

// Errors returns the data-problem entries.
func (l *Log) Errors() []Event {
	return l.filter(Event.IsError)
}

// Changes returns the rule events, excluding notices and errors.
func (l *Log) Changes() []Event {
	return l.filter(func(e Event) bool { return !e.IsNotice() && !e.IsError() })
}

func (l *Log) filter(keep func(Event) bool) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, e := range l.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// CountByRule returns how many events each rule produced.
func (l *Log) CountByRule() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range l.events {
		counts[e.Rule]++
	}
	return counts
}
