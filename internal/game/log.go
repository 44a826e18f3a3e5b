package game

import "github.com/napolitain/microciv/internal/models"

// EventLog is a fixed-capacity ring buffer of log entries; the oldest entry
// is evicted first. Simulation logic never reads it.
type EventLog struct {
	entries []models.LogEntry
	start   int
	size    int
}

// NewEventLog creates an empty log holding at most capacity entries
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &EventLog{entries: make([]models.LogEntry, capacity)}
}

// Add appends an entry, evicting the oldest when full
func (l *EventLog) Add(turn int, message string) {
	entry := models.LogEntry{Turn: turn, Message: message}
	if l.size < len(l.entries) {
		l.entries[(l.start+l.size)%len(l.entries)] = entry
		l.size++
		return
	}
	l.entries[l.start] = entry
	l.start = (l.start + 1) % len(l.entries)
}

// Entries returns a copy of the log, oldest first
func (l *EventLog) Entries() []models.LogEntry {
	out := make([]models.LogEntry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.entries[(l.start+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of retained entries
func (l *EventLog) Len() int {
	return l.size
}

// Capacity returns the maximum number of retained entries
func (l *EventLog) Capacity() int {
	return len(l.entries)
}
