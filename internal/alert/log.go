package alert

import "sync"

// Log keeps the most recent alerts, oldest first. It is safe for
// concurrent use.
type Log struct {
	mu      sync.RWMutex
	size    int
	entries []Alert
}

// NewLog returns a Log retaining at most size alerts
func NewLog(size int) *Log {
	if size <= 0 {
		size = 1
	}
	return &Log{size: size}
}

// Append records alerts, dropping the oldest once the log is full
func (l *Log) Append(alerts ...Alert) {
	if len(alerts) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, alerts...)
	if over := len(l.entries) - l.size; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Entries returns a copy of the retained alerts
func (l *Log) Entries() []Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Alert(nil), l.entries...)
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
