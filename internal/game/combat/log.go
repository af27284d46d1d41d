package combat

import (
	"fmt"
	"sync"
)

// LogCapacity is how many recent combat lines the feed retains. Older
// lines are discarded as new ones arrive.
const LogCapacity = 10

// Log is the rolling combat feed. Every combat action appends one line;
// the feed keeps only the most recent LogCapacity entries, oldest first.
type Log struct {
	mu      sync.Mutex
	entries []string
}

// NewLog returns an empty combat feed.
func NewLog() *Log {
	return &Log{entries: make([]string, 0, LogCapacity)}
}

// Addf formats and appends one line, evicting the oldest line when the
// feed is full.
func (l *Log) Addf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
	if len(l.entries) > LogCapacity {
		l.entries = l.entries[1:]
	}
}

// Entries returns a copy of the current lines, oldest first.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent line, or "" when the feed is empty.
func (l *Log) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return ""
	}
	return l.entries[len(l.entries)-1]
}

// Len returns the number of retained lines.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops all lines.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}
