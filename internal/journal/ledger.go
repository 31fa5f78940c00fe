package journal

import "sync"

// Ledger stores entries in memory for quick inspection.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{entries: make([]Entry, 0, capacity)}
}

// Record appends an entry to the ledger.
func (l *Ledger) Record(e Entry) {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded entries.
func (l *Ledger) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Actions counts recorded entries by decision action.
func (l *Ledger) Actions() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int)
	for _, e := range l.entries {
		out[e.Decision.Action]++
	}
	return out
}

// Reset clears all stored entries.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.entries = l.entries[:0]
	l.mu.Unlock()
}
