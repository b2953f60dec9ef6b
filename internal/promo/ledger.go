package promo

import "sync"

// Ledger counts successful activations per promo code. Counts start at zero
// and only ever grow; there is no way to release an activation.
//
// A ledger is normally owned by one session. When shared between sessions
// it turns per-code caps into process-wide caps, so check-and-increment is
// done under a mutex.
type Ledger struct {
	mu   sync.Mutex
	used map[string]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{used: make(map[string]int)}
}

// Used returns how many times code has been activated.
func (l *Ledger) Used(code string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used[code]
}

// Snapshot returns a copy of the counters for the given codes. Codes never
// activated report zero.
func (l *Ledger) Snapshot(codes []string) map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int, len(codes))
	for _, code := range codes {
		out[code] = l.used[code]
	}
	return out
}

// activate increments code when it is below limit. It returns the count after
// the call and whether an activation was consumed.
func (l *Ledger) activate(code string, limit int) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	used := l.used[code]
	if used >= limit {
		return used, false
	}
	used++
	l.used[code] = used
	return used, true
}
