package stats

import "time"

// Reset clears all counters. Served as DELETE /api/stats.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.picks {
		delete(t.picks, k)
	}
	t.lastPick = time.Time{}
}
