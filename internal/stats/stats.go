package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/pefman/alpha-counter/internal/models"
)

// PickCount is how often a character was picked, split by slot.
type PickCount struct {
	Character string `json:"character"`
	PlayerOne int    `json:"player_one"`
	PlayerTwo int    `json:"player_two"`
	Total     int    `json:"total"`
}

// Tracker counts character picks in memory for the lifetime of the process.
type Tracker struct {
	mu       sync.Mutex
	picks    map[string]*PickCount
	lastPick time.Time
	now      func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{picks: make(map[string]*PickCount), now: time.Now}
}

func (t *Tracker) RecordPick(slot models.SlotIndex, name string) {
	if name == "" || !slot.Valid() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	pc := t.picks[name]
	if pc == nil {
		pc = &PickCount{Character: name}
		t.picks[name] = pc
	}
	switch slot {
	case models.PlayerOne:
		pc.PlayerOne++
	case models.PlayerTwo:
		pc.PlayerTwo++
	}
	pc.Total++
	t.lastPick = t.now()
}

// Summary is the JSON shape served on /api/stats.
type Summary struct {
	Picks    []PickCount `json:"picks"`
	LastPick int64       `json:"last_pick,omitempty"` // unix seconds
}

// Picks returns counts ordered by total (desc), then name.
func (t *Tracker) Picks() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := Summary{Picks: make([]PickCount, 0, len(t.picks))}
	for _, pc := range t.picks {
		out.Picks = append(out.Picks, *pc)
	}
	sort.Slice(out.Picks, func(i, j int) bool {
		if out.Picks[i].Total != out.Picks[j].Total {
			return out.Picks[i].Total > out.Picks[j].Total
		}
		return out.Picks[i].Character < out.Picks[j].Character
	})
	if !t.lastPick.IsZero() {
		out.LastPick = t.lastPick.Unix()
	}
	return out
}
