package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Roller rolls dice. Safe for concurrent use.
type Roller struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRoller() *Roller { return NewSeededRoller(time.Now().UnixNano()) }

// NewSeededRoller returns a roller with a deterministic sequence.
func NewSeededRoller(seed int64) *Roller {
	return &Roller{r: rand.New(rand.NewSource(seed))}
}

// D rolls a single n-sided die. n < 1 yields 0.
func (d *Roller) D(n int) int {
	if n < 1 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return 1 + d.r.Intn(n)
}
