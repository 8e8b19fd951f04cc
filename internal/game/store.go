// Package game owns the application state. Every change goes through
// Store.Transact, which installs new states with compare-and-swap and
// retries when it loses a race.
package game

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/models"
)

var (
	// ErrInvalidTransaction wraps every failure of an update function.
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrReadyReverted      = errors.Wrap(ErrInvalidTransaction, "ready cannot go back to false")
	ErrSlotOutOfRange     = errors.Wrap(ErrInvalidTransaction, "slot out of range")
	ErrNoCharacter        = errors.Wrap(ErrInvalidTransaction, "no character")
)

// updateError is an update function's own error. It matches
// ErrInvalidTransaction and unwraps to the cause.
type updateError struct{ cause error }

func (e updateError) Error() string        { return ErrInvalidTransaction.Error() + ": " + e.cause.Error() }
func (e updateError) Unwrap() error        { return e.cause }
func (e updateError) Is(target error) bool { return target == ErrInvalidTransaction }

// UpdateFunc derives the next state from the current one. It receives a
// private copy and may be called several times per transaction, so it must
// not have side effects.
type UpdateFunc func(models.AppState) (models.AppState, error)

// Snapshot is an installed state together with its install counter.
type Snapshot struct {
	Version uint64
	State   models.AppState
}

// Listener is called synchronously after each successful install. It must
// treat the snapshot as read-only. Concurrent transactions may deliver
// snapshots out of order; Version tells them apart.
type Listener func(Snapshot)

type versioned struct {
	version uint64
	state   models.AppState
}

type Store struct {
	cur atomic.Pointer[versioned]

	mu        sync.RWMutex
	nextID    int
	listeners map[int]Listener

	log zerolog.Logger
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l.With().Str("component", "store").Logger() }
}

func NewStore(initial models.AppState, opts ...Option) *Store {
	s := &Store{
		listeners: make(map[int]Listener),
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.cur.Store(&versioned{state: initial.Clone()})
	return s
}

// Current returns a copy of the latest installed state.
func (s *Store) Current() Snapshot {
	v := s.cur.Load()
	return Snapshot{Version: v.version, State: v.state.Clone()}
}

// Subscribe registers fn for every future install. The returned func removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Transact applies fn atomically and returns the installed state. On error
// nothing is installed and nobody is notified.
func (s *Store) Transact(fn UpdateFunc) (models.AppState, error) {
	for attempt := 1; ; attempt++ {
		old := s.cur.Load()
		next, err := apply(fn, old.state.Clone())
		if err != nil {
			return old.state.Clone(), err
		}
		if old.state.Ready && !next.Ready {
			return old.state.Clone(), ErrReadyReverted
		}
		installed := &versioned{version: old.version + 1, state: next}
		if !s.cur.CompareAndSwap(old, installed) {
			s.log.Debug().Int("attempt", attempt).Uint64("version", old.version).Msg("transaction lost race, retrying")
			continue
		}
		s.log.Debug().Uint64("version", installed.version).Bool("ready", next.Ready).Msg("state installed")
		s.notify(Snapshot{Version: installed.version, State: next.Clone()})
		return next.Clone(), nil
	}
}

func apply(fn UpdateFunc, in models.AppState) (out models.AppState, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrInvalidTransaction, "update panicked: %v", r)
		}
	}()
	out, err = fn(in)
	if err != nil && !errors.Is(err, ErrInvalidTransaction) {
		err = updateError{cause: err}
	}
	return out, err
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(snap)
	}
}
