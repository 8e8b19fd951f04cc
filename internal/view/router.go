// Package view decides which screen the app shows and turns clicks on that
// screen into store operations. It keeps no state of its own.
package view

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pefman/alpha-counter/internal/engine"
	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/models"
	"github.com/pefman/alpha-counter/internal/roster"
	"github.com/pefman/alpha-counter/internal/stats"
)

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownControl   = errors.New("unknown control")
	ErrControlDisabled  = errors.New("control is disabled")
	ErrNotOnScreen      = errors.New("control is not on the active screen")
)

// Screen is the active view.
type Screen int

const (
	CharacterSelect Screen = iota
	LifeCounter
)

func (s Screen) String() string {
	switch s {
	case CharacterSelect:
		return "character-select"
	case LifeCounter:
		return "life-counter"
	}
	return "unknown"
}

// Dispatcher is the slice of *game.Store the router drives.
type Dispatcher interface {
	Current() game.Snapshot
	SelectCharacter(slot models.SlotIndex, c *models.Character) (models.AppState, error)
	MarkReady() (models.AppState, error)
}

type Router struct {
	store   Dispatcher
	catalog *roster.Catalog
	roller  roster.Roller
	picks   *stats.Tracker
	log     zerolog.Logger
}

type Option func(*Router)

func WithRoller(r roster.Roller) Option { return func(rt *Router) { rt.roller = r } }

// WithStats records successful picks in t.
func WithStats(t *stats.Tracker) Option { return func(rt *Router) { rt.picks = t } }

func WithLogger(l zerolog.Logger) Option {
	return func(rt *Router) { rt.log = l.With().Str("component", "router").Logger() }
}

func NewRouter(store Dispatcher, catalog *roster.Catalog, opts ...Option) *Router {
	r := &Router{
		store:   store,
		catalog: catalog,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.roller == nil {
		r.roller = engine.NewRoller()
	}
	return r
}

// ActiveScreen is a function of Ready alone.
func (r *Router) ActiveScreen(st models.AppState) Screen {
	if st.Ready {
		return LifeCounter
	}
	return CharacterSelect
}

// Render builds the widget tree for st.
func (r *Router) Render(st models.AppState) Node {
	switch r.ActiveScreen(st) {
	case LifeCounter:
		return lifeCounterView(st)
	default:
		return r.characterSelectView(st)
	}
}

func (r *Router) characterSelectView(st models.AppState) Node {
	root := div(text(TagH1, "Character Select"))
	for i := range st.Players {
		slot := models.SlotIndex(i)
		root.Children = append(root.Children,
			text(TagH2, slot.Label()),
			r.icons(slot, st.Players[i]),
		)
	}
	root.Children = append(root.Children, Node{
		Tag:      TagButton,
		Text:     "Start!",
		Disabled: st.AnyEmpty(),
		Click:    &Click{Control: ControlStart, Slot: models.NoSlot},
	})
	return root
}

func (r *Router) icons(slot models.SlotIndex, p models.PlayerSlot) Node {
	row := div()
	for _, c := range r.catalog.List() {
		row.Children = append(row.Children, Node{
			Tag:      TagButton,
			Text:     c.Name,
			Selected: p.Character == c,
			Click:    &Click{Control: ControlSelectCharacter, Slot: slot, Character: c.Name},
		})
	}
	row.Children = append(row.Children, Node{
		Tag:   TagButton,
		Text:  "Random",
		Click: &Click{Control: ControlRandomCharacter, Slot: slot},
	})
	return row
}

// The life counter itself is not built yet.
func lifeCounterView(models.AppState) Node {
	return text(TagH1, "Coming soon!")
}

// Dispatch applies a click against the store's current state. Controls
// are checked against the screen that state selects, so a click rendered
// from an older state cannot reach a screen that is gone.
func (r *Router) Dispatch(c Click) (models.AppState, error) {
	st := r.store.Current().State
	screen := r.ActiveScreen(st)
	if screen != CharacterSelect {
		return st, errors.Wrapf(ErrNotOnScreen, "%s on %s", c.Control, screen)
	}

	switch c.Control {
	case ControlSelectCharacter:
		ch, ok := r.catalog.Lookup(c.Character)
		if !ok {
			return st, errors.Wrapf(ErrUnknownCharacter, "%q", c.Character)
		}
		return r.pick(c.Slot, ch)
	case ControlRandomCharacter:
		// roll outside the transaction; update functions may run twice
		return r.pick(c.Slot, r.catalog.Random(r.roller))
	case ControlStart:
		if st.AnyEmpty() {
			return st, errors.Wrap(ErrControlDisabled, "both players must pick a character")
		}
		next, err := r.store.MarkReady()
		if err != nil {
			return next, err
		}
		r.log.Info().Msg("game started")
		return next, nil
	}
	return st, errors.Wrapf(ErrUnknownControl, "%q", c.Control)
}

// pick installs ch in slot. The slot itself is checked by the store.
func (r *Router) pick(slot models.SlotIndex, ch *models.Character) (models.AppState, error) {
	if !r.catalog.Contains(ch) {
		return r.store.Current().State, errors.Wrapf(ErrUnknownCharacter, "%v is not in the roster", ch)
	}
	next, err := r.store.SelectCharacter(slot, ch)
	if err != nil {
		return next, err
	}
	if r.picks != nil {
		r.picks.RecordPick(slot, ch.Name)
	}
	r.log.Info().Int("slot", int(slot)).Str("character", ch.Name).Int("health", ch.Health).Msg("character selected")
	return next, nil
}
