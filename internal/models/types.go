package models

// ========================= Domain Models =========================
// Shapes shared by the store, the view router and the hosts.

// Character is one entry of the roster. Entries are handed out as pointers
// and never mutated; identity is pointer equality.
type Character struct {
	Name   string `json:"name" yaml:"name"`
	Health int    `json:"health" yaml:"health"`
}

// Move is one health change recorded on the life counter.
type Move struct {
	Delta int `json:"delta"`
}

// SlotIndex addresses one of the two player slots.
type SlotIndex int

const (
	NoSlot    SlotIndex = -1
	PlayerOne SlotIndex = 0
	PlayerTwo SlotIndex = 1
)

// SlotCount is fixed for the lifetime of the app.
const SlotCount = 2

// Valid reports whether i addresses an existing slot.
func (i SlotIndex) Valid() bool { return i >= 0 && int(i) < SlotCount }

func (i SlotIndex) Label() string {
	switch i {
	case PlayerOne:
		return "Player One"
	case PlayerTwo:
		return "Player Two"
	}
	return ""
}

// PlayerSlot holds one player's pick. Health is meaningless while Character is nil.
type PlayerSlot struct {
	Character *Character `json:"character,omitempty"`
	Health    int        `json:"health,omitempty"`
	History   []Move     `json:"history"`
}

// Filled reports whether a character has been picked for the slot.
func (p PlayerSlot) Filled() bool { return p.Character != nil }

// AppState is the root of everything the app shows.
type AppState struct {
	Ready         bool                  `json:"ready"`
	CurrentPlayer SlotIndex             `json:"current_player"` // reserved for the life counter
	Players       [SlotCount]PlayerSlot `json:"players"`
}

// NewAppState returns the state the app starts with: not ready, both slots empty.
func NewAppState() AppState {
	return AppState{CurrentPlayer: NoSlot}
}

// Clone copies the state deeply enough that mutating the copy's
// histories never reaches s. Characters are shared.
func (s AppState) Clone() AppState {
	out := s
	for i := range out.Players {
		if h := s.Players[i].History; h != nil {
			out.Players[i].History = append(make([]Move, 0, len(h)), h...)
		}
	}
	return out
}

// AnyEmpty reports whether at least one slot still lacks a character.
func (s AppState) AnyEmpty() bool {
	for _, p := range s.Players {
		if !p.Filled() {
			return true
		}
	}
	return false
}
