package web

import (
	"encoding/json"

	"github.com/pefman/alpha-counter/internal/game"
	"github.com/pefman/alpha-counter/internal/models"
	"github.com/pefman/alpha-counter/internal/view"
)

// WebSocket message structure
type wsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type clientIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// renderMsg carries one rendered screen. Clients ignore versions older
// than the last one they applied.
type renderMsg struct {
	Version uint64 `json:"version"`
	Screen  string `json:"screen"`
	HTML    string `json:"html"`
}

type errorMsg struct {
	Message string `json:"message"`
}

type slotView struct {
	Label     string            `json:"label"`
	Character *models.Character `json:"character,omitempty"`
	Health    int               `json:"health,omitempty"`
	History   []models.Move     `json:"history"`
}

// stateView is the JSON shape of /api/state and of successful actions.
type stateView struct {
	Version       uint64           `json:"version"`
	Screen        string           `json:"screen"`
	Ready         bool             `json:"ready"`
	CurrentPlayer models.SlotIndex `json:"current_player"`
	Players       []slotView       `json:"players"`
	StartEnabled  bool             `json:"start_enabled"`
}

func newStateView(r *view.Router, snap game.Snapshot) stateView {
	st := snap.State
	out := stateView{
		Version:       snap.Version,
		Screen:        r.ActiveScreen(st).String(),
		Ready:         st.Ready,
		CurrentPlayer: st.CurrentPlayer,
		Players:       make([]slotView, 0, len(st.Players)),
		StartEnabled:  !st.Ready && !st.AnyEmpty(),
	}
	for i, p := range st.Players {
		sv := slotView{Label: models.SlotIndex(i).Label(), History: p.History}
		if sv.History == nil {
			sv.History = []models.Move{}
		}
		if p.Filled() {
			sv.Character = p.Character
			sv.Health = p.Health
		}
		out.Players = append(out.Players, sv)
	}
	return out
}
