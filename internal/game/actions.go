package game

import (
	"github.com/pkg/errors"

	"github.com/pefman/alpha-counter/internal/models"
)

// SelectCharacter puts c into slot, resetting its health and history.
// Re-selecting is always allowed. Whether c comes from the roster is the
// caller's business.
func (s *Store) SelectCharacter(slot models.SlotIndex, c *models.Character) (models.AppState, error) {
	return s.Transact(selectCharacter(slot, c))
}

func selectCharacter(slot models.SlotIndex, c *models.Character) UpdateFunc {
	return func(st models.AppState) (models.AppState, error) {
		if !slot.Valid() {
			return st, errors.Wrapf(ErrSlotOutOfRange, "slot %d", slot)
		}
		if c == nil {
			return st, ErrNoCharacter
		}
		st.Players[slot] = models.PlayerSlot{
			Character: c,
			Health:    c.Health,
			History:   []models.Move{},
		}
		return st, nil
	}
}

// MarkReady flips the app into the game. It does not look at the slots;
// the start control is only enabled once both are filled.
func (s *Store) MarkReady() (models.AppState, error) {
	return s.Transact(markReady)
}

func markReady(st models.AppState) (models.AppState, error) {
	st.Ready = true
	return st, nil
}
