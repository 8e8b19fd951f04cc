package stats

import (
	"testing"
	"time"

	"github.com/pefman/alpha-counter/internal/models"
)

func TestRecordPickOrdersByTotal(t *testing.T) {
	tr := NewTracker()
	tr.now = func() time.Time { return time.Unix(1700000000, 0) }

	tr.RecordPick(models.PlayerOne, "Grave")
	tr.RecordPick(models.PlayerTwo, "Jaina")
	tr.RecordPick(models.PlayerTwo, "Grave")
	tr.RecordPick(models.NoSlot, "Rook")
	tr.RecordPick(models.PlayerOne, "")

	got := tr.Picks()
	if len(got.Picks) != 2 {
		t.Fatalf("picks = %+v, want 2 entries", got.Picks)
	}
	if got.Picks[0] != (PickCount{Character: "Grave", PlayerOne: 1, PlayerTwo: 1, Total: 2}) {
		t.Fatalf("first = %+v", got.Picks[0])
	}
	if got.Picks[1].Character != "Jaina" || got.Picks[1].Total != 1 {
		t.Fatalf("second = %+v", got.Picks[1])
	}
	if got.LastPick != 1700000000 {
		t.Fatalf("LastPick = %d", got.LastPick)
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.RecordPick(models.PlayerOne, "Grave")
	tr.Reset()
	got := tr.Picks()
	if len(got.Picks) != 0 || got.LastPick != 0 {
		t.Fatalf("after Reset = %+v", got)
	}
}
