package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/pefman/alpha-counter/internal/engine"
	"github.com/pefman/alpha-counter/internal/models"
)

func TestDefaultRosterOrder(t *testing.T) {
	want := []models.Character{
		{Name: "Grave", Health: 90},
		{Name: "Jaina", Health: 85},
		{Name: "Rook", Health: 100},
		{Name: "Midori", Health: 95},
		{Name: "Setsuki", Health: 70},
		{Name: "Valerie", Health: 85},
	}
	got := Default().List()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if *got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, *got[i], want[i])
		}
	}
}

func TestListIsACopyOfSharedEntries(t *testing.T) {
	c := Default()
	a := c.List()
	a[0] = nil
	b := c.List()
	if b[0] == nil {
		t.Fatal("mutating List() result leaked into the catalog")
	}
	if b[1] != c.List()[1] {
		t.Fatal("List() should hand out the same entry pointers")
	}
}

func TestLookupAndContains(t *testing.T) {
	c := Default()
	grave, ok := c.Lookup("Grave")
	if !ok || grave.Health != 90 {
		t.Fatalf("Lookup(Grave) = %+v, %v", grave, ok)
	}
	if _, ok := c.Lookup("grave"); ok {
		t.Fatal("Lookup should be case-sensitive")
	}
	if !c.Contains(grave) {
		t.Fatal("Contains(catalog entry) = false")
	}
	lookalike := &models.Character{Name: "Grave", Health: 90}
	if c.Contains(lookalike) {
		t.Fatal("Contains should use identity, not value equality")
	}
	if c.Contains(nil) {
		t.Fatal("Contains(nil) = true")
	}
}

func TestParseRejectsBadRosters(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", "characters: []"},
		{"no name", "characters:\n  - health: 10\n"},
		{"zero health", "characters:\n  - name: A\n    health: 0\n"},
		{"duplicate", "characters:\n  - name: A\n    health: 1\n  - name: A\n    health: 2\n"},
		{"not yaml", "characters: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, ErrInvalidRoster) {
				t.Fatalf("Parse() = %v, want ErrInvalidRoster", err)
			}
		})
	}
}

type fakeFetcher struct {
	list []models.Character
	err  error
}

func (f fakeFetcher) FetchCharacters(context.Context) ([]models.Character, error) {
	return f.list, f.err
}

func TestLoad(t *testing.T) {
	c, err := Load(context.Background(), fakeFetcher{list: []models.Character{{Name: "Grave", Health: 90}, {Name: "Jaina", Health: 85}}})
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	boom := errors.New("boom")
	if _, err := Load(context.Background(), fakeFetcher{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Load() = %v, want wrapped boom", err)
	}
}

func TestRandomReturnsCatalogEntries(t *testing.T) {
	c := Default()
	r := engine.NewSeededRoller(3)
	for i := 0; i < 100; i++ {
		if ch := c.Random(r); !c.Contains(ch) {
			t.Fatalf("Random() = %+v, not a catalog entry", ch)
		}
	}
}
