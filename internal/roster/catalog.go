// Package roster holds the fixed list of playable characters.
package roster

import (
	"context"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pefman/alpha-counter/internal/models"
)

// ErrInvalidRoster is returned for roster documents that cannot back a catalog.
var ErrInvalidRoster = errors.New("invalid roster")

//go:embed roster.yaml
var builtin []byte

// Catalog is an ordered, immutable set of characters. Safe for concurrent use.
type Catalog struct {
	entries []*models.Character
	byName  map[string]*models.Character
}

type document struct {
	Characters []models.Character `yaml:"characters"`
}

// Default returns the built-in roster.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(errors.Wrap(err, "builtin roster"))
	}
	return c
}

// Parse decodes a YAML roster document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidRoster, "decode: %v", err)
	}
	return New(doc.Characters)
}

// Fetcher is the part of api.Client the catalog needs.
type Fetcher interface {
	FetchCharacters(ctx context.Context) ([]models.Character, error)
}

// Load builds a catalog from a remote roster.
func Load(ctx context.Context, f Fetcher) (*Catalog, error) {
	list, err := f.FetchCharacters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch roster")
	}
	return New(list)
}

// New validates list and copies it into a catalog.
func New(list []models.Character) (*Catalog, error) {
	if len(list) == 0 {
		return nil, errors.Wrap(ErrInvalidRoster, "no characters")
	}
	c := &Catalog{
		entries: make([]*models.Character, 0, len(list)),
		byName:  make(map[string]*models.Character, len(list)),
	}
	for i, ch := range list {
		name := strings.TrimSpace(ch.Name)
		if name == "" {
			return nil, errors.Wrapf(ErrInvalidRoster, "entry %d has no name", i)
		}
		if ch.Health <= 0 {
			return nil, errors.Wrapf(ErrInvalidRoster, "%s: health must be positive, got %d", name, ch.Health)
		}
		if _, dup := c.byName[name]; dup {
			return nil, errors.Wrapf(ErrInvalidRoster, "duplicate character %q", name)
		}
		entry := &models.Character{Name: name, Health: ch.Health}
		c.entries = append(c.entries, entry)
		c.byName[name] = entry
	}
	return c, nil
}

// List returns the characters in display order.
func (c *Catalog) List() []*models.Character {
	return append([]*models.Character(nil), c.entries...)
}

func (c *Catalog) Len() int { return len(c.entries) }

// Lookup finds a character by exact name.
func (c *Catalog) Lookup(name string) (*models.Character, bool) {
	ch, ok := c.byName[name]
	return ch, ok
}

// Contains reports whether ch is one of this catalog's own entries.
func (c *Catalog) Contains(ch *models.Character) bool {
	if ch == nil {
		return false
	}
	return c.byName[ch.Name] == ch
}

// Roller is satisfied by *engine.Roller.
type Roller interface {
	D(n int) int
}

// Random picks an entry with a single d(N) roll.
func (c *Catalog) Random(r Roller) *models.Character {
	i := r.D(len(c.entries)) - 1
	if i < 0 || i >= len(c.entries) {
		i = 0
	}
	return c.entries[i]
}
