package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Seed encodes the params as "width:height:mines".
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (seed = "%s", n = %d, err = %v)`,
			seed, n, err,
		)
	}
	return p, nil
}

// NewSession starts a game with randomly placed mines.
func (p GameParams) NewSession(r *rand.Rand, opts ...Option) (*Session, error) {
	w, h, mc := p.Unpack()
	return NewSession(w, h, RandomCount{Count: mc, Rand: r}, opts...)
}

type Level string

const (
	Beginner Level = "beginner"
	Medium   Level = "medium"
	Advanced Level = "advanced"
	Expert   Level = "expert"
)

// Levels share one 30x15 board and differ in mine count.
var Levels = map[Level]GameParams{
	Beginner: {Width: 30, Height: 15, MineCount: 25},
	Medium:   {Width: 30, Height: 15, MineCount: 50},
	Advanced: {Width: 30, Height: 15, MineCount: 75},
	Expert:   {Width: 30, Height: 15, MineCount: 99},
}

// ParseLevel accepts a level name or its menu number (1 to 4).
func ParseLevel(s string) (GameParams, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(Beginner):
		return Levels[Beginner], nil
	case "2", string(Medium):
		return Levels[Medium], nil
	case "3", string(Advanced):
		return Levels[Advanced], nil
	case "4", string(Expert):
		return Levels[Expert], nil
	}
	return GameParams{}, fmt.Errorf("%q is not a valid level", s)
}
