package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

// MinePolicy decides where the mines go. Place is called once, on a freshly
// allocated board, and touches nothing but the true content.
type MinePolicy interface {
	Place(b *Board) error
}

// NewRand returns a PCG source seeded from the runtime's hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// RandomCount scatters exactly Count mines uniformly over the board.
type RandomCount struct {
	Count int
	Rand  *rand.Rand // NewRand() if nil
}

func (p RandomCount) Place(b *Board) error {
	size := b.Size()
	if p.Count < 0 || p.Count > size {
		return fmt.Errorf(
			"%d mines on %d squares: %w", p.Count, size, ErrInvalidMineCount,
		)
	}
	r := p.Rand
	if r == nil {
		r = NewRand()
	}

	/*
	 * Draw squares until enough distinct ones are mined. A square that
	 * already holds a mine is rejected and drawn again.
	 */
	draws := 0
	for b.mines < p.Count {
		draws++
		b.setMine(r.IntN(size))
	}
	Log.Debug("placed mines",
		"width", b.width, "height", b.height, "mines", b.mines, "draws", draws)
	return nil
}

// FixedPattern mines the given linear indices. Repeated indices count once.
type FixedPattern struct {
	Indices []int
}

func (p FixedPattern) Place(b *Board) error {
	for _, i := range p.Indices {
		if i < 0 || i >= b.Size() {
			return fmt.Errorf(
				"index %d on %d squares: %w", i, b.Size(), ErrIndexOutOfRange,
			)
		}
	}
	for _, i := range p.Indices {
		b.setMine(i)
	}
	return nil
}
