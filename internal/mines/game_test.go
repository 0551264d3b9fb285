package mines

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(t *testing.T, w, h int, indices ...int) *Session {
	t.Helper()
	s, err := NewSession(w, h, FixedPattern{Indices: indices})
	require.NoError(t, err)
	return s
}

func TestSingleSquareWin(t *testing.T) {
	s := fixed(t, 1, 1)
	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, status)
	assert.Equal(t, Revealed(0), s.Snapshot().At(0, 0))
}

func TestMineLoss(t *testing.T) {
	s := fixed(t, 2, 2, 0)
	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, status)

	view := s.Snapshot()
	assert.Equal(t, RevealedMine, view.At(0, 0))
	for _, p := range []Point{{1, 0}, {0, 1}, {1, 1}} {
		assert.Equal(t, Hidden, view.At(p.X, p.Y), "%v", p)
	}
}

func TestCenterMine(t *testing.T) {
	s := fixed(t, 3, 3, 4)

	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)

	view := s.Snapshot()
	assert.Equal(t, Revealed(1), view.At(0, 0))
	for i, st := range view.Cells {
		if i != 0 {
			assert.Equal(t, Hidden, st, "index %d", i)
		}
	}

	status, err = s.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Lost, status)
	assert.Equal(t, RevealedMine, s.Snapshot().At(1, 1))
}

func TestCenterMineWin(t *testing.T) {
	s := fixed(t, 3, 3, 4)
	var status Status
	for i := range 9 {
		if i == 4 {
			continue
		}
		var err error
		status, err = s.Reveal(i%3, i/3)
		require.NoError(t, err)
	}
	assert.Equal(t, Won, status)
	assert.Equal(t, 0, s.Remaining())
	assert.Equal(t, Hidden, s.Snapshot().At(1, 1))
}

func TestCascade(t *testing.T) {
	/*
	 * . . . . .
	 * . . . . .
	 * . . . 1 1
	 * . . . 1 *
	 */
	s := fixed(t, 5, 4, 19)
	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, status)

	view := s.Snapshot()
	assert.Equal(t, Hidden, view.At(4, 3))
	assert.Equal(t, Revealed(1), view.At(3, 2))
	assert.Equal(t, Revealed(1), view.At(4, 2))
	assert.Equal(t, Revealed(1), view.At(3, 3))
	assert.Equal(t, Revealed(0), view.At(2, 2))
}

func TestCascadeStopsAtClues(t *testing.T) {
	/*
	 * mines in column 2 split the board; opening the left side must not
	 * leak into the right one.
	 */
	s := fixed(t, 5, 3, 2, 7, 12)
	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)

	view := s.Snapshot()
	for y := range 3 {
		assert.Equal(t, Revealed(0), view.At(0, y))
		assert.True(t, view.At(1, y).Revealed())
		assert.Equal(t, Hidden, view.At(2, y))
		assert.Equal(t, Hidden, view.At(3, y))
		assert.Equal(t, Hidden, view.At(4, y))
	}
	assert.Equal(t, 6, s.Remaining())
}

// region computes what opening a zero square should uncover: every zero
// square connected to it and the numbered squares bordering them.
func region(b *Board, start int) map[int]bool {
	out := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.cells[i] != 0 {
			continue
		}
		p := b.Point(i)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := p.X+dx, p.Y+dy
				if !b.InBounds(x, y) {
					continue
				}
				j := b.index(x, y)
				if !out[j] {
					out[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return out
}

func TestCascadeRegion(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	params := []GameParams{
		{Width: 9, Height: 9, MineCount: 10},
		{Width: 16, Height: 16, MineCount: 40},
		{Width: 30, Height: 15, MineCount: 25},
		{Width: 30, Height: 16, MineCount: 99},
	}

	for _, p := range params {
		for n := range 20 {
			s, err := p.NewSession(r)
			require.NoError(t, err)

			start := -1
			for i, c := range s.board.cells {
				if c == 0 {
					start = i
					break
				}
			}
			if start < 0 {
				continue
			}

			want := region(s.board, start)
			pt := s.board.Point(start)
			status, err := s.Reveal(pt.X, pt.Y)
			require.NoError(t, err)
			assert.NotEqual(t, Lost, status)

			name := fmt.Sprintf("%s #%d", p.Seed(), n)
			for i, st := range s.board.status {
				if s.board.cells[i] == Mine {
					assert.Equal(t, Hidden, st, "%s: mine %d touched", name, i)
					continue
				}
				assert.Equal(t, want[i], st.Revealed(), "%s: square %d", name, i)
				if want[i] {
					assert.Equal(t, Revealed(int(s.board.cells[i])), st)
				}
			}
		}
	}
}

func TestRevealTwice(t *testing.T) {
	s := fixed(t, 4, 4, 15)

	first, err := s.Reveal(3, 2)
	require.NoError(t, err)
	before := s.Snapshot()

	second, err := s.Reveal(3, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Snapshot())
}

func TestOutOfRangeMove(t *testing.T) {
	s := fixed(t, 4, 3, 0)
	before := s.Snapshot()

	for _, m := range []Move{
		{X: 4, Y: 0, Mode: ModeReveal},
		{X: 0, Y: 3, Mode: ModeReveal},
		{X: -1, Y: 1, Mode: ModeFlag},
	} {
		status, err := s.Apply(m)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, Playing, status)
	}
	assert.Equal(t, before, s.Snapshot())
}

func TestInvalidMode(t *testing.T) {
	s := fixed(t, 2, 2)
	_, err := s.Apply(Move{X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, Hidden, s.Snapshot().At(0, 0))
}

func TestSessionOver(t *testing.T) {
	s := fixed(t, 2, 2, 3)
	status, err := s.Reveal(1, 1)
	require.NoError(t, err)
	require.Equal(t, Lost, status)
	frozen := s.Snapshot()

	status, err = s.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Equal(t, Lost, status)

	_, err = s.Flag(0, 1)
	assert.ErrorIs(t, err, ErrSessionOver)

	_, err = s.Reveal(9, 9)
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Equal(t, frozen, s.Snapshot())

	won := fixed(t, 1, 1)
	_, err = won.Reveal(0, 0)
	require.NoError(t, err)
	_, err = won.Reveal(0, 0)
	assert.ErrorIs(t, err, ErrSessionOver)
}

func TestFlagToggle(t *testing.T) {
	s := fixed(t, 3, 3, 4)

	status, err := s.Flag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)
	assert.Equal(t, FlaggedMine, s.Snapshot().At(1, 1))

	_, err = s.Flag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Hidden, s.Snapshot().At(1, 1))

	_, err = s.Reveal(0, 0)
	require.NoError(t, err)
	_, err = s.Flag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Revealed(1), s.Snapshot().At(0, 0), "revealed squares cannot be flagged")
}

func TestRevealFlaggedSafeSquare(t *testing.T) {
	s := fixed(t, 3, 3, 4)
	_, err := s.Flag(2, 2)
	require.NoError(t, err)

	status, err := s.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)
	assert.Equal(t, Revealed(1), s.Snapshot().At(2, 2))
}

func TestRevealFlaggedMine(t *testing.T) {
	s := fixed(t, 3, 3, 4)
	_, err := s.Flag(1, 1)
	require.NoError(t, err)

	status, err := s.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Lost, status)
}

func TestCascadeOpensFlags(t *testing.T) {
	s := fixed(t, 4, 4)
	_, err := s.Flag(3, 3)
	require.NoError(t, err)

	status, err := s.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, status)
	assert.Equal(t, Revealed(0), s.Snapshot().At(3, 3))
}

func TestGuessMode(t *testing.T) {
	s, err := NewSession(3, 3, FixedPattern{Indices: []int{4}}, WithGuessMode())
	require.NoError(t, err)
	require.True(t, s.GuessMode())

	status, err := s.Flag(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)
	assert.Equal(t, RevealedMine, s.Snapshot().At(1, 1))

	status, err = s.Flag(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Playing, status)
	assert.Equal(t, Revealed(1), s.Snapshot().At(0, 0))

	for _, p := range []Point{{1, 0}, {2, 0}, {0, 1}, {2, 1}, {0, 2}, {1, 2}} {
		status, err = s.Reveal(p.X, p.Y)
		require.NoError(t, err)
	}
	assert.Equal(t, Playing, status)
	status, err = s.Flag(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Won, status)
}

func TestAllMinesBoard(t *testing.T) {
	s := fixed(t, 2, 1, 0, 1)
	assert.Equal(t, Playing, s.Status())
	assert.Equal(t, 0, s.Remaining())

	status, err := s.Reveal(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, status)
}

func TestSnapshotIsCopy(t *testing.T) {
	s := fixed(t, 2, 2, 0)
	view := s.Snapshot()
	view.Cells[3] = Revealed(1)
	assert.Equal(t, Hidden, s.Snapshot().At(1, 1))

	sol := s.Solution()
	assert.Equal(t, Mine, sol.At(0, 0))
	assert.Equal(t, Clue(1), sol.At(1, 1))
	sol.Cells[0] = 0
	assert.Equal(t, Mine, s.Solution().At(0, 0))
}

func TestNewSessionErrors(t *testing.T) {
	_, err := NewSession(0, 3, RandomCount{Count: 0})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewSession(3, 3, RandomCount{Count: 10})
	assert.ErrorIs(t, err, ErrInvalidMineCount)

	_, err = NewSession(3, 3, FixedPattern{Indices: []int{9}})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{
		"reveal": ModeReveal, "open": ModeReveal, "FLAG": ModeFlag,
	} {
		m, err := ParseMode(input)
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
	_, err := ParseMode("chord")
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestGridAt(t *testing.T) {
	g := Grid[int]{Width: 3, Height: 2, Cells: []int{0, 1, 2, 3, 4, 5}}
	tests := []struct {
		x, y     int
		expected int
	}{
		{0, 0, 0}, {2, 0, 2}, {0, 1, 3}, {2, 1, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, g.At(tt.x, tt.y), "(%d, %d)", tt.x, tt.y)
	}

	// unchecked: x past the edge lands on the next row
	assert.Equal(t, g.At(0, 1), g.At(3, 0))
	assert.Panics(t, func() { g.At(0, 2) })
	assert.Panics(t, func() { g.At(-1, 0) })
}
