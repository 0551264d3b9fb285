package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestStatusGlyphs(t *testing.T) {
	assert.Equal(t, ".", Status(mines.Hidden))
	assert.Equal(t, "F", Status(mines.FlaggedMine))
	assert.Equal(t, "M", Status(mines.RevealedMine))
	assert.Equal(t, " ", Status(mines.Revealed(0)))
	assert.Equal(t, "3", Status(mines.Revealed(3)))
	assert.Equal(t, "8", Status(mines.Revealed(8)))
}

func TestContentGlyphs(t *testing.T) {
	assert.Equal(t, "U", Content(mines.Mine))
	assert.Equal(t, " ", Content(mines.Clue(0)))
	assert.Equal(t, "2", Content(mines.Clue(2)))
}

func TestTextPlain(t *testing.T) {
	s, err := mines.NewSession(3, 3, mines.FixedPattern{Indices: []int{4}})
	require.NoError(t, err)
	_, err = s.Reveal(0, 0)
	require.NoError(t, err)

	got := Text(View(s.Snapshot()), Options{})
	assert.Equal(t, "1..\n...\n...\n", got)

	got = Text(Solution(s.Solution()), Options{})
	assert.Equal(t, "111\n1U1\n111\n", got)
}

func TestTextAxes(t *testing.T) {
	s, err := mines.NewSession(12, 2, mines.FixedPattern{})
	require.NoError(t, err)

	lines := strings.Split(Text(View(s.Snapshot()), Options{Axes: true}), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "  000000000011", lines[0])
	assert.Equal(t, "  012345678901", lines[1])
	assert.Equal(t, " 0............", lines[2])
	assert.Equal(t, " 1............", lines[3])
	assert.Equal(t, "", lines[4])
}

func TestTextDecorate(t *testing.T) {
	s, err := mines.NewSession(2, 1, mines.FixedPattern{})
	require.NoError(t, err)

	got := Text(View(s.Snapshot()), Options{
		Decorate: func(p mines.Point, glyph string) string {
			if p.X == 1 {
				return "[" + glyph + "]"
			}
			return glyph
		},
	})
	assert.Equal(t, ".[.]\n", got)
}

func TestFinal(t *testing.T) {
	s, err := mines.NewSession(3, 1, mines.FixedPattern{Indices: []int{0, 2}})
	require.NoError(t, err)
	_, err = s.Flag(2, 0)
	require.NoError(t, err)
	_, err = s.Reveal(0, 0)
	require.NoError(t, err)

	got := Text(Final(s.Snapshot(), s.Solution()), Options{})
	assert.Equal(t, "M.U\n", got)
}
