package mines

import (
	"fmt"
	"math"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// clockwise, starting above the cell
var offsets = [8]Point{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

// Board holds the true content of every square alongside the player's view
// of it. Both grids are indexed by x + y*width.
type Board struct {
	width, height int
	cells         []Cell
	status        []CellStatus
	mines         int
	safeLeft      int // hidden or flagged squares that are not mines
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("board size %dx%d: %w", width, height, ErrOutOfRange)
	}
	b := &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
		status: make([]CellStatus, width*height),
	}
	for i := range b.status {
		b.status[i] = Hidden
	}
	b.safeLeft = len(b.cells)
	return b, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Size() int   { return len(b.cells) }
func (b *Board) Mines() int  { return b.mines }

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf(
			"point (%d,%d) on %dx%d board: %w", x, y, b.width, b.height, ErrOutOfRange,
		)
	}
	return nil
}

func (b *Board) index(x, y int) int {
	return x + y*b.width
}

// Index maps a coordinate to its linear index.
func (b *Board) Index(x, y int) (int, error) {
	if err := b.checkBounds(x, y); err != nil {
		return -1, err
	}
	return b.index(x, y), nil
}

// Point is the inverse of [Board.Index]. i must be in [0, Size()).
func (b *Board) Point(i int) Point {
	return Point{X: i % b.width, Y: i / b.width}
}

// neighbors appends the in-bounds neighbours of p to buf.
func (b *Board) neighbors(p Point, buf []Point) []Point {
	for _, d := range offsets {
		q := Point{p.X + d.X, p.Y + d.Y}
		if b.InBounds(q.X, q.Y) {
			buf = append(buf, q)
		}
	}
	return buf
}

// Neighbors returns the up to 8 squares touching (x, y), clockwise from the
// one above it.
func (b *Board) Neighbors(x, y int) ([]Point, error) {
	if err := b.checkBounds(x, y); err != nil {
		return nil, err
	}
	return b.neighbors(Point{x, y}, make([]Point, 0, len(offsets))), nil
}

func (b *Board) Content(x, y int) (Cell, error) {
	if err := b.checkBounds(x, y); err != nil {
		return 0, err
	}
	return b.cells[b.index(x, y)], nil
}

func (b *Board) Status(x, y int) (CellStatus, error) {
	if err := b.checkBounds(x, y); err != nil {
		return 0, err
	}
	return b.status[b.index(x, y)], nil
}

func (b *Board) setMine(i int) {
	if b.cells[i] != Mine {
		b.cells[i] = Mine
		b.mines++
		b.safeLeft--
	}
}
