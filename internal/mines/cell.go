package mines

import (
	"strconv"
)

// Cell is the true content of a square: either [Mine] or a clue holding the
// number of mined neighbours (0 to 8).
type Cell int8

const Mine Cell = -1

func Clue(n int) Cell {
	return Cell(n)
}

func (c Cell) IsMine() bool {
	return c == Mine
}

// Clue returns the neighbour count of a safe cell, or -1 for a mine.
func (c Cell) Clue() int {
	if c == Mine {
		return -1
	}
	return int(c)
}

func (c Cell) String() string {
	if c == Mine {
		return "*"
	}
	return strconv.Itoa(int(c))
}

// CellStatus is what the player currently knows about a square.
type CellStatus int8

const (
	Hidden       CellStatus = -2
	FlaggedMine  CellStatus = -1
	RevealedMine CellStatus = 65
	// 0-8 for a revealed square with given number of mined neighbours
)

func Revealed(n int) CellStatus {
	return CellStatus(n)
}

// Revealed reports whether the square has been opened, either as a clue or
// as a mine.
func (s CellStatus) Revealed() bool {
	return (0 <= s && s <= 8) || s == RevealedMine
}

func (s CellStatus) Clue() (n int, ok bool) {
	if 0 <= s && s <= 8 {
		return int(s), true
	}
	return -1, false
}

// Kind names the status the way clients see it.
func (s CellStatus) Kind() string {
	switch s {
	case Hidden:
		return "hidden"
	case FlaggedMine:
		return "flag"
	case RevealedMine:
		return "mine"
	case 0:
		return "blank"
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "invalid"
	}
}

func (s CellStatus) String() string {
	return s.Kind()
}

func (s CellStatus) MarshalText() ([]byte, error) {
	return []byte(s.Kind()), nil
}
