// Package render turns board grids into text.
package render

import (
	"fmt"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	Unknown     = "."
	UnknownMine = "U"
	KnownMine   = "M"
	Flag        = "F"
	Blank       = " "
)

func Status(s mines.CellStatus) string {
	switch s {
	case mines.Hidden:
		return Unknown
	case mines.FlaggedMine:
		return Flag
	case mines.RevealedMine:
		return KnownMine
	case 0:
		return Blank
	}
	if n, ok := s.Clue(); ok {
		return fmt.Sprint(n)
	}
	return "!"
}

func Content(c mines.Cell) string {
	switch {
	case c.IsMine():
		return UnknownMine
	case c == 0:
		return Blank
	default:
		return fmt.Sprint(c.Clue())
	}
}

func glyphs[T any](g mines.Grid[T], glyph func(T) string) mines.Grid[string] {
	out := mines.Grid[string]{
		Width:  g.Width,
		Height: g.Height,
		Cells:  make([]string, len(g.Cells)),
	}
	for i, c := range g.Cells {
		out.Cells[i] = glyph(c)
	}
	return out
}

// View maps the player's view to glyphs.
func View(v mines.Grid[mines.CellStatus]) mines.Grid[string] {
	return glyphs(v, Status)
}

// Solution maps the true board to glyphs.
func Solution(s mines.Grid[mines.Cell]) mines.Grid[string] {
	return glyphs(s, Content)
}

// Final shows the player's view with every mine still covered uncovered as
// [UnknownMine]. Meant for a finished game.
func Final(v mines.Grid[mines.CellStatus], s mines.Grid[mines.Cell]) mines.Grid[string] {
	out := View(v)
	for i, c := range s.Cells {
		if c.IsMine() && (v.Cells[i] == mines.Hidden || v.Cells[i] == mines.FlaggedMine) {
			out.Cells[i] = UnknownMine
		}
	}
	return out
}

type Options struct {
	// Axes adds two header rows with the tens and units of each column
	// number, and a two-digit row number in front of every row.
	Axes bool

	// Decorate, if set, may wrap the glyph drawn at p.
	Decorate func(p mines.Point, glyph string) string
}

func Text(g mines.Grid[string], opts Options) string {
	var b strings.Builder
	if opts.Axes {
		b.WriteString("  ")
		for x := range g.Width {
			fmt.Fprint(&b, x/10%10)
		}
		b.WriteString("\n  ")
		for x := range g.Width {
			fmt.Fprint(&b, x%10)
		}
		b.WriteString("\n")
	}
	for y := range g.Height {
		if opts.Axes {
			fmt.Fprintf(&b, "%2d", y)
		}
		for x := range g.Width {
			glyph := g.At(x, y)
			if opts.Decorate != nil {
				glyph = opts.Decorate(mines.Point{X: x, Y: y}, glyph)
			}
			b.WriteString(glyph)
		}
		b.WriteString("\n")
	}
	return b.String()
}
