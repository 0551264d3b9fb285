package mines

import "github.com/gammazero/deque"

// Hint is a covered square whose content follows from the open clues.
type Hint struct {
	Point
	Mine bool
}

// Hint looks for a covered square that can be decided without guessing. It
// reads only what the player can see and ignores flags, which may be wrong.
// Safe squares are preferred over mines; ok is false when the clues decide
// nothing.
func (s *Session) Hint() (h Hint, ok bool) {
	if s.status.Over() {
		return Hint{}, false
	}
	return s.board.deduce()
}

// deduce runs single-point deductions to a fixed point. A clue whose known
// mines already match it clears its covered neighbours; a clue with exactly
// as many covered neighbours as missing mines marks all of them as mines.
func (b *Board) deduce() (Hint, bool) {
	var (
		known = make([]bool, len(b.status))
		todo  deque.Deque[int]
		buf   [8]Point
	)
	for i, st := range b.status {
		if st == RevealedMine {
			known[i] = true
		}
		if _, ok := st.Clue(); ok {
			todo.PushBack(i)
		}
	}

	for todo.Len() > 0 {
		i := todo.PopFront()
		clue, _ := b.status[i].Clue()

		mines := 0
		var covered []int
		for _, p := range b.neighbors(b.Point(i), buf[:0]) {
			j := b.index(p.X, p.Y)
			switch {
			case known[j]:
				mines++
			case !b.status[j].Revealed():
				covered = append(covered, j)
			}
		}
		if len(covered) == 0 {
			continue
		}

		if mines == clue {
			return Hint{Point: b.Point(covered[0])}, true
		}
		if clue-mines != len(covered) {
			continue
		}
		for _, j := range covered {
			known[j] = true
			var around [8]Point
			for _, p := range b.neighbors(b.Point(j), around[:0]) {
				if _, ok := b.status[b.index(p.X, p.Y)].Clue(); ok {
					todo.PushBack(b.index(p.X, p.Y))
				}
			}
		}
	}

	for i, mine := range known {
		if mine && b.status[i] != RevealedMine {
			return Hint{Point: b.Point(i), Mine: true}, true
		}
	}
	return Hint{}, false
}
