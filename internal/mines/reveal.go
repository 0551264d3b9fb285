package mines

import "github.com/gammazero/deque"

// reveal opens square i and everything reachable from it through squares
// with no mined neighbours. It reports whether a mine went off.
func (b *Board) reveal(i int) (exploded bool) {
	var (
		todo deque.Deque[int]
		buf  = make([]Point, 0, len(offsets))
	)
	todo.PushBack(i)

	for todo.Len() > 0 {
		j := todo.PopFront()

		/*
		 * A square may sit in the queue more than once; only the
		 * first visit counts. Flagged squares are still covered and
		 * open like hidden ones.
		 */
		if b.status[j].Revealed() {
			continue
		}

		c := b.cells[j]
		if c == Mine {
			b.status[j] = RevealedMine
			return true
		}

		b.status[j] = Revealed(int(c))
		b.safeLeft--

		if c == 0 {
			for _, q := range b.neighbors(b.Point(j), buf[:0]) {
				k := b.index(q.X, q.Y)
				if !b.status[k].Revealed() {
					todo.PushBack(k)
				}
			}
		}
	}

	return false
}

// toggleFlag marks a covered square as a suspected mine, or clears the mark.
func (b *Board) toggleFlag(i int) {
	switch b.status[i] {
	case Hidden:
		b.status[i] = FlaggedMine
	case FlaggedMine:
		b.status[i] = Hidden
	}
}
