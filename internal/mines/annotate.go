package mines

// Annotate writes the mined-neighbour count into every safe square. Mines
// are left alone, so running it again yields the same board.
func Annotate(b *Board) {
	buf := make([]Point, 0, len(offsets))
	for i, c := range b.cells {
		if c == Mine {
			continue
		}
		n := 0
		for _, q := range b.neighbors(b.Point(i), buf[:0]) {
			if b.cells[b.index(q.X, q.Y)] == Mine {
				n++
			}
		}
		b.cells[i] = Clue(n)
	}
}
