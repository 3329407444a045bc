package position

// Perft counts the leaf nodes of the legal move tree to depth. It walks the
// adapter rather than the move generator directly, so it also checks the
// side-to-move bookkeeping done here.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		next, ok := b.apply(m)
		if !ok {
			continue
		}
		nodes += Perft(next, depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move, keyed by UCI.
func PerftDivide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves() {
		next, ok := b.apply(m)
		if !ok {
			continue
		}
		out[m.UCI()] = Perft(next, depth-1)
	}
	return out
}
