package magpiemg

// queenPromoter is the fixed promotion choice used while counting
// nodes. Promotions therefore count as one move, matching the
// engine's single-move promotion model rather than FEN-style
// four-way expansion.
type queenPromoter struct{}

func (queenPromoter) ChoosePromotion() byte { return 'Q' }

// Perft counts the legal move tree to the given depth from the
// current side to move, exercising generation, apply and undo
// together.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	c := b.sideToMove
	var nodes uint64
	for i := base(c); i < base(c)+16; i++ {
		p := b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, to := range b.Moves(p) {
			if !b.Apply(queenPromoter{}, p, to) {
				continue
			}
			if !b.InCheck(c) {
				nodes += Perft(b, depth-1)
			}
			b.Undo()
		}
	}
	return nodes
}

// PerftDivide returns the per-root-move node counts, keyed by the
// move in engine notation ("E2-E4").
func PerftDivide(b *Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	c := b.sideToMove
	for i := base(c); i < base(c)+16; i++ {
		p := b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, to := range b.Moves(p) {
			if !b.Apply(queenPromoter{}, p, to) {
				continue
			}
			if !b.InCheck(c) {
				div[p.Name()+"-"+to.Name()] = Perft(b, depth-1)
			}
			b.Undo()
		}
	}
	return div
}
