package magpiemg

// Move generation and validation work directly on packed square
// bytes. Every piece kind has a validate predicate (is from->to
// mechanically playable, ignoring self-check) and a generator that
// enumerates candidate destinations. The generators emit exactly the
// squares the predicates accept, so the search can use either view.

var (
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	knightJumps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	rookRays    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenRays   = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// ValidateMove reports whether moving c's piece on from to the
// coordinates of to is mechanically legal: correct geometry, a clear
// path for sliders, captures onto the opposite colour only. Special
// cases (castling path and check rules, en passant, the pawn double
// step) are recognized here. Self-check is the caller's problem.
func (b *Board) ValidateMove(c Colour, from, to Square) bool {
	cell := b.Grid[from.File()][from.Rank()]
	if cell == Empty || pieceColour(int(cell)) != c {
		return false
	}
	if b.Pieces[cell] != from {
		return false
	}
	if from.File() == to.File() && from.Rank() == to.Rank() {
		return false
	}
	switch b.Kinds[cell] {
	case 'K':
		return b.validateKing(c, from, to)
	case 'Q':
		return b.validateSlider(c, from, to, true, true)
	case 'R':
		return b.validateSlider(c, from, to, true, false)
	case 'B':
		return b.validateSlider(c, from, to, false, true)
	case 'N':
		return b.validateKnight(c, from, to)
	case 'P':
		return b.validatePawn(c, from, to)
	}
	return false
}

// Moves enumerates candidate destinations for the piece on from. The
// results carry the mover's colour and alive bits, ready to hand to
// Apply. Dead pieces and empty squares yield nil.
func (b *Board) Moves(from Square) []Square {
	if !from.Alive() {
		return nil
	}
	cell := b.Grid[from.File()][from.Rank()]
	if cell == Empty || b.Pieces[cell] != from {
		return nil
	}
	c := pieceColour(int(cell))
	switch b.Kinds[cell] {
	case 'K':
		return b.kingMoves(c, from)
	case 'Q':
		return b.sliderMoves(c, from, queenRays[:], 27)
	case 'R':
		return b.sliderMoves(c, from, rookRays[:], 14)
	case 'B':
		return b.sliderMoves(c, from, bishopRays[:], 13)
	case 'N':
		return b.leaperMoves(c, from, knightJumps, 8)
	case 'P':
		return b.pawnMoves(c, from)
	}
	return nil
}

func (b *Board) validateSlider(c Colour, from, to Square, straight, diagonal bool) bool {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	switch {
	case df == 0 || dr == 0:
		if !straight {
			return false
		}
	case abs(df) == abs(dr):
		if !diagonal {
			return false
		}
	default:
		return false
	}
	sf, sr := sign(df), sign(dr)
	f, r := from.File()+sf, from.Rank()+sr
	for f != to.File() || r != to.Rank() {
		if b.Grid[f][r] != Empty {
			return false
		}
		f += sf
		r += sr
	}
	return !ownPiece(b.Grid[f][r], c)
}

func (b *Board) validateKnight(c Colour, from, to Square) bool {
	df, dr := abs(to.File()-from.File()), abs(to.Rank()-from.Rank())
	if !(df == 1 && dr == 2 || df == 2 && dr == 1) {
		return false
	}
	return !ownPiece(b.Grid[to.File()][to.Rank()], c)
}

func (b *Board) validateKing(c Colour, from, to Square) bool {
	df, dr := to.File()-from.File(), to.Rank()-from.Rank()
	if abs(df) <= 1 && abs(dr) <= 1 {
		return !ownPiece(b.Grid[to.File()][to.Rank()], c)
	}
	// Castling: two files sideways along the home rank.
	home := homeRank(c)
	if dr != 0 || from.Rank() != home || from.File() != 4 {
		return false
	}
	switch to.File() {
	case 6:
		return b.castleLegal(c, CastleWhiteRookH, CastleBlackRookH, [2]int{5, 6}, [2]int{5, 6})
	case 2:
		return b.castleLegal(c, CastleWhiteRookA, CastleBlackRookA, [2]int{2, 3}, [2]int{1, 3})
	}
	return false
}

// castleLegal checks one wing: rights intact, the span between king
// and rook empty, king neither in check now nor crossing or landing
// on an attacked square.
func (b *Board) castleLegal(c Colour, whiteRook, blackRook byte, transit [2]int, emptySpan [2]int) bool {
	need := CastleWhiteKing | whiteRook
	if c == Black {
		need = CastleBlackKing | blackRook
	}
	if b.rights&need != need {
		return false
	}
	home := homeRank(c)
	for f := emptySpan[0]; f <= emptySpan[1]; f++ {
		if b.Grid[f][home] != Empty {
			return false
		}
	}
	if b.InCheck(c) {
		return false
	}
	for _, f := range transit {
		if b.attacked(c.Other(), f, home) {
			return false
		}
	}
	return true
}

func (b *Board) validatePawn(c Colour, from, to Square) bool {
	dir := pawnDir(c)
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	if df == 0 {
		if b.Grid[to.File()][to.Rank()] != Empty {
			return false
		}
		if dr == dir {
			return true
		}
		return dr == 2*dir && from.Rank() == pawnHomeRank(c) &&
			b.Grid[from.File()][from.Rank()+dir] == Empty
	}
	if abs(df) != 1 || dr != dir {
		return false
	}
	cell := b.Grid[to.File()][to.Rank()]
	if cell != Empty {
		return pieceColour(int(cell)) != c
	}
	return b.enPassant != NoSquare && to&coordMask == b.enPassant&coordMask
}

func (b *Board) kingMoves(c Colour, from Square) []Square {
	moves := make([]Square, 0, 10)
	moves = b.appendLeaps(moves, c, from, kingSteps)
	home := homeRank(c)
	if from.File() != 4 || from.Rank() != home {
		return moves
	}
	for _, file := range [2]int{6, 2} {
		to := from.To(file, home)
		if b.validateKing(c, from, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

func (b *Board) leaperMoves(c Colour, from Square, steps [8][2]int, limit int) []Square {
	return b.appendLeaps(make([]Square, 0, limit), c, from, steps)
}

func (b *Board) appendLeaps(moves []Square, c Colour, from Square, steps [8][2]int) []Square {
	for _, st := range steps {
		f, r := from.File()+st[0], from.Rank()+st[1]
		if f < 0 || f > 7 || r < 0 || r > 7 {
			continue
		}
		if !ownPiece(b.Grid[f][r], c) {
			moves = append(moves, from.To(f, r))
		}
	}
	return moves
}

func (b *Board) sliderMoves(c Colour, from Square, rays [][2]int, limit int) []Square {
	moves := make([]Square, 0, limit)
	for _, ray := range rays {
		f, r := from.File()+ray[0], from.Rank()+ray[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			cell := b.Grid[f][r]
			if cell == Empty {
				moves = append(moves, from.To(f, r))
				f += ray[0]
				r += ray[1]
				continue
			}
			if pieceColour(int(cell)) != c {
				moves = append(moves, from.To(f, r))
			}
			break
		}
	}
	return moves
}

// pawnMoves emits pushes, captures and the en-passant capture. A push
// onto the last rank is emitted as a single move; Apply asks the
// mover which piece the pawn becomes.
func (b *Board) pawnMoves(c Colour, from Square) []Square {
	dir := pawnDir(c)
	moves := make([]Square, 0, 4)
	f, r := from.File(), from.Rank()
	if b.Grid[f][r+dir] == Empty {
		moves = append(moves, from.To(f, r+dir))
		if r == pawnHomeRank(c) && b.Grid[f][r+2*dir] == Empty {
			moves = append(moves, from.To(f, r+2*dir))
		}
	}
	for _, df := range [2]int{-1, 1} {
		cf := f + df
		if cf < 0 || cf > 7 {
			continue
		}
		to := from.To(cf, r+dir)
		cell := b.Grid[cf][r+dir]
		if cell != Empty && pieceColour(int(cell)) != c {
			moves = append(moves, to)
		} else if cell == Empty && b.enPassant != NoSquare && to&coordMask == b.enPassant&coordMask {
			moves = append(moves, to)
		}
	}
	return moves
}

// InCheck reports whether c's king square can be captured by a live
// piece of the other colour, using the same validate predicates the
// rest of the engine uses.
func (b *Board) InCheck(c Colour) bool {
	king := b.KingSquare(c)
	them := c.Other()
	for i := base(them); i < base(them)+16; i++ {
		p := b.Pieces[i]
		if !p.Alive() {
			continue
		}
		if b.ValidateMove(them, p, p&identMask|king&coordMask) {
			return true
		}
	}
	return false
}

// LeavesKingInCheck is the post-Apply predicate for the side that
// owns from: callers apply a trial move, ask, and undo when true.
func (b *Board) LeavesKingInCheck(from Square) bool {
	return b.InCheck(from.Colour())
}

// attacked reports whether a piece of colour by could capture on
// (file, rank) if an enemy stood there. Unlike ValidateMove it works
// for empty squares too: pawn pushes do not count, king attacks are
// the single step only.
func (b *Board) attacked(by Colour, file, rank int) bool {
	for i := base(by); i < base(by)+16; i++ {
		p := b.Pieces[i]
		if !p.Alive() {
			continue
		}
		pf, pr := p.File(), p.Rank()
		df, dr := file-pf, rank-pr
		if df == 0 && dr == 0 {
			continue
		}
		switch b.Kinds[i] {
		case 'P':
			if abs(df) == 1 && dr == pawnDir(by) {
				return true
			}
		case 'N':
			if abs(df) == 1 && abs(dr) == 2 || abs(df) == 2 && abs(dr) == 1 {
				return true
			}
		case 'K':
			if abs(df) <= 1 && abs(dr) <= 1 {
				return true
			}
		case 'R':
			if (df == 0 || dr == 0) && b.rayClear(pf, pr, file, rank) {
				return true
			}
		case 'B':
			if abs(df) == abs(dr) && b.rayClear(pf, pr, file, rank) {
				return true
			}
		case 'Q':
			if (df == 0 || dr == 0 || abs(df) == abs(dr)) && b.rayClear(pf, pr, file, rank) {
				return true
			}
		}
	}
	return false
}

// rayClear reports an empty straight or diagonal path between two
// squares, endpoints excluded.
func (b *Board) rayClear(f0, r0, f1, r1 int) bool {
	sf, sr := sign(f1-f0), sign(r1-r0)
	f, r := f0+sf, r0+sr
	for f != f1 || r != r1 {
		if b.Grid[f][r] != Empty {
			return false
		}
		f += sf
		r += sr
	}
	return true
}

func homeRank(c Colour) int {
	if c == Black {
		return 7
	}
	return 0
}

func pawnHomeRank(c Colour) int {
	if c == Black {
		return 6
	}
	return 1
}

func pawnDir(c Colour) int {
	if c == Black {
		return -1
	}
	return 1
}

func lastRank(c Colour) int {
	if c == Black {
		return 0
	}
	return 7
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
