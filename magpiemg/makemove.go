package magpiemg

// Mover supplies the promotion choice when a pawn reaches the last
// rank during Apply. Players implement it; fixed choosers serve the
// perft driver and tests.
type Mover interface {
	ChoosePromotion() byte
}

// moveRecord holds what Undo needs to exactly reverse one Apply.
type moveRecord struct {
	movedSlot    int8
	movedPrev    Square
	capturedSlot int8
	capturedPrev Square
	rookSlot     int8
	rookPrev     Square
	rights       byte
	enPassant    Square
	promoted     bool
	prevKind     byte
}

// Apply performs the move from -> to if it validates, pushing an undo
// record. Castling hops the rook, a double pawn step arms the
// en-passant target for the next half-move, an en-passant capture
// removes the passed pawn, and a pawn reaching the last rank becomes
// the kind the mover chooses (queen or knight). Returns false without
// side effects when the move does not validate. Self-check is not
// filtered here; callers probe InCheck afterwards and undo.
func (b *Board) Apply(m Mover, from, to Square) bool {
	c := from.Colour()
	if !b.ValidateMove(c, from, to) {
		return false
	}

	ff, fr := from.File(), from.Rank()
	tf, tr := to.File(), to.Rank()
	slot := b.Grid[ff][fr]
	kind := b.Kinds[slot]

	rec := moveRecord{
		movedSlot:    slot,
		movedPrev:    b.Pieces[slot],
		capturedSlot: -1,
		rookSlot:     -1,
		rights:       b.rights,
		enPassant:    b.enPassant,
	}

	if cell := b.Grid[tf][tr]; cell != Empty {
		rec.capturedSlot = cell
		rec.capturedPrev = b.Pieces[cell]
		b.Pieces[cell] &^= aliveBit
	} else if kind == 'P' && tf != ff {
		// En passant: the captured pawn sits beside the mover.
		cell := b.Grid[tf][fr]
		rec.capturedSlot = cell
		rec.capturedPrev = b.Pieces[cell]
		b.Pieces[cell] &^= aliveBit
		b.Grid[tf][fr] = Empty
	}

	b.Grid[ff][fr] = Empty
	b.Grid[tf][tr] = slot
	b.Pieces[slot] = from&identMask | to&coordMask

	if kind == 'K' && abs(tf-ff) == 2 {
		rookFile, hopFile := 7, 5
		if tf == 2 {
			rookFile, hopFile = 0, 3
		}
		rook := b.Grid[rookFile][fr]
		rec.rookSlot = rook
		rec.rookPrev = b.Pieces[rook]
		b.Grid[rookFile][fr] = Empty
		b.Grid[hopFile][fr] = rook
		b.Pieces[rook] = b.Pieces[rook].To(hopFile, fr)
	}

	if kind == 'K' {
		b.rights &^= CastleMask(c)
	}
	b.rights &^= rookHomeRights(ff, fr) | rookHomeRights(tf, tr)

	if kind == 'P' && abs(tr-fr) == 2 {
		b.enPassant = Square(ff<<3 | (fr+tr)/2)
	} else {
		b.enPassant = NoSquare
	}

	if kind == 'P' && tr == lastRank(c) {
		rec.promoted = true
		rec.prevKind = kind
		b.Kinds[slot] = promotionKind(m.ChoosePromotion())
	}

	b.undo = append(b.undo, rec)
	b.moveCount++
	b.sideToMove = b.sideToMove.Other()
	return true
}

// Undo pops the last record and reverses it exactly.
func (b *Board) Undo() {
	if len(b.undo) == 0 {
		return
	}
	rec := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]

	cur := b.Pieces[rec.movedSlot]
	b.Grid[cur.File()][cur.Rank()] = Empty
	b.Pieces[rec.movedSlot] = rec.movedPrev
	b.Grid[rec.movedPrev.File()][rec.movedPrev.Rank()] = rec.movedSlot

	if rec.rookSlot >= 0 {
		hop := b.Pieces[rec.rookSlot]
		b.Grid[hop.File()][hop.Rank()] = Empty
		b.Pieces[rec.rookSlot] = rec.rookPrev
		b.Grid[rec.rookPrev.File()][rec.rookPrev.Rank()] = rec.rookSlot
	}

	if rec.capturedSlot >= 0 {
		b.Pieces[rec.capturedSlot] = rec.capturedPrev
		b.Grid[rec.capturedPrev.File()][rec.capturedPrev.Rank()] = rec.capturedSlot
	}

	if rec.promoted {
		b.Kinds[rec.movedSlot] = rec.prevKind
	}

	b.rights = rec.rights
	b.enPassant = rec.enPassant
	b.moveCount--
	b.sideToMove = b.sideToMove.Other()
}

// rookHomeRights maps a corner square to the castling bit it guards.
func rookHomeRights(file, rank int) byte {
	switch {
	case file == 0 && rank == 0:
		return CastleWhiteRookA
	case file == 7 && rank == 0:
		return CastleWhiteRookH
	case file == 0 && rank == 7:
		return CastleBlackRookA
	case file == 7 && rank == 7:
		return CastleBlackRookH
	}
	return 0
}

// promotionKind sanitizes a mover's promotion choice: knights stay
// knights, anything else becomes a queen.
func promotionKind(ch byte) byte {
	if ch == 'N' || ch == 'n' {
		return 'N'
	}
	return 'Q'
}
