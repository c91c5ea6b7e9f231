package engine

import (
	mg "magpie-chess/magpiemg"
)

// Centre squares as packed coordinates: d4, d5, e4, e5.
const (
	centreD4 mg.Square = 27
	centreD5 mg.Square = 28
	centreE4 mg.Square = 35
	centreE5 mg.Square = 36
)

// Material weights by kind character.
func (c *Computer) pieceValue(i int) int {
	switch c.b.Kinds[i] {
	case 'K':
		return 200
	case 'Q':
		return 9
	case 'R':
		return 5
	case 'B':
		return 3
	case 'N':
		return 3
	case 'P':
		return 1
	}
	return 0
}

// evaluate dispatches to the configured evaluation function. Scores
// are from our point of view; higher is better for us.
func (c *Computer) evaluate() int {
	if c.simple {
		return c.fastEval()
	}
	return c.fullEval()
}

// fastEval is the quick evaluation: material balance plus a nudge
// about castling. If we held any castling right when the search
// started and none is left in this line, the king had better have
// landed on a castled file.
func (c *Computer) fastEval() int {
	sum := 0
	for i := c.mLow; i < c.mHi; i++ {
		if c.b.Pieces[i].Alive() {
			sum += c.pieceValue(i)
		}
	}
	for i := c.tLow; i < c.tHi; i++ {
		if c.b.Pieces[i].Alive() {
			sum -= c.pieceValue(i)
		}
	}

	if c.rootRights != 0 && c.rightsMask&c.b.CastlingRights() == 0 {
		if f := c.b.Pieces[c.mLow].File(); f == 2 || f == 6 {
			sum += 2
		} else {
			sum -= 2
		}
	}

	return sum
}

// detectPhase labels the position opening, middle or endgame.
// "Opening" holds while the back ranks are mostly at home and at
// least nine pawns (both sides pooled) sit on their starting ranks;
// "endgame" when fewer than seven pieces survive in total. The
// counters only recognize positions that grew out of the standard
// setup; a hand-built middlegame can still read as an opening.
func (c *Computer) detectPhase() {
	c.opening = true
	c.endgame = false
	pieceCount := 0
	pawnCount := 0

	for i := 0; i < 8; i++ {
		if c.b.Pieces[i].Alive() && c.b.Pieces[i].Rank() == 7 {
			pieceCount++
		}
		if c.b.Pieces[i+16].Alive() && c.b.Pieces[i+16].Rank() == 0 {
			pieceCount++
		}
		if c.b.Pieces[i+8].Alive() && c.b.Pieces[i+8].Rank() == 6 {
			pawnCount++
		}
		if c.b.Pieces[i+24].Alive() && c.b.Pieces[i+24].Rank() == 1 {
			pawnCount++
		}
	}

	if pawnCount < 9 || pieceCount < 7 {
		c.opening = false
		pieceCount = 0
	}

	if !c.opening {
		for i := 0; i < 32; i++ {
			if c.b.Pieces[i].Alive() {
				pieceCount++
			}
		}
		if pieceCount < 7 {
			c.endgame = true
		}
	}
}

// ourPawn reports whether a grid cell holds one of our pawns (by
// roster slot range; promoted pawns still count, their slot does not
// change).
func (c *Computer) ourPawn(cell int8) bool {
	return int(cell) > c.mLow+7 && int(cell) < c.mHi
}

// fullEval is the slower evaluation: material plus phase-dependent
// positional terms. Centre control, development and king safety in
// the opening; rook files, passed pawns and pawn aggression in the
// middlegame; king centralization in the endgame.
func (c *Computer) fullEval() int {
	out := 0

	sum := 0
	for i := c.mLow; i < c.mHi; i++ {
		if c.b.Pieces[i].Alive() {
			sum += c.pieceValue(i)
		}
	}
	for i := c.tLow; i < c.tHi; i++ {
		if c.b.Pieces[i].Alive() {
			sum -= c.pieceValue(i)
		}
	}

	if c.opening {
		centreAttack := 0
		for i := c.mLow; i < c.mHi; i++ {
			p := c.b.Pieces[i]
			for _, sq := range [4]mg.Square{centreE5, centreE4, centreD4, centreD5} {
				if c.b.ValidateMove(c.colour, p, p&-64|sq) {
					centreAttack++
				}
			}
		}

		development := 0
		for i := c.mLow + 2; i < c.mHi-8; i++ {
			if c.b.Pieces[i].Alive() {
				if r := c.b.Pieces[i].Rank(); r != 0 && r != 7 {
					development += 3
				}
			}
		}

		castled := 0
		if c.rootRights != 0 && c.rightsMask&c.b.CastlingRights() == 0 {
			if f := c.b.Pieces[c.mLow].File(); f == 2 || f == 6 {
				castled += 4
			} else {
				castled -= 4
			}
		}

		out = sum + centreAttack + development + castled
	}

	if c.opening || !c.endgame {
		// King shelter: reward the two three-pawn wedges in front of
		// a castled king, per colour and wing.
		protectKing := 0
		g := &c.b.Grid
		kingFile := c.b.Pieces[c.mLow].File()
		if c.colour == mg.Black {
			if kingFile > 4 {
				if c.ourPawn(g[5][6]) && c.ourPawn(g[6][6]) && c.ourPawn(g[7][5]) {
					protectKing += 4
				} else if c.ourPawn(g[5][6]) && c.ourPawn(g[6][5]) && c.ourPawn(g[7][4]) {
					protectKing += 4
				}
			} else if kingFile < 3 {
				if c.ourPawn(g[0][5]) && c.ourPawn(g[1][6]) && c.ourPawn(g[2][6]) {
					protectKing += 4
				} else if c.ourPawn(g[0][4]) && c.ourPawn(g[1][5]) && c.ourPawn(g[2][6]) {
					protectKing += 4
				}
			}
		} else {
			if kingFile > 4 {
				if c.ourPawn(g[5][1]) && c.ourPawn(g[6][1]) && c.ourPawn(g[7][2]) {
					protectKing += 4
				} else if c.ourPawn(g[5][1]) && c.ourPawn(g[6][2]) && c.ourPawn(g[7][3]) {
					protectKing += 4
				}
			} else if kingFile < 3 {
				if c.ourPawn(g[0][2]) && c.ourPawn(g[1][1]) && c.ourPawn(g[2][1]) {
					protectKing += 4
				} else if c.ourPawn(g[0][3]) && c.ourPawn(g[1][2]) && c.ourPawn(g[2][1]) {
					protectKing += 4
				}
			}
		}
		out += protectKing
	}

	if !c.endgame {
		// Pawns past the centre line.
		pawnAggression := 0
		for i := c.mLow + 8; i < c.mHi; i++ {
			p := c.b.Pieces[i]
			if !p.Alive() {
				continue
			}
			if c.colour == mg.Black {
				if p.Rank() < 4 {
					pawnAggression++
				}
			} else if p.Rank() > 3 {
				pawnAggression++
			}
		}

		// Rook files containing nothing but our own pawns.
		open := 0
		for _, slot := range [2]int{c.mLow + 2, c.mLow + 3} {
			rook := c.b.Pieces[slot]
			if !rook.Alive() {
				continue
			}
			openFile := true
			file := rook.File()
			for r := 0; r < 8; r++ {
				cell := c.b.Grid[file][r]
				if cell != mg.Empty && int(cell) != slot && !c.ourPawn(cell) {
					openFile = false
					break
				}
			}
			if openFile {
				open += 2
			}
		}

		// Passed pawns: no enemy pawn ahead on the adjacent files.
		// En passant is ignored here, and h-file pawns never qualify.
		passed := 0
		plusPawn := 1
		if c.colour == mg.Black {
			plusPawn = -1
		}
		for i := c.mLow + 8; i < c.mHi; i++ {
			p := c.b.Pieces[i]
			if !p.Alive() {
				continue
			}
			openFile := true
			file := p.File() - 1
			rank := p.Rank() + plusPawn
			if file >= 0 {
				for rank >= 0 && rank < 8 {
					if c.theirPawn(c.b.Grid[file][rank]) {
						openFile = false
						break
					}
					rank += plusPawn
				}
			}
			if openFile {
				file += 2
				rank = p.Rank() + plusPawn
				if file < 8 {
					for rank >= 0 && rank < 8 {
						if c.theirPawn(c.b.Grid[file][rank]) {
							openFile = false
							break
						}
						rank += plusPawn
					}
					if openFile {
						passed += 3
					}
				}
			}
		}

		out += sum + open + passed + pawnAggression
	}

	if c.endgame {
		centerKing := 0
		king := c.b.Pieces[c.mLow]
		if king.File() > 1 && king.File() < 6 && king.Rank() > 1 && king.Rank() < 6 {
			centerKing++
		}
		out = sum + centerKing
	}

	return out
}

// theirPawn reports whether a grid cell holds an opposing pawn slot.
func (c *Computer) theirPawn(cell int8) bool {
	return int(cell) >= c.tLow+8 && int(cell) < c.tHi
}
