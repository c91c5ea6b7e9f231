package engine

import (
	"testing"

	mg "magpie-chess/magpiemg"
)

func boardFromRows(t *testing.T, rows [8]string, stm mg.Colour) *mg.Board {
	t.Helper()
	var chars [8][8]byte
	for i, row := range rows {
		for f := 0; f < 8; f++ {
			if row[f] != '.' {
				chars[f][7-i] = row[f]
			}
		}
	}
	b, err := mg.Setup(chars, stm)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// Scholar's mate: white to move, Qh5xf7 is mate (the bishop on c4
// guards f7). The search must find it, report the win and value it
// as a forced win.
func TestScholarsMate(t *testing.T) {
	b := boardFromRows(t, [8]string{
		"R.BQKB.R",
		"PPPP.PPP",
		"..N..N..",
		"....P..q",
		"..b.p...",
		"........",
		"pppp.ppp",
		"rnb.k.nr",
	}, mg.White)

	c := NewComputer(b, mg.White, true, 2)
	c.Seed(1)
	from, to, ok := c.ChooseMove()
	if !ok {
		t.Fatal("no move chosen")
	}
	if from.File() != 7 || from.Rank() != 4 || to.File() != 5 || to.Rank() != 6 {
		t.Fatalf("chose %s-%s, want H5-F7", from.Name(), to.Name())
	}
	if b.GameOver != "Computer wins!" {
		t.Fatalf("game over status %q, want %q", b.GameOver, "Computer wins!")
	}
}

// The queen must not corner the bare king into stalemate when
// winning moves remain.
func TestStalemateAvoidance(t *testing.T) {
	b := boardFromRows(t, [8]string{
		"K.......",
		"........",
		"..q.....",
		"........",
		"........",
		"........",
		"........",
		"....k...",
	}, mg.White)

	c := NewComputer(b, mg.White, false, 2)
	c.Seed(1)
	_, to, ok := c.ChooseMove()
	if !ok {
		t.Fatal("no move chosen")
	}
	if to.File() == 1 && to.Rank() == 5 {
		t.Fatal("chose Qb6, the stalemating move")
	}
	if b.GameOver == "Stalemate" {
		t.Fatalf("reported stalemate with winning moves on the board")
	}
}

// Promotion: pushing the pawn to the last rank dominates every quiet
// king move.
func TestPromotionChosen(t *testing.T) {
	b := boardFromRows(t, [8]string{
		"....K...",
		"p.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....k...",
	}, mg.White)

	c := NewComputer(b, mg.White, true, 2)
	c.Seed(1)
	from, to, ok := c.ChooseMove()
	if !ok {
		t.Fatal("no move chosen")
	}
	if from.File() != 0 || from.Rank() != 6 || to.File() != 0 || to.Rank() != 7 {
		t.Fatalf("chose %s-%s, want A7-A8", from.Name(), to.Name())
	}

	// Committing the move promotes to whatever the player picks now.
	slot := b.Grid[0][6]
	if !b.Apply(c, from, to) {
		t.Fatal("chosen move does not apply")
	}
	if k := b.Kinds[slot]; k != 'Q' && k != 'N' {
		t.Fatalf("promoted to %c, want Q or N", k)
	}
}

// alphaBetaRoot mirrors ChooseMove's root loop but returns the value.
func alphaBetaRoot(c *Computer) int {
	c.rootRights = c.rightsMask & c.b.CastlingRights()
	root := c.newNode(nil)
	d := &dispatch{max: c.maxDepth}
	for i := c.mLow; i < c.mHi; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, next := range c.b.Moves(p) {
			v := c.searchMin(root, p, next, d)
			if v > -100-stale && v <= -stale {
				v = -v
			}
			root.updateAlpha(v)
		}
	}
	return root.alpha
}

// minimaxPly is the same tree with pruning switched off: every node
// gets the full window, so updateAlpha/updateBeta degrade to plain
// max/min.
func (c *Computer) minimaxPly(parent *node, from, to mg.Square, d *dispatch, minimizing bool) int {
	if !c.b.Apply(c, from, to) {
		if minimizing {
			return ignoreMin
		}
		return ignoreMax
	}

	n := c.newNode(parent)
	n.alpha, n.beta = ignoreMin, ignoreMax

	var bad int
	if minimizing {
		bad = c.checkMyMoves(n)
	} else {
		bad = c.checkTheirMoves(n)
	}
	if bad != 0 {
		c.b.Undo()
		if minimizing {
			return bad + d.lookAhead()
		}
		return bad - d.lookAhead()
	}

	if d.down() {
		out := c.evaluate()
		c.b.Undo()
		d.up()
		return out
	}

	lo := c.tLow
	if !minimizing {
		lo = c.mLow
	}
	for i := lo; i < lo+16; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, next := range c.b.Moves(p) {
			v := c.minimaxPly(n, p, next, d, !minimizing)
			if minimizing {
				n.updateBeta(v)
			} else {
				n.updateAlpha(v)
			}
		}
	}

	c.b.Undo()
	d.up()
	return n.value
}

func minimaxRoot(c *Computer) int {
	c.rootRights = c.rightsMask & c.b.CastlingRights()
	root := c.newNode(nil)
	best := ignoreMin
	first := true
	for i := c.mLow; i < c.mHi; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, next := range c.b.Moves(p) {
			d := &dispatch{max: c.maxDepth}
			v := c.minimaxPly(root, p, next, d, true)
			if v > -100-stale && v <= -stale {
				v = -v
			}
			if first || v > best {
				best = v
				first = false
			}
		}
	}
	return best
}

// Pruning must not change the root value. The position has no
// promotions in range, so the two passes explore identical move sets.
func TestAlphaBetaMatchesMinimax(t *testing.T) {
	rows := [8]string{
		"....K...",
		".PP.....",
		"........",
		"........",
		"........",
		"........",
		".....pp.",
		"....k..r",
	}
	for _, depth := range []int{2, 3} {
		b := boardFromRows(t, rows, mg.White)
		c := NewComputer(b, mg.White, true, depth)
		pruned := alphaBetaRoot(c)

		b2 := boardFromRows(t, rows, mg.White)
		c2 := NewComputer(b2, mg.White, true, depth)
		plain := minimaxRoot(c2)

		if pruned != plain {
			t.Errorf("depth %d: alpha-beta %d, minimax %d", depth, pruned, plain)
		}
	}
}

// A search that mates the computer itself must report the loss.
func TestMateAgainstComputer(t *testing.T) {
	// White is already mated: the a1 rook checks along the first
	// rank and the b2 rook seals the second.
	b := boardFromRows(t, [8]string{
		"....K...",
		"........",
		"........",
		"........",
		"........",
		"........",
		".R......",
		"R......k",
	}, mg.White)

	c := NewComputer(b, mg.White, true, 2)
	c.Seed(1)
	_, _, ok := c.ChooseMove()
	if !ok {
		t.Fatal("no move chosen")
	}
	if b.GameOver != "Human wins!" {
		t.Fatalf("game over status %q, want %q", b.GameOver, "Human wins!")
	}
}
