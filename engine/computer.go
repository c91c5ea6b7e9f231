package engine

import (
	"math"
	"math/rand"
	"time"

	mg "magpie-chess/magpiemg"
)

// Score constants. Terminal values sit outside the range either
// evaluation function can produce, and the ignore sentinels sit
// outside even those, so an illegal trial move can never win a
// min/max comparison.
const (
	win   = 15000
	stale = -14000

	ignoreMin = math.MinInt32
	ignoreMax = math.MaxInt32
)

// Computer searches a minimax tree with alpha-beta pruning to pick a
// move. One tree implementation serves both colours: the roster index
// ranges for "my" and "their" pieces (mLow..mHi, tLow..tHi) are fixed
// at construction, as is the castling-rights mask used by the
// evaluators. Two evaluation functions are available, one fast and
// one with phase-aware positional terms.
type Computer struct {
	b      *mg.Board
	colour mg.Colour
	tc     mg.Colour // their colour

	mLow, mHi, tLow, tHi int
	rightsMask           byte
	rootRights           byte

	simple   bool
	opening  bool
	endgame  bool
	maxDepth int

	promoChar byte
	rng       *rand.Rand
}

// NewComputer builds a computer player for one side of the board.
// Depth is the ply limit; the full evaluator raises it by two in
// detected endgames.
func NewComputer(b *mg.Board, colour mg.Colour, simpleEval bool, maxDepth int) *Computer {
	c := &Computer{
		b:          b,
		colour:     colour,
		tc:         colour.Other(),
		simple:     simpleEval,
		maxDepth:   maxDepth,
		promoChar:  'N',
		rightsMask: mg.CastleMask(colour),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if colour == mg.Black {
		c.mLow, c.tLow = 0, 16
	} else {
		c.mLow, c.tLow = 16, 0
	}
	c.mHi = c.mLow + 16
	c.tHi = c.tLow + 16
	return c
}

// Colour returns the side this player moves.
func (c *Computer) Colour() mg.Colour { return c.colour }

// Seed fixes the tie-break random source, making move choice
// reproducible.
func (c *Computer) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// ChoosePromotion alternates between knight and queen so that
// successive trial promotions explore both movement patterns.
func (c *Computer) ChoosePromotion() byte {
	if c.promoChar == 'N' {
		c.promoChar = 'Q'
	} else {
		c.promoChar = 'N'
	}
	return c.promoChar
}

// node is one vertex of the search tree. Min and max behaviour is not
// encoded in the type; the two ply routines call updateAlpha or
// updateBeta as appropriate. Both colours' check bits are computed on
// entry so terminal states can be told apart one ply later.
type node struct {
	parent       *node
	alpha, beta  int
	value        int
	firstVal     bool
	blackInCheck bool
	whiteInCheck bool
}

func (c *Computer) newNode(parent *node) *node {
	n := &node{parent: parent, alpha: ignoreMin, beta: ignoreMax, firstVal: true}
	if parent != nil {
		n.alpha = parent.alpha
		n.beta = parent.beta
	}
	n.blackInCheck = c.b.InCheck(mg.Black)
	n.whiteInCheck = c.b.InCheck(mg.White)
	return n
}

// updateAlpha raises alpha and the running value for a max node. The
// first child seeds the value either way, so a node has a defined
// result even when every child was ignored.
func (n *node) updateAlpha(v int) {
	if v > n.alpha {
		n.alpha = v
		n.value = v
	} else if n.firstVal {
		n.value = v
	}
	n.firstVal = false
}

// updateBeta lowers beta and the running value for a min node.
func (n *node) updateBeta(v int) {
	if v < n.beta {
		n.beta = v
		n.value = v
	} else if n.firstVal {
		n.value = v
	}
	n.firstVal = false
}

// dispatch tracks the current ply and owns the leaf test and the
// depth-aware terminal bias: terminal values move toward zero as the
// ply grows, so a nearer win and a more distant loss or stalemate
// score better.
type dispatch struct {
	depth int
	max   int
}

// down descends one ply and reports whether the leaf depth is
// reached.
func (d *dispatch) down() bool {
	d.depth++
	return d.depth >= d.max
}

func (d *dispatch) up() { d.depth-- }

// lookAhead is the terminal-value bias, half the current ply rounded
// down: added on our plies, subtracted on theirs.
func (d *dispatch) lookAhead() int { return d.depth / 2 }

// rootMove accumulates the evaluation of every generated move of one
// piece at the root.
type rootMove struct {
	from  mg.Square
	nexts []mg.Square
	evals []int
}

// ChooseMove runs the search and returns the selected move. Among all
// moves sharing the best evaluation one is picked uniformly at random
// by reservoir selection. When the best value proves a terminal
// result the board's GameOver status is set; ok=false means no move
// was generated at all.
func (c *Computer) ChooseMove() (mg.Square, mg.Square, bool) {
	depth := c.maxDepth
	if !c.simple {
		c.detectPhase()
		if c.endgame {
			depth += 2
		}
	}

	// Snapshot our castling rights: the evaluators reward or punish
	// losing them depending on where the king ends up.
	c.rootRights = c.rightsMask & c.b.CastlingRights()

	root := c.newNode(nil)
	d := &dispatch{max: depth}

	moves := make([]rootMove, 0, 16)
	for i := c.mLow; i < c.mHi; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		rm := rootMove{from: p, nexts: c.b.Moves(p)}
		rm.evals = make([]int, len(rm.nexts))
		for a, next := range rm.nexts {
			v := c.searchMin(root, p, next, d)
			// A stalemate found on their ply travels up positive;
			// flip it once so it cannot shadow a real score.
			if v > -100-stale && v <= -stale {
				v = -v
			}
			rm.evals[a] = v
			root.updateAlpha(v)
		}
		moves = append(moves, rm)
	}

	var from, to mg.Square
	count := 0
	for _, rm := range moves {
		for a, next := range rm.nexts {
			if rm.evals[a] == root.alpha {
				count++
				if c.rng.Float64() < 1.0/float64(count) {
					from, to = rm.from, next
				}
			}
		}
	}

	switch root.alpha {
	case win:
		c.b.GameOver = "Computer wins!"
	case -win:
		c.b.GameOver = "Human wins!"
	case stale:
		c.b.GameOver = "Stalemate"
	}

	return from, to, count > 0
}

// checkMyMoves classifies the position right after one of our moves:
// if our king is now attacked the move was no good - a mate when we
// were already in check on the previous ply, a dead end otherwise.
func (c *Computer) checkMyMoves(n *node) int {
	if c.colour == mg.Black {
		if n.blackInCheck {
			if n.parent.blackInCheck {
				return -win
			}
			return stale
		}
	} else {
		if n.whiteInCheck {
			if n.parent.whiteInCheck {
				return -win
			}
			return stale
		}
	}
	return 0
}

// checkTheirMoves classifies the position right after one of their
// moves: still in check means they had no escape and we win; fresh
// check means the reply was impossible and the line is a stalemate
// from their side, returned positive and filtered at the root.
func (c *Computer) checkTheirMoves(n *node) int {
	if c.tc == mg.Black {
		if n.blackInCheck {
			if n.parent.blackInCheck {
				return win
			}
			return -stale
		}
	} else {
		if n.whiteInCheck {
			if n.parent.whiteInCheck {
				return win
			}
			return -stale
		}
	}
	return 0
}

// searchMin scores one of our moves by minimizing over their replies.
// An unplayable move returns the min-side ignore sentinel.
func (c *Computer) searchMin(parent *node, from, to mg.Square, d *dispatch) int {
	if !c.b.Apply(c, from, to) {
		return ignoreMin
	}

	n := c.newNode(parent)
	if bad := c.checkMyMoves(n); bad != 0 {
		c.b.Undo()
		return bad + d.lookAhead()
	}

	if d.down() {
		out := c.evaluate()
		c.b.Undo()
		d.up()
		return out
	}

outer:
	for i := c.tLow; i < c.tHi; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, next := range c.b.Moves(p) {
			n.updateBeta(c.searchMax(n, p, next, d))
			if n.beta < n.alpha {
				break outer
			}
		}
	}

	c.b.Undo()
	d.up()
	return n.value
}

// searchMax scores one of their moves by maximizing over our replies.
// An unplayable move returns the max-side ignore sentinel.
func (c *Computer) searchMax(parent *node, from, to mg.Square, d *dispatch) int {
	if !c.b.Apply(c, from, to) {
		return ignoreMax
	}

	n := c.newNode(parent)
	if bad := c.checkTheirMoves(n); bad != 0 {
		c.b.Undo()
		return bad - d.lookAhead()
	}

	if d.down() {
		out := c.evaluate()
		c.b.Undo()
		d.up()
		return out
	}

outer:
	for i := c.mLow; i < c.mHi; i++ {
		p := c.b.Pieces[i]
		if !p.Alive() {
			continue
		}
		for _, next := range c.b.Moves(p) {
			n.updateAlpha(c.searchMin(n, p, next, d))
			if n.beta < n.alpha {
				break outer
			}
		}
	}

	c.b.Undo()
	d.up()
	return n.value
}
