// Package engine holds the two move producers (human and searching
// computer), the evaluation functions and the game options.
package engine

import (
	mg "magpie-chess/magpiemg"
)

// Player is one side of the game. The referee polls ChooseMove for
// the next move to commit; ok=false means resignation (or, for the
// computer, that no move exists). The board calls ChoosePromotion
// through the Mover interface whenever a pawn of this player reaches
// the last rank.
type Player interface {
	mg.Mover
	ChooseMove() (from, to mg.Square, ok bool)
	Colour() mg.Colour
}
