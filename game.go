package main

import (
	"fmt"

	"magpie-chess/engine"
	mg "magpie-chess/magpiemg"
)

// moveString formats a committed move the way the engine announces
// them: file letter and rank digit for both squares.
func moveString(from, to mg.Square) string {
	return from.Name() + "-" + to.Name()
}

// runGame alternates the two players on the shared board until one
// resigns or the search proves a terminal result. Each player only
// reads the board while choosing; the referee commits the chosen
// move.
func runGame(b *mg.Board, players [2]engine.Player) {
	fmt.Println(b)
	for i := 0; ; i = 1 - i {
		p := players[i]
		from, to, ok := p.ChooseMove()
		if !ok {
			fmt.Printf("%s resigns\n", p.Colour())
			break
		}
		if !b.Apply(p, from, to) {
			if b.GameOver != "" {
				fmt.Println(b.GameOver)
			} else {
				fmt.Printf("%s has no move\n", p.Colour())
			}
			break
		}
		if b.LeavesKingInCheck(from) {
			b.Undo()
			if b.GameOver != "" {
				fmt.Println(b.GameOver)
			}
			break
		}
		fmt.Println(moveString(from, to))
		fmt.Println(b)
		if b.GameOver != "" {
			fmt.Println(b.GameOver)
			break
		}
	}
}
