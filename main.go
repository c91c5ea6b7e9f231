package main

import (
	"flag"
	"fmt"
	"os"

	"magpie-chess/engine"
	mg "magpie-chess/magpiemg"
)

func main() {
	config := flag.String("config", "", "YAML game options (default: standard position, human first, depth 4)")
	seed := flag.Int64("seed", 0, "fix the computer's tie-break seed (0 = time-based)")
	flag.Parse()

	opts := engine.DefaultOptions()
	if *config != "" {
		var err error
		opts, err = engine.LoadOptions(*config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	board, err := mg.Setup(opts.Board, opts.FirstToMove())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	humanColour := opts.FirstToMove()
	if !opts.HumanFirst {
		humanColour = humanColour.Other()
	}

	human := engine.NewHuman(board, humanColour, os.Stdin)
	computer := engine.NewComputer(board, humanColour.Other(), opts.SimpleEval, opts.Depth)
	if *seed != 0 {
		computer.Seed(*seed)
	}

	players := [2]engine.Player{human, computer}
	if !opts.HumanFirst {
		players[0], players[1] = computer, human
	}

	runGame(board, players)
}
