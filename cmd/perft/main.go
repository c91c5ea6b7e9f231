package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	mg "magpie-chess/magpiemg"
)

func main() {
	fen := flag.String("fen", mg.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := mg.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := mg.PerftDivide(board, *depth)
		keys := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			keys = append(keys, m)
			sum += n
		}
		sort.Strings(keys)
		for _, m := range keys {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := mg.Perft(board, *depth)
	elapsed := time.Since(start)
	fmt.Printf("perft(%d) = %d in %v (%.0f nps)\n",
		*depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
