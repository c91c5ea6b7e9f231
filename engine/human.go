package engine

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	mg "magpie-chess/magpiemg"
)

var movePattern = regexp.MustCompile(`^([A-Ha-h])([1-8])-([A-Ha-h])([1-8])([QNqn]?)$`)

// Human reads moves as algebraic pairs ("e2-e4", optionally with a
// trailing promotion letter) from a line-oriented stream, validates
// them against the board and reprompts until a playable move comes
// in. EOF or "resign" resigns.
type Human struct {
	b      *mg.Board
	colour mg.Colour
	in     *bufio.Scanner
	promo  byte
}

// NewHuman builds a human player reading from r.
func NewHuman(b *mg.Board, colour mg.Colour, r io.Reader) *Human {
	return &Human{b: b, colour: colour, in: bufio.NewScanner(r), promo: 'Q'}
}

// Colour returns the side this player moves.
func (h *Human) Colour() mg.Colour { return h.colour }

// ChoosePromotion returns the letter from the last entered move, or
// queen when none was given.
func (h *Human) ChoosePromotion() byte { return h.promo }

// ChooseMove prompts until the input yields a legal move for our
// side. The move is validated by trial: applied, probed for
// self-check, and undone; the referee commits it.
func (h *Human) ChooseMove() (mg.Square, mg.Square, bool) {
	for {
		fmt.Printf("%s> ", h.colour)
		if !h.in.Scan() {
			return 0, 0, false
		}
		line := strings.TrimSpace(h.in.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "resign") {
			return 0, 0, false
		}

		from, to, promo, err := h.parse(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		h.promo = promo

		if !h.b.Apply(h, from, to) {
			fmt.Println("illegal move")
			continue
		}
		if h.b.LeavesKingInCheck(from) {
			h.b.Undo()
			fmt.Println("that leaves your king in check")
			continue
		}
		h.b.Undo()
		return from, to, true
	}
}

// parse turns a line into the board's square bytes. The from square
// must hold one of our live pieces.
func (h *Human) parse(line string) (mg.Square, mg.Square, byte, error) {
	m := movePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("enter moves like E2-E4")
	}
	ff := int(strings.ToUpper(m[1])[0] - 'A')
	fr := int(m[2][0] - '1')
	tf := int(strings.ToUpper(m[3])[0] - 'A')
	tr := int(m[4][0] - '1')

	cell := h.b.Grid[ff][fr]
	if cell == mg.Empty {
		return 0, 0, 0, fmt.Errorf("no piece on %c%c", 'A'+ff, '1'+fr)
	}
	from := h.b.Pieces[cell]
	if from.Colour() != h.colour {
		return 0, 0, 0, fmt.Errorf("that is not your piece")
	}

	promo := byte('Q')
	if m[5] != "" {
		promo = strings.ToUpper(m[5])[0]
	}
	return from, from.To(tf, tr), promo, nil
}
