package engine

import (
	"testing"

	mg "magpie-chess/magpiemg"
)

func TestFastEvalBalancedStart(t *testing.T) {
	b := boardFromRows(t, startRows(), mg.White)
	c := NewComputer(b, mg.White, true, 2)
	if got := c.fastEval(); got != 0 {
		t.Fatalf("start position fast eval %d, want 0", got)
	}
}

func TestFastEvalMaterial(t *testing.T) {
	// White is up a queen for a knight.
	b := boardFromRows(t, [8]string{
		"....K...",
		"....N...",
		"........",
		"........",
		"........",
		"........",
		"....q...",
		"....k...",
	}, mg.White)
	cw := NewComputer(b, mg.White, true, 2)
	cb := NewComputer(b, mg.Black, true, 2)
	if got := cw.fastEval(); got != 6 {
		t.Fatalf("white fast eval %d, want 6", got)
	}
	if got := cb.fastEval(); got != -6 {
		t.Fatalf("black fast eval %d, want -6", got)
	}
}

// Swapping sides negates the material view.
func TestFastEvalSymmetry(t *testing.T) {
	for _, rows := range [][8]string{
		startRows(),
		{
			"R...K...",
			"PP......",
			"........",
			"........",
			"....n...",
			"........",
			".....ppp",
			"....k..r",
		},
	} {
		b := boardFromRows(t, rows, mg.White)
		cw := NewComputer(b, mg.White, true, 2)
		cb := NewComputer(b, mg.Black, true, 2)
		if w, bl := cw.fastEval(), cb.fastEval(); w != -bl {
			t.Fatalf("fast eval not antisymmetric: white %d black %d", w, bl)
		}
	}
}

func TestPhaseDetection(t *testing.T) {
	b := boardFromRows(t, startRows(), mg.White)
	c := NewComputer(b, mg.White, false, 2)
	c.detectPhase()
	if !c.opening || c.endgame {
		t.Fatalf("start position: opening=%v endgame=%v", c.opening, c.endgame)
	}

	b = boardFromRows(t, [8]string{
		"K.......",
		"........",
		"..q.....",
		"........",
		"........",
		"........",
		"........",
		"....k...",
	}, mg.White)
	c = NewComputer(b, mg.White, false, 2)
	c.detectPhase()
	if c.opening || !c.endgame {
		t.Fatalf("bare kings and queen: opening=%v endgame=%v", c.opening, c.endgame)
	}
}

// The centre-attack term sees exactly the two double pawn pushes
// into e4/d4 at the start; everything else in the opening terms is
// still zero.
func TestFullEvalOpeningStart(t *testing.T) {
	b := boardFromRows(t, startRows(), mg.White)
	c := NewComputer(b, mg.White, false, 2)
	c.detectPhase()
	if got := c.fullEval(); got != 2 {
		t.Fatalf("start position full eval %d, want 2", got)
	}
	cb := NewComputer(b, mg.Black, false, 2)
	cb.detectPhase()
	if got := cb.fullEval(); got != 2 {
		t.Fatalf("start position full eval for black %d, want 2", got)
	}
}

func TestFullEvalEndgameKingCentralization(t *testing.T) {
	rows := [8]string{
		"K.......",
		"........",
		"........",
		"........",
		"...k....",
		"........",
		"........",
		"........",
	}
	b := boardFromRows(t, rows, mg.White)
	c := NewComputer(b, mg.White, false, 2)
	c.detectPhase()
	if !c.endgame {
		t.Fatal("two bare kings not detected as endgame")
	}
	if got := c.fullEval(); got != 1 {
		t.Fatalf("centralized king full eval %d, want 1", got)
	}

	cb := NewComputer(b, mg.Black, false, 2)
	cb.detectPhase()
	if got := cb.fullEval(); got != 0 {
		t.Fatalf("cornered king full eval %d, want 0", got)
	}
}

func startRows() [8]string {
	return [8]string{
		"RNBQKBNR",
		"PPPPPPPP",
		"........",
		"........",
		"........",
		"........",
		"pppppppp",
		"rnbqkbnr",
	}
}
