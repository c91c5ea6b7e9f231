package engine

import (
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	mg "magpie-chess/magpiemg"
)

// Depth limits. Anything outside is clamped, not rejected.
const (
	MinDepth = 2
	MaxDepth = 20
)

var colourNames = []string{"white", "black"}

// Options is what the position producer hands the engine: a board,
// who moves first, which seat the human takes, which evaluation
// function the computer uses and how deep it searches.
type Options struct {
	// Rows is the board as eight strings, black's back rank first,
	// uppercase black, lowercase white, '.' for empty. Empty means
	// the standard initial position.
	Rows []string `yaml:"board"`

	FirstColour string `yaml:"first_colour"`
	HumanFirst  bool   `yaml:"human_first"`
	SimpleEval  bool   `yaml:"simple_eval"`
	Depth       int    `yaml:"depth"`

	// Board is the decoded [file][rank] character grid.
	Board [8][8]byte `yaml:"-"`
}

// DefaultOptions mirrors the producer's defaults: standard position,
// white to move, human first, full evaluation, depth 4.
func DefaultOptions() Options {
	return Options{
		FirstColour: "white",
		HumanFirst:  true,
		SimpleEval:  false,
		Depth:       4,
		Board:       mg.StartingChars(),
	}
}

// LoadOptions reads a YAML options file and normalizes it.
func LoadOptions(path string) (Options, error) {
	o := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return o, err
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("options %s: %w", path, err)
	}
	if err := o.Normalize(); err != nil {
		return o, fmt.Errorf("options %s: %w", path, err)
	}
	return o, nil
}

// Normalize clamps the depth, checks the colour name and decodes the
// board rows into the character grid.
func (o *Options) Normalize() error {
	o.Depth = Min(Max(o.Depth, MinDepth), MaxDepth)

	if o.FirstColour == "" {
		o.FirstColour = "white"
	}
	if !slices.Contains(colourNames, o.FirstColour) {
		return fmt.Errorf("first_colour must be white or black, got %q", o.FirstColour)
	}

	if len(o.Rows) == 0 {
		return nil
	}
	if len(o.Rows) != 8 {
		return fmt.Errorf("board needs 8 rows, got %d", len(o.Rows))
	}
	var board [8][8]byte
	for i, row := range o.Rows {
		if len(row) != 8 {
			return fmt.Errorf("board row %d needs 8 cells, got %d", i, len(row))
		}
		for f := 0; f < 8; f++ {
			if row[f] != '.' {
				board[f][7-i] = row[f]
			}
		}
	}
	o.Board = board
	return nil
}

// FirstToMove returns the colour that plays the first half-move.
func (o Options) FirstToMove() mg.Colour {
	if o.FirstColour == "black" {
		return mg.Black
	}
	return mg.White
}
