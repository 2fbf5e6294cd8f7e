package testutil

import "github.com/thruflo/tapegt/internal/machine"

// Scenario is an input line and its expected decision.
type Scenario struct {
	Name  string
	Input string
	X, Y  uint32
	Want  bool
}

// Scenarios returns the canonical comparisons.
// Returns a new slice each time to prevent test interference.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "greater", Input: "5 3", X: 5, Y: 3, Want: true},
		{Name: "less", Input: "2 5", X: 2, Y: 5, Want: false},
		{Name: "equal", Input: "4 4", X: 4, Y: 4, Want: false},
		{Name: "both zero", Input: "0 0", X: 0, Y: 0, Want: false},
		{Name: "one over zero", Input: "1 0", X: 1, Y: 0, Want: true},
		{Name: "zero under one", Input: "0 1", X: 0, Y: 1, Want: false},
		{Name: "padded whitespace", Input: "  10\t9 \n", X: 10, Y: 9, Want: true},
	}
}

// Pair is an operand pair with its expected decision.
type Pair struct {
	X, Y uint32
	Want bool
}

// Grid returns every pair in [0, n] x [0, n].
func Grid(n uint32) []Pair {
	pairs := make([]Pair, 0, int(n+1)*int(n+1))
	for x := uint32(0); x <= n; x++ {
		for y := uint32(0); y <= n; y++ {
			pairs = append(pairs, Pair{X: x, Y: y, Want: x > y})
		}
	}
	return pairs
}

// UnaryTape returns x ones, a 0, y ones, a 0.
func UnaryTape(x, y uint32) []machine.Symbol {
	tape := make([]machine.Symbol, 0, int(x)+int(y)+2)
	for i := uint32(0); i < x; i++ {
		tape = append(tape, machine.One)
	}
	tape = append(tape, machine.Zero)
	for i := uint32(0); i < y; i++ {
		tape = append(tape, machine.One)
	}
	return append(tape, machine.Zero)
}
