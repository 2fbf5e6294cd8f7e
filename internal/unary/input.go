// Package unary adapts between text and the comparator's tape: it parses the
// "X Y" input line, encodes the operands in unary and renders the decision.
package unary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thruflo/tapegt/internal/machine"
)

// MaxOperand is the largest accepted operand. Each unit is one tape cell.
const MaxOperand = 1 << 24

// Pair holds the two operands of X > Y.
type Pair struct {
	X uint32 `json:"x" yaml:"x"`
	Y uint32 `json:"y" yaml:"y"`
}

func (p Pair) String() string {
	return fmt.Sprintf("%d %d", p.X, p.Y)
}

// InputError describes malformed input.
type InputError struct {
	Token  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Token == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input %q: %s", e.Token, e.Reason)
}

// IsInputError checks if an error is an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// ParseInput reads exactly two whitespace-separated non-negative integers.
func ParseInput(line string) (Pair, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) < 2:
		return Pair{}, &InputError{Reason: fmt.Sprintf("expected two integers, got %d", len(fields))}
	case len(fields) > 2:
		return Pair{}, &InputError{Token: fields[2], Reason: "unexpected extra token"}
	}

	x, err := parseOperand(fields[0])
	if err != nil {
		return Pair{}, err
	}
	y, err := parseOperand(fields[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{X: x, Y: y}, nil
}

func parseOperand(tok string) (uint32, error) {
	if strings.HasPrefix(tok, "-") {
		return 0, &InputError{Token: tok, Reason: "must not be negative"}
	}
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, &InputError{Token: tok, Reason: "not a non-negative integer"}
	}
	if n > MaxOperand {
		return 0, &InputError{Token: tok, Reason: fmt.Sprintf("exceeds maximum of %d", MaxOperand)}
	}
	return uint32(n), nil
}

// Encode writes p as X ones, a 0, Y ones, a 0.
func Encode(p Pair) []machine.Symbol {
	tape := make([]machine.Symbol, 0, int(p.X)+int(p.Y)+2)
	tape = appendRun(tape, p.X)
	return appendRun(tape, p.Y)
}

func appendRun(tape []machine.Symbol, n uint32) []machine.Symbol {
	for i := uint32(0); i < n; i++ {
		tape = append(tape, machine.One)
	}
	return append(tape, machine.Zero)
}

// Decode reads the decision bit from the end of a halted tape.
func Decode(tape []machine.Symbol) (bool, error) {
	if len(tape) == 0 {
		return false, machine.ErrEmptyTape
	}
	return tape[len(tape)-1] == machine.One, nil
}
