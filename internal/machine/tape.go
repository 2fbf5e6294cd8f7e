package machine

import (
	"fmt"
	"strings"
)

// Symbol is a single tape cell value.
type Symbol uint8

// Tape symbols.
const (
	Zero Symbol = 0
	One  Symbol = 1
)

// Valid reports whether s is a binary symbol.
func (s Symbol) Valid() bool {
	return s == Zero || s == One
}

func (s Symbol) String() string {
	if s == One {
		return "1"
	}
	return "0"
}

// Tape is a growable sequence of binary symbols. All access is bounds-checked;
// an out-of-range index yields a *BoundsError instead of wrapping or clamping.
type Tape struct {
	cells []Symbol
}

// NewTape copies symbols into a new Tape.
// Returns an error if any symbol is not 0 or 1.
func NewTape(symbols []Symbol) (*Tape, error) {
	cells := make([]Symbol, len(symbols))
	for i, s := range symbols {
		if !s.Valid() {
			return nil, &SymbolError{Index: i, Symbol: s}
		}
		cells[i] = s
	}
	return &Tape{cells: cells}, nil
}

// ParseTape builds a tape from a string of '0' and '1' characters.
// Whitespace is ignored so tapes can be grouped for readability ("111110 1110").
func ParseTape(s string) (*Tape, error) {
	symbols := make([]Symbol, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			symbols = append(symbols, Zero)
		case '1':
			symbols = append(symbols, One)
		case ' ', '\t', '\n':
		default:
			return nil, fmt.Errorf("invalid tape character %q at offset %d", r, i)
		}
	}
	return NewTape(symbols)
}

// Len returns the number of cells on the tape.
func (t *Tape) Len() int {
	return len(t.cells)
}

// At returns the symbol at index i.
func (t *Tape) At(i int) (Symbol, error) {
	if i < 0 || i >= len(t.cells) {
		return Zero, &BoundsError{Index: i, Len: len(t.cells)}
	}
	return t.cells[i], nil
}

// Set replaces the symbol at index i.
func (t *Tape) Set(i int, s Symbol) error {
	if i < 0 || i >= len(t.cells) {
		return &BoundsError{Index: i, Len: len(t.cells)}
	}
	if !s.Valid() {
		return &SymbolError{Index: i, Symbol: s}
	}
	t.cells[i] = s
	return nil
}

// Append adds s after the last cell.
func (t *Tape) Append(s Symbol) error {
	if !s.Valid() {
		return &SymbolError{Index: len(t.cells), Symbol: s}
	}
	t.cells = append(t.cells, s)
	return nil
}

// Last returns the final symbol on the tape.
func (t *Tape) Last() (Symbol, error) {
	return t.At(len(t.cells) - 1)
}

// Symbols returns a copy of the tape contents.
func (t *Tape) Symbols() []Symbol {
	out := make([]Symbol, len(t.cells))
	copy(out, t.cells)
	return out
}

// String renders the tape as a run of '0'/'1' characters.
func (t *Tape) String() string {
	return FormatSymbols(t.cells)
}

// FormatSymbols renders symbols as a run of '0'/'1' characters.
func FormatSymbols(symbols []Symbol) string {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for _, s := range symbols {
		sb.WriteString(s.String())
	}
	return sb.String()
}
