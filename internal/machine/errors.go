package machine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownState is returned when the transition table has no entry for a state.
	// It indicates a programming error, not bad input.
	ErrUnknownState = errors.New("unknown state")

	// ErrNotHalted is returned when the decision is requested before the machine halts.
	ErrNotHalted = errors.New("machine has not halted")

	// ErrEmptyTape is returned when a machine is constructed without any input.
	ErrEmptyTape = errors.New("empty tape")
)

// BoundsError reports a tape access or head move outside [0, Len).
type BoundsError struct {
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tape index %d out of range [0, %d)", e.Index, e.Len)
}

// SymbolError reports a non-binary symbol.
type SymbolError struct {
	Index  int
	Symbol Symbol
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %d at index %d", uint8(e.Symbol), e.Index)
}

// IsBoundsError checks if an error is a BoundsError.
func IsBoundsError(err error) bool {
	var be *BoundsError
	return errors.As(err, &be)
}
