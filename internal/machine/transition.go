package machine

import "fmt"

// Op is the tape mutation performed by a step.
type Op uint8

const (
	OpNone   Op = iota // Leave the tape unchanged
	OpWrite            // Replace the cell under the head
	OpAppend           // Add a cell after the last one
)

// Effect is the outcome of one transition.
type Effect struct {
	Next   State
	Op     Op
	Symbol Symbol // Written or appended symbol; ignored for OpNone
	Move   int    // Head displacement: -1, 0 or +1
}

func move(next State, delta int) Effect {
	return Effect{Next: next, Move: delta}
}

// Transition computes the effect of stepping from s having read bit.
// bit is ignored for states where s.Reads() is false.
//
// Every read happens under the head and the head never leaves [0, len]:
// the mark is the only cell ever rewritten, and both branches clear it
// again so the final tape is the input plus the decision.
func Transition(s State, bit Symbol) (Effect, error) {
	switch s.Kind {
	case KindMark:
		if bit == Zero {
			// Empty lhs: nothing can be greater than Y.
			return Effect{Next: State{Kind: KindFalseRight}, Op: OpWrite, Symbol: Zero, Move: 1}, nil
		}
		return Effect{Next: SkipLhs(One), Op: OpWrite, Symbol: Zero, Move: 1}, nil

	case KindSkipLhs:
		if s.N != 0 {
			return move(SkipLhs(bit), 1), nil
		}
		// On the first rhs cell.
		if bit == Zero {
			return move(State{Kind: KindDispatch}, 0), nil
		}
		return move(SkipRhs(One), 1), nil

	case KindSkipRhs:
		if bit == Zero {
			return move(State{Kind: KindDispatch}, 0), nil
		}
		return move(SkipRhs(One), 1), nil

	case KindDispatch:
		return move(Accumulate(0), -1), nil

	case KindAccumulate:
		if bit == Zero {
			return move(Decrement(s.N), -1), nil
		}
		return move(Accumulate(s.N+1), -1), nil

	case KindDecrement:
		if s.N == 0 {
			return move(State{Kind: KindRestore}, 0), nil
		}
		if bit == Zero {
			// Hit the mark with ones still owed: X <= Y.
			return Effect{Next: State{Kind: KindFalseLeft}, Op: OpWrite, Symbol: One, Move: 1}, nil
		}
		return move(Decrement(s.N-1), -1), nil

	case KindRestore:
		if bit == Zero {
			return Effect{Next: State{Kind: KindTrueLeft}, Op: OpWrite, Symbol: One, Move: 0}, nil
		}
		return Effect{Next: s, Op: OpWrite, Symbol: One, Move: -1}, nil

	case KindFalseLeft:
		if bit == Zero {
			return move(State{Kind: KindFalseRight}, 1), nil
		}
		return move(s, 1), nil

	case KindFalseRight:
		if bit == Zero {
			return move(Write(false), 1), nil
		}
		return move(s, 1), nil

	case KindTrueLeft:
		if bit == Zero {
			return move(State{Kind: KindTrueRight}, 1), nil
		}
		return move(s, 1), nil

	case KindTrueRight:
		if bit == Zero {
			return move(Write(true), 1), nil
		}
		return move(s, 1), nil

	case KindWrite:
		out := Zero
		if s.N != 0 {
			out = One
		}
		return Effect{Next: State{Kind: KindHalt}, Op: OpAppend, Symbol: out}, nil

	case KindHalt:
		return move(s, 0), nil
	}

	return Effect{}, fmt.Errorf("%w: %s", ErrUnknownState, s.Kind)
}
