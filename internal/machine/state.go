package machine

import "fmt"

// Kind identifies a control state of the comparator.
type Kind uint8

const (
	KindMark       Kind = iota // Mark the first lhs cell with 0
	KindSkipLhs                // Scan right over lhs; N is the last bit read
	KindSkipRhs                // Scan right over rhs; N is the last bit read
	KindDispatch               // Step off the rhs terminator
	KindAccumulate             // Count rhs ones right-to-left; N is the count
	KindDecrement              // Consume one lhs one per counted rhs one; N is what remains
	KindRestore                // True branch: walk back to the mark and clear it
	KindFalseLeft              // False branch: skip right over lhs
	KindFalseRight             // False branch: skip right over rhs
	KindTrueLeft               // True branch: skip right over lhs
	KindTrueRight              // True branch: skip right over rhs
	KindWrite                  // Append the decision; N is 1 for true
	KindHalt                   // Terminal
)

var kindNames = map[Kind]string{
	KindMark:       "Mark",
	KindSkipLhs:    "SkipLhs",
	KindSkipRhs:    "SkipRhs",
	KindDispatch:   "Dispatch",
	KindAccumulate: "Accumulate",
	KindDecrement:  "Decrement",
	KindRestore:    "Restore",
	KindFalseLeft:  "FalseLeft",
	KindFalseRight: "FalseRight",
	KindTrueLeft:   "TrueLeft",
	KindTrueRight:  "TrueRight",
	KindWrite:      "Write",
	KindHalt:       "Halt",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// State is a control state plus its payload. Only SkipLhs, SkipRhs,
// Accumulate, Decrement and Write use N; it is zero for every other kind.
type State struct {
	Kind Kind
	N    uint32
}

// SkipLhs returns the lhs scanning state having last read bit.
func SkipLhs(bit Symbol) State { return State{Kind: KindSkipLhs, N: uint32(bit)} }

// SkipRhs returns the rhs scanning state having last read bit.
func SkipRhs(bit Symbol) State { return State{Kind: KindSkipRhs, N: uint32(bit)} }

// Accumulate returns the accumulating state holding count n.
func Accumulate(n uint32) State { return State{Kind: KindAccumulate, N: n} }

// Decrement returns the decrementing state with n ones left to consume.
func Decrement(n uint32) State { return State{Kind: KindDecrement, N: n} }

// Write returns the state that appends outcome to the tape.
func Write(outcome bool) State {
	if outcome {
		return State{Kind: KindWrite, N: 1}
	}
	return State{Kind: KindWrite}
}

// Initial is the state every machine starts in.
func Initial() State { return State{Kind: KindMark} }

// Reads reports whether a step from this state inspects the cell under the head.
func (s State) Reads() bool {
	switch s.Kind {
	case KindDispatch, KindWrite, KindHalt:
		return false
	case KindDecrement:
		return s.N > 0
	default:
		return true
	}
}

// String renders the compact tag used in traces: q1, l1, r1, a3, d2, ts,
// fl, fr, tl, tr, wt, wf, qq. Dispatch renders as r0.
func (s State) String() string {
	switch s.Kind {
	case KindMark:
		return "q1"
	case KindSkipLhs:
		return fmt.Sprintf("l%d", s.N)
	case KindSkipRhs:
		return fmt.Sprintf("r%d", s.N)
	case KindDispatch:
		return "r0"
	case KindAccumulate:
		return fmt.Sprintf("a%d", s.N)
	case KindDecrement:
		return fmt.Sprintf("d%d", s.N)
	case KindRestore:
		return "ts"
	case KindFalseLeft:
		return "fl"
	case KindFalseRight:
		return "fr"
	case KindTrueLeft:
		return "tl"
	case KindTrueRight:
		return "tr"
	case KindWrite:
		if s.N != 0 {
			return "wt"
		}
		return "wf"
	case KindHalt:
		return "qq"
	default:
		return s.Kind.String()
	}
}
