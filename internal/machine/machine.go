// Package machine implements a single-tape Turing machine that decides
// whether X > Y for two unsigned integers written in unary on its tape.
//
// The tape layout is X ones, a 0, Y ones, a 0. The machine marks the first
// lhs cell, scans to the end of the rhs, counts the rhs ones walking left,
// and then consumes that many lhs ones. Running out of count before reaching
// the mark means X > Y. On halting the tape holds the input followed by a
// single decision bit.
package machine

import (
	"fmt"
	"iter"
)

// Snapshot describes the machine after one executed step.
type Snapshot struct {
	Step  int    // 1-based step number
	From  State  // State the step started in
	State State  // State after the step
	Read  Symbol // Symbol under the head before the step, if From.Reads()
	Head  int    // Head position after the step
	Len   int    // Tape length after the step
}

// Machine is a single-tape comparator. It is not safe for concurrent use.
type Machine struct {
	tape  *Tape
	head  int
	state State
	steps int
	last  Snapshot
	err   error
}

// New creates a machine over a copy of tape with the head on cell 0 in the
// initial state.
func New(tape []Symbol) (*Machine, error) {
	if len(tape) == 0 {
		return nil, ErrEmptyTape
	}
	t, err := NewTape(tape)
	if err != nil {
		return nil, fmt.Errorf("invalid tape: %w", err)
	}
	return &Machine{tape: t, state: Initial()}, nil
}

// Advance executes one step and reports whether the machine has halted.
// A fault leaves the machine unchanged and is returned by every later call.
func (m *Machine) Advance() (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.state.Kind == KindHalt {
		return true, nil
	}

	from := m.state
	var read Symbol
	if from.Reads() {
		sym, err := m.tape.At(m.head)
		if err != nil {
			return false, m.fail(from, err)
		}
		read = sym
	}

	eff, err := Transition(from, read)
	if err != nil {
		return false, m.fail(from, err)
	}

	// Validate the move before touching the tape so a fault has no side effects.
	newLen := m.tape.Len()
	if eff.Op == OpAppend {
		newLen++
	}
	next := m.head + eff.Move
	if next < 0 || next > newLen {
		return false, m.fail(from, &BoundsError{Index: next, Len: newLen})
	}

	switch eff.Op {
	case OpWrite:
		if err := m.tape.Set(m.head, eff.Symbol); err != nil {
			return false, m.fail(from, err)
		}
	case OpAppend:
		if err := m.tape.Append(eff.Symbol); err != nil {
			return false, m.fail(from, err)
		}
	}

	m.head = next
	m.state = eff.Next
	m.steps++
	m.last = Snapshot{
		Step:  m.steps,
		From:  from,
		State: m.state,
		Read:  read,
		Head:  m.head,
		Len:   m.tape.Len(),
	}

	return m.state.Kind == KindHalt, nil
}

func (m *Machine) fail(from State, err error) error {
	m.err = fmt.Errorf("step %d in state %s at head %d: %w", m.steps+1, from, m.head, err)
	return m.err
}

// Run advances the machine until it halts or faults.
func (m *Machine) Run() error {
	for {
		halted, err := m.Advance()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Steps returns a lazy sequence of snapshots, one per executed step, ending
// when the machine halts or faults. The sequence drives the machine itself,
// so it can only be consumed once; check Err afterwards for a fault.
func (m *Machine) Steps() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for !m.Halted() {
			halted, err := m.Advance()
			if err != nil {
				return
			}
			if !yield(m.last) || halted {
				return
			}
		}
	}
}

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// State returns the current control state.
func (m *Machine) State() State {
	return m.state
}

// Head returns the current head position.
func (m *Machine) Head() int {
	return m.head
}

// StepCount returns the number of steps executed so far.
func (m *Machine) StepCount() int {
	return m.steps
}

// Last returns the snapshot of the most recent step.
func (m *Machine) Last() Snapshot {
	return m.last
}

// Halted reports whether the machine reached the terminal state.
func (m *Machine) Halted() bool {
	return m.state.Kind == KindHalt
}

// Tape returns a copy of the current tape.
func (m *Machine) Tape() []Symbol {
	return m.tape.Symbols()
}

// Decision returns the bit appended by the final write: true when X > Y.
func (m *Machine) Decision() (bool, error) {
	if !m.Halted() {
		return false, ErrNotHalted
	}
	last, err := m.tape.Last()
	if err != nil {
		return false, err
	}
	return last == One, nil
}
