package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/tapegt/internal/machine"
)

// RunToHalt runs a fresh machine over tape and requires it to halt cleanly.
func RunToHalt(t *testing.T, tape []machine.Symbol) *machine.Machine {
	t.Helper()

	m, err := machine.New(tape)
	require.NoError(t, err, "machine construction failed")
	require.NoError(t, m.Run(), "machine faulted")
	require.True(t, m.Halted(), "machine did not halt")
	return m
}

// AssertDecision asserts that a halted machine decided want.
func AssertDecision(t *testing.T, m *machine.Machine, want bool) {
	t.Helper()

	got, err := m.Decision()
	require.NoError(t, err)
	assert.Equal(t, want, got, "decision mismatch")
}

// AssertInputRestored asserts that the final tape is the input followed by
// exactly one decision bit.
func AssertInputRestored(t *testing.T, input []machine.Symbol, m *machine.Machine) {
	t.Helper()

	final := m.Tape()
	require.Len(t, final, len(input)+1, "expected input plus one decision bit")
	assert.Equal(t, machine.FormatSymbols(input), machine.FormatSymbols(final[:len(input)]),
		"tape not restored")
}

// AssertHeadInRange asserts that a snapshot's head lies in [0, len].
func AssertHeadInRange(t *testing.T, snap machine.Snapshot) {
	t.Helper()

	assert.GreaterOrEqual(t, snap.Head, 0, "step %d: head below tape start", snap.Step)
	assert.LessOrEqual(t, snap.Head, snap.Len, "step %d: head past tape end", snap.Step)
}
