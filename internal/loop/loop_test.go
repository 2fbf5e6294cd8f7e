package loop

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/tapegt/internal/logging"
	"github.com/thruflo/tapegt/internal/machine"
	"github.com/thruflo/tapegt/internal/testutil"
)

func newMachine(t *testing.T, tape []machine.Symbol) *machine.Machine {
	t.Helper()
	m, err := machine.New(tape)
	require.NoError(t, err)
	return m
}

func quietLogger() *logging.Logger {
	l := logging.New()
	l.SetOutput(&bytes.Buffer{})
	return l
}

func TestExitReasonString(t *testing.T) {
	tests := []struct {
		reason   ExitReason
		expected string
	}{
		{ExitReasonUnknown, "unknown"},
		{ExitReasonHalted, "halted"},
		{ExitReasonMaxSteps, "max steps"},
		{ExitReasonCanceled, "canceled"},
		{ExitReasonFault, "fault"},
		{ExitReasonObserver, "observer failed"},
		{ExitReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestRun_Scenarios(t *testing.T) {
	t.Parallel()

	for _, sc := range testutil.Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			t.Parallel()

			input := testutil.UnaryTape(sc.X, sc.Y)
			m := newMachine(t, input)

			result := Run(testutil.RunContext(t), m, Options{Logger: quietLogger()})
			require.NoError(t, result.Error)
			assert.Equal(t, ExitReasonHalted, result.Reason)
			assert.Equal(t, sc.Want, result.Decision)
			assert.Equal(t, m.StepCount(), result.Steps)
			testutil.AssertInputRestored(t, input, m)
		})
	}
}

func TestRun_ObserverSeesEveryStep(t *testing.T) {
	t.Parallel()

	m := newMachine(t, testutil.UnaryTape(1, 0))

	var seen []machine.Snapshot
	result := Run(context.Background(), m, Options{
		Logger: quietLogger(),
		Observer: func(s machine.Snapshot) error {
			testutil.AssertHeadInRange(t, s)
			seen = append(seen, s)
			return nil
		},
	})

	require.NoError(t, result.Error)
	require.Len(t, seen, result.Steps)
	for i, s := range seen {
		assert.Equal(t, i+1, s.Step)
	}
	assert.Equal(t, machine.KindHalt, seen[len(seen)-1].State.Kind)
}

func TestRun_ObserverError(t *testing.T) {
	t.Parallel()

	m := newMachine(t, testutil.UnaryTape(3, 1))
	boom := errors.New("disk full")

	result := Run(context.Background(), m, Options{
		Logger: quietLogger(),
		Observer: func(s machine.Snapshot) error {
			if s.Step == 2 {
				return boom
			}
			return nil
		},
	})

	assert.Equal(t, ExitReasonObserver, result.Reason)
	assert.ErrorIs(t, result.Error, boom)
	assert.Equal(t, 2, result.Steps)
}

func TestRun_StepLimit(t *testing.T) {
	t.Parallel()

	m := newMachine(t, testutil.UnaryTape(6, 6))

	result := Run(context.Background(), m, Options{MaxSteps: 5, Logger: quietLogger()})
	assert.Equal(t, ExitReasonMaxSteps, result.Reason)
	assert.ErrorIs(t, result.Error, ErrStepLimit)
	assert.Equal(t, 5, result.Steps)
	assert.False(t, m.Halted())
}

func TestRun_StepLimitAllowsExactFit(t *testing.T) {
	t.Parallel()

	// Learn the exact step count, then run again with that as the ceiling.
	probe := testutil.RunToHalt(t, testutil.UnaryTape(4, 2))

	m := newMachine(t, testutil.UnaryTape(4, 2))
	result := Run(context.Background(), m, Options{MaxSteps: probe.StepCount(), Logger: quietLogger()})
	require.NoError(t, result.Error)
	assert.Equal(t, ExitReasonHalted, result.Reason)
	assert.True(t, result.Decision)
}

func TestRun_DefaultCeilingCoversValidInputs(t *testing.T) {
	t.Parallel()

	for _, p := range testutil.Grid(15) {
		input := testutil.UnaryTape(p.X, p.Y)
		m := newMachine(t, input)

		result := Run(context.Background(), m, Options{Logger: quietLogger()})
		require.NoError(t, result.Error, "decide(%d, %d)", p.X, p.Y)
		assert.Equal(t, p.Want, result.Decision, "decide(%d, %d)", p.X, p.Y)
		assert.LessOrEqual(t, result.Steps, DefaultMaxSteps(len(input)))
	}
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newMachine(t, testutil.UnaryTape(2, 1))
	result := Run(ctx, m, Options{Logger: quietLogger()})

	assert.Equal(t, ExitReasonCanceled, result.Reason)
	assert.ErrorIs(t, result.Error, context.Canceled)
	assert.Equal(t, 0, result.Steps)
}

func TestRun_CanceledMidRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newMachine(t, testutil.UnaryTape(5, 5))
	result := Run(ctx, m, Options{
		Logger: quietLogger(),
		Observer: func(s machine.Snapshot) error {
			if s.Step == 4 {
				cancel()
			}
			return nil
		},
	})

	assert.Equal(t, ExitReasonCanceled, result.Reason)
	assert.Equal(t, 4, result.Steps)
}

func TestRun_Fault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New()
	logger.SetOutput(&buf)

	// No terminator after the lhs run.
	m := newMachine(t, []machine.Symbol{machine.One, machine.One})
	result := Run(context.Background(), m, Options{Logger: logger})

	assert.Equal(t, ExitReasonFault, result.Reason)
	assert.True(t, machine.IsBoundsError(result.Error))
	assert.Contains(t, buf.String(), "ERROR: machine fault")
}

func TestRun_DebugLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New()
	logger.SetLevel(logging.LevelDebug)
	logger.SetOutput(&buf)

	m := newMachine(t, testutil.UnaryTape(0, 0))
	result := Run(context.Background(), m, Options{Logger: logger})
	require.NoError(t, result.Error)

	out := buf.String()
	assert.Contains(t, out, "DEBUG: run starting")
	assert.Contains(t, out, "state=fr")
	assert.Contains(t, out, "INFO: run halted | decision=false steps=3")
}

func TestDefaultMaxSteps(t *testing.T) {
	assert.Equal(t, 16, DefaultMaxSteps(0))
	assert.Equal(t, 56, DefaultMaxSteps(10))
}
