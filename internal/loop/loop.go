// Package loop drives a machine to completion with an explicit bounded loop,
// turning a runaway machine into a reported error instead of a hang.
package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/thruflo/tapegt/internal/logging"
	"github.com/thruflo/tapegt/internal/machine"
)

// ErrStepLimit is returned when a run exceeds its step ceiling.
var ErrStepLimit = errors.New("step limit exceeded")

// ExitReason indicates why the loop stopped.
type ExitReason int

const (
	ExitReasonUnknown  ExitReason = iota
	ExitReasonHalted              // Machine reached the terminal state
	ExitReasonMaxSteps            // Hit the step ceiling
	ExitReasonCanceled            // Context canceled between steps
	ExitReasonFault               // Bounds violation or unknown state
	ExitReasonObserver            // Observer returned an error
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonHalted:
		return "halted"
	case ExitReasonMaxSteps:
		return "max steps"
	case ExitReasonCanceled:
		return "canceled"
	case ExitReasonFault:
		return "fault"
	case ExitReasonObserver:
		return "observer failed"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a run.
type Result struct {
	Reason   ExitReason
	Steps    int
	Decision bool // Valid only when Reason is ExitReasonHalted
	Error    error
}

// Observer is called with every snapshot as the machine runs.
type Observer func(machine.Snapshot) error

// Options configures a run. The zero value is usable.
type Options struct {
	// MaxSteps caps the run; zero derives the cap from the tape length.
	MaxSteps int
	Observer Observer
	Logger   *logging.Logger
}

// DefaultMaxSteps returns the step ceiling for a tape of the given length.
// A valid comparison takes at most 3*(X+Y)+9 steps on a tape of X+Y+2 cells.
func DefaultMaxSteps(tapeLen int) int {
	return 4*tapeLen + 16
}

// Run advances m until it halts, faults, exceeds the step ceiling or ctx is
// canceled. Cancellation is only observed between steps.
func Run(ctx context.Context, m *machine.Machine, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps(len(m.Tape()))
	}

	log.Debug("run starting", "max_steps", maxSteps, "tape", machine.FormatSymbols(m.Tape()))

	if err := ctx.Err(); err != nil {
		return Result{Reason: ExitReasonCanceled, Steps: m.StepCount(), Error: err}
	}

	for snap := range m.Steps() {
		if opts.Observer != nil {
			if err := opts.Observer(snap); err != nil {
				log.Error("observer failed", "step", snap.Step, "error", err)
				return Result{Reason: ExitReasonObserver, Steps: snap.Step, Error: fmt.Errorf("observe step %d: %w", snap.Step, err)}
			}
		}
		if log.Enabled(logging.LevelDebug) {
			log.Debug("step", "step", snap.Step, "from", snap.From, "read", snap.Read, "state", snap.State, "head", snap.Head)
		}

		if snap.State.Kind == machine.KindHalt {
			break
		}
		if snap.Step >= maxSteps {
			log.Warn("step limit reached", "steps", snap.Step, "state", snap.State)
			return Result{Reason: ExitReasonMaxSteps, Steps: snap.Step, Error: fmt.Errorf("%w: %d", ErrStepLimit, maxSteps)}
		}
		if err := ctx.Err(); err != nil {
			return Result{Reason: ExitReasonCanceled, Steps: snap.Step, Error: err}
		}
	}

	if err := m.Err(); err != nil {
		log.Error("machine fault", "steps", m.StepCount(), "error", err)
		return Result{Reason: ExitReasonFault, Steps: m.StepCount(), Error: err}
	}

	decision, err := m.Decision()
	if err != nil {
		return Result{Reason: ExitReasonUnknown, Steps: m.StepCount(), Error: err}
	}

	log.Info("run halted", "steps", m.StepCount(), "decision", decision)
	return Result{Reason: ExitReasonHalted, Steps: m.StepCount(), Decision: decision}
}
