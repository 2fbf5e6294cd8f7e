package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thruflo/tapegt/internal/loop"
	"github.com/thruflo/tapegt/internal/machine"
	"github.com/thruflo/tapegt/internal/trace"
	"github.com/thruflo/tapegt/internal/unary"
	"golang.org/x/term"
)

func runDecide(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	line, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	report, err := decide(commandContext(cmd), line, s, nil)
	if err != nil {
		return err
	}

	return unary.Render(cmd.OutOrStdout(), report, s.format, s.lang)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readInput returns the "X Y" line from args, or reads one line from stdin.
// A prompt is shown only when stdin is an interactive terminal.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "X Y: ")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// decide runs the full pipeline for one input line: parse, encode, run the
// machine to halt and collect the report. observe, when non-nil, sees every
// step before the trace recorder does.
func decide(ctx context.Context, line string, s *settings, observe loop.Observer) (unary.Report, error) {
	pair, err := unary.ParseInput(line)
	if err != nil {
		return unary.Report{}, err
	}

	tape := unary.Encode(pair)
	m, err := machine.New(tape)
	if err != nil {
		return unary.Report{}, fmt.Errorf("failed to build machine: %w", err)
	}

	log := s.logger.With("input", pair.String())

	var rec *trace.Recorder
	if s.traceDir != "" {
		rec, err = trace.NewRecorder(s.traceDir)
		if err != nil {
			return unary.Report{}, err
		}
		log = log.With("run", rec.RunID())
	}

	result := loop.Run(ctx, m, loop.Options{
		MaxSteps: s.maxSteps,
		Observer: chainObservers(observe, recorderObserver(rec)),
		Logger:   log,
	})

	if rec != nil {
		if err := rec.Finish(summarize(pair, tape, m, result)); err != nil {
			log.Warn("failed to finish trace", "error", err)
		} else {
			log.Info("trace written", "dir", rec.Dir())
		}
	}

	if result.Error != nil {
		return unary.Report{}, fmt.Errorf("machine stopped (%s) after %d steps: %w", result.Reason, result.Steps, result.Error)
	}

	greater, err := unary.Decode(m.Tape())
	if err != nil {
		return unary.Report{}, err
	}
	return unary.Report{Pair: pair, Greater: greater, Steps: result.Steps}, nil
}

func recorderObserver(rec *trace.Recorder) loop.Observer {
	if rec == nil {
		return nil
	}
	return rec.Record
}

func chainObservers(observers ...loop.Observer) loop.Observer {
	var active []loop.Observer
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(s machine.Snapshot) error {
		for _, o := range active {
			if err := o(s); err != nil {
				return err
			}
		}
		return nil
	}
}

func summarize(pair unary.Pair, tape []machine.Symbol, m *machine.Machine, result loop.Result) trace.Summary {
	sum := trace.Summary{
		Input:      pair.String(),
		Tape:       machine.FormatSymbols(tape),
		FinalTape:  machine.FormatSymbols(m.Tape()),
		Steps:      result.Steps,
		ExitReason: result.Reason.String(),
	}
	if result.Reason == loop.ExitReasonHalted {
		decision := result.Decision
		sum.Decision = &decision
	}
	if result.Error != nil {
		sum.Error = result.Error.Error()
	}
	return sum
}
