package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/thruflo/tapegt/internal/machine"
	"github.com/thruflo/tapegt/internal/unary"
)

var traceOut string

var traceCmd = &cobra.Command{
	Use:   "trace [X Y]",
	Short: "Print every machine step while deciding X > Y",
	Long: `Run the machine like the root command but print one line per step:
the step number, the state before and after, the symbol read and the head
position. The decision follows the trace in the selected output format.

Use --out to also keep the trace on disk as NDJSON with a YAML summary.

Example:
  tapegt trace 5 3
  tapegt trace 2 5 --out ./traces`,
	Args: inputArgs,
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringVarP(&traceOut, "out", "o", "", "directory to write the NDJSON trace to (overrides --trace-dir)")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if traceOut != "" {
		s.traceDir = traceOut
	}

	line, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%5s  %-5s %-5s %4s %5s\n", "STEP", "FROM", "TO", "READ", "HEAD")

	report, err := decide(commandContext(cmd), line, s, func(snap machine.Snapshot) error {
		return writeStep(out, snap)
	})
	if err != nil {
		return err
	}

	return unary.Render(out, report, s.format, s.lang)
}

func writeStep(w io.Writer, snap machine.Snapshot) error {
	read := "-"
	if snap.From.Reads() {
		read = snap.Read.String()
	}
	_, err := fmt.Fprintf(w, "%5d  %-5s %-5s %4s %5d\n", snap.Step, snap.From, snap.State, read, snap.Head)
	return err
}
