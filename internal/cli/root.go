package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thruflo/tapegt/internal/config"
	"github.com/thruflo/tapegt/internal/logging"
	"github.com/thruflo/tapegt/internal/unary"
	"golang.org/x/text/language"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	rootDir      string
	rootFormat   string
	rootLang     string
	rootMaxSteps int
	rootLogLevel string
	rootVerbose  bool
	rootTraceDir string
)

var rootCmd = &cobra.Command{
	Use:   "tapegt [X Y]",
	Short: "Decide X > Y with a single-tape Turing machine",
	Long: `tapegt encodes two non-negative integers in unary on a tape and runs a
single-tape Turing machine that appends 1 when X > Y and 0 otherwise.

The operands come from the arguments or, when none are given, from one
"X Y" line on stdin.

Example:
  tapegt 5 3
  echo "2 5" | tapegt --format sentence
  tapegt trace 1 0`,
	Args:          inputArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDecide,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("tapegt version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootDir, "dir", "", "project directory holding .tapegt/config.yaml (default: current directory)")
	flags.StringVarP(&rootFormat, "format", "f", config.DefaultFormat, "output format: text, sentence or json")
	flags.StringVar(&rootLang, "lang", config.DefaultLang, "language for sentence output (en, de, fr)")
	flags.IntVar(&rootMaxSteps, "max-steps", config.DefaultMaxSteps, "step ceiling (0 derives it from the tape length)")
	flags.StringVar(&rootLogLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "log every machine step (same as --log-level debug)")
	flags.StringVar(&rootTraceDir, "trace-dir", "", "write an NDJSON step trace for each run under this directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func inputArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 2 {
		return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
	}
	return nil
}

// settings is the resolved configuration for one invocation.
type settings struct {
	format   unary.Format
	lang     language.Tag
	maxSteps int
	traceDir string
	logger   *logging.Logger
}

// loadSettings layers config file, environment and explicitly set flags.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	dir := rootDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = rootFormat
	}
	if flags.Changed("lang") {
		cfg.Output.Lang = rootLang
	}
	if flags.Changed("max-steps") {
		cfg.Limits.MaxSteps = rootMaxSteps
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}
	if flags.Changed("trace-dir") {
		cfg.Trace.Dir = rootTraceDir
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	format, err := unary.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(cfg.Output.Lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if rootVerbose {
		level = logging.LevelDebug
	}

	logger := logging.Default()
	logger.SetLevel(level)
	logger.SetOutput(cmd.ErrOrStderr())

	return &settings{
		format:   format,
		lang:     tag,
		maxSteps: cfg.Limits.MaxSteps,
		traceDir: cfg.Trace.Dir,
		logger:   logger,
	}, nil
}
