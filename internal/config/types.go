package config

// Limits bounds a single machine run.
type Limits struct {
	// MaxSteps caps the number of machine steps. Zero derives the cap from
	// the tape length.
	MaxSteps int `yaml:"max_steps" env:"TAPEGT_MAX_STEPS"`
}

// Output controls how the decision is rendered.
type Output struct {
	Format string `yaml:"format" env:"TAPEGT_FORMAT"`
	Lang   string `yaml:"lang" env:"TAPEGT_LANG"`
}

// Log controls diagnostic logging on stderr.
type Log struct {
	Level string `yaml:"level" env:"TAPEGT_LOG_LEVEL"`
}

// Trace controls on-disk step traces.
type Trace struct {
	// Dir is where trace runs are written. Empty disables tracing.
	Dir string `yaml:"dir" env:"TAPEGT_TRACE_DIR"`
}

// Config represents the .tapegt/config.yaml file.
type Config struct {
	Limits Limits `yaml:"limits"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
	Trace  Trace  `yaml:"trace"`
}

// Output format values.
const (
	FormatText     = "text"
	FormatSentence = "sentence"
	FormatJSON     = "json"
)
