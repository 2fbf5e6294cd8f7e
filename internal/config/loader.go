package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/thruflo/tapegt/internal/logging"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultMaxSteps = 0
	DefaultFormat   = FormatText
	DefaultLang     = "en"
	DefaultLogLevel = "warn"
)

// Dir is the per-project configuration directory.
const Dir = ".tapegt"

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Limits: Limits{MaxSteps: DefaultMaxSteps},
		Output: Output{Format: DefaultFormat, Lang: DefaultLang},
		Log:    Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Load reads .tapegt/config.yaml under basePath, applies TAPEGT_* environment
// overrides and validates the result.
func Load(basePath string) (*Config, error) {
	cfg, err := readFile(basePath)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses .tapegt/config.yaml from the given base path.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields.
func LoadConfig(basePath string) (*Config, error) {
	cfg, err := readFile(basePath)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(basePath string) (*Config, error) {
	configPath := filepath.Join(basePath, Dir, "config.yaml")

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv overlays TAPEGT_* environment variables onto cfg.
// Unset variables leave the existing values in place.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Limits.MaxSteps < 0 {
		return ValidationError{Field: "limits.max_steps", Message: "must not be negative"}
	}

	switch cfg.Output.Format {
	case FormatText, FormatSentence, FormatJSON:
	default:
		return ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("must be one of %s, %s, %s", FormatText, FormatSentence, FormatJSON),
		}
	}

	if _, err := language.Parse(cfg.Output.Lang); err != nil {
		return ValidationError{Field: "output.lang", Message: fmt.Sprintf("invalid language tag %q", cfg.Output.Lang)}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}

	return nil
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
