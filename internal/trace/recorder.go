// Package trace records machine runs on disk. Each run gets its own directory
// holding steps.ndjson (one JSON object per executed step, numbered from 1)
// and summary.yaml (input, decision and exit reason).
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/thruflo/tapegt/internal/machine"
	"gopkg.in/yaml.v3"
)

// File names inside a run directory.
const (
	StepsFile   = "steps.ndjson"
	SummaryFile = "summary.yaml"
)

// Entry is one line of steps.ndjson.
type Entry struct {
	Seq   uint64 `json:"seq"`
	RunID string `json:"run_id"`
	From  string `json:"from"`
	Read  uint8  `json:"read"`
	State string `json:"state"`
	Head  int    `json:"head"`
	Len   int    `json:"len"`
}

// Summary is written to summary.yaml when a run finishes.
type Summary struct {
	RunID      string    `yaml:"run_id"`
	Input      string    `yaml:"input"`
	Tape       string    `yaml:"tape"`
	FinalTape  string    `yaml:"final_tape,omitempty"`
	Decision   *bool     `yaml:"decision,omitempty"`
	Steps      int       `yaml:"steps"`
	ExitReason string    `yaml:"exit_reason"`
	Error      string    `yaml:"error,omitempty"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// Recorder appends step entries for a single run.
type Recorder struct {
	runID     string
	dir       string
	file      *os.File
	w         *bufio.Writer
	enc       *json.Encoder
	seq       uint64
	startedAt time.Time
	closed    bool
}

// NewRecorder creates <baseDir>/<run-id>/ and opens its steps file.
func NewRecorder(baseDir string) (*Recorder, error) {
	runID := uuid.New().String()
	dir := filepath.Join(baseDir, runID)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, StepsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create steps file: %w", err)
	}

	w := bufio.NewWriter(f)
	return &Recorder{
		runID:     runID,
		dir:       dir,
		file:      f,
		w:         w,
		enc:       json.NewEncoder(w),
		startedAt: time.Now().UTC(),
	}, nil
}

// RunID returns the identifier of the run being recorded.
func (r *Recorder) RunID() string {
	return r.runID
}

// Dir returns the run directory.
func (r *Recorder) Dir() string {
	return r.dir
}

// Record appends one snapshot. Its signature matches loop.Observer.
func (r *Recorder) Record(s machine.Snapshot) error {
	if r.closed {
		return fmt.Errorf("recorder for run %s is closed", r.runID)
	}

	r.seq++
	entry := Entry{
		Seq:   r.seq,
		RunID: r.runID,
		From:  s.From.String(),
		Read:  uint8(s.Read),
		State: s.State.String(),
		Head:  s.Head,
		Len:   s.Len,
	}
	if err := r.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to write step %d: %w", entry.Seq, err)
	}
	return nil
}

// Finish flushes the steps file, writes summary.yaml and closes the recorder.
// RunID, StartedAt and FinishedAt are filled in when empty.
func (r *Recorder) Finish(sum Summary) error {
	if r.closed {
		return nil
	}
	r.closed = true

	flushErr := r.w.Flush()
	closeErr := r.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush steps file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close steps file: %w", closeErr)
	}

	if sum.RunID == "" {
		sum.RunID = r.runID
	}
	if sum.StartedAt.IsZero() {
		sum.StartedAt = r.startedAt
	}
	if sum.FinishedAt.IsZero() {
		sum.FinishedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, SummaryFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// ReadEntries reads every step entry of the run stored in dir.
func ReadEntries(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, StepsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("trace not found: %s", dir)
		}
		return nil, fmt.Errorf("failed to open steps file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("invalid steps file line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps file: %w", err)
	}
	return entries, nil
}

// ReadSummary reads summary.yaml of the run stored in dir.
func ReadSummary(dir string) (*Summary, error) {
	data, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("summary not found: %s", dir)
		}
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}

	var sum Summary
	if err := yaml.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("failed to parse summary file: %w", err)
	}
	return &sum, nil
}
