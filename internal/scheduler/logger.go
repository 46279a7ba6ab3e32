package scheduler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Outcome is the status of one job execution, recorded in the append-only
// scheduler log.
type Outcome string

const (
	OutcomeStart   Outcome = "START"
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeError   Outcome = "ERROR"
)

// OutcomeLogger appends one entry per job state change. Entries go to the
// scheduler log file and, for real-time visibility, to stdout.
type OutcomeLogger struct {
	log  zerolog.Logger
	file *os.File
}

// NewOutcomeLogger writes outcomes to the given writer only. Used in tests
// and when no log file is configured.
func NewOutcomeLogger(w io.Writer) *OutcomeLogger {
	return &OutcomeLogger{
		log: zerolog.New(w).With().Timestamp().Logger(),
	}
}

// NewFileOutcomeLogger appends outcomes to path, creating the directory if
// missing, and mirrors them to stdout.
func NewFileOutcomeLogger(path string) (*OutcomeLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create scheduler log directory: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open scheduler log: %v", err)
	}
	w := zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stdout})
	return &OutcomeLogger{
		log:  zerolog.New(w).With().Timestamp().Logger(),
		file: f,
	}, nil
}

func (l *OutcomeLogger) Record(jobName string, status Outcome) {
	l.log.Info().
		Str("job", jobName).
		Str("status", string(status)).
		Msg("scheduler")
}

func (l *OutcomeLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
