package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "warn"

// newLogger creates the logger for a run. Interactive runs discard logs
// unless a log file is given, so the terminal UI is never overwritten.
func newLogger(options Options, stderr io.Writer) (*log.Logger, func() error, error) {
	levelName := options.LogLevel
	if levelName == "" {
		levelName = DefaultLogLevel
	}

	level, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", options.LogLevel, err)
	}

	if options.Debug {
		level = log.DebugLevel
	}

	out := stderr
	closer := func() error { return nil }

	switch {
	case options.LogFile != "":
		f, err := os.OpenFile(options.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		out = f
		closer = f.Close
	case options.Output == OutputTUI:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          "disk-usage",
		Level:           level,
		ReportTimestamp: options.LogFile != "",
	})

	return logger, closer, nil
}
