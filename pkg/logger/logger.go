package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New builds a logrus logger writing to stderr at the given level. Messages
// and string fields are passed through the sanitizer before formatting.
func New(level, format string) (*log.Logger, error) {
	return NewWithOutput(os.Stderr, level, format)
}

func NewWithOutput(out io.Writer, level, format string) (*log.Logger, error) {
	l, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(l)

	switch format {
	case FormatJSON, "":
		logger.SetFormatter(&log.JSONFormatter{})
	case FormatText:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	logger.AddHook(&redactHook{})
	return logger, nil
}

type redactHook struct{}

func (h *redactHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *redactHook) Fire(entry *log.Entry) error {
	entry.Message = SanitizeLogMessage(entry.Message)
	entry.Data = log.Fields(SanitizeMap(entry.Data))
	return nil
}
