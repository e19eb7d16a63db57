package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LoggerOption configures a standalone logger.
type LoggerOption func(*logrus.Logger)

// WithOutput sets the logger output.
func WithOutput(w io.Writer) LoggerOption {
	return func(l *logrus.Logger) {
		l.SetOutput(w)
	}
}

// WithLevel sets the log level.
func WithLevel(level logrus.Level) LoggerOption {
	return func(l *logrus.Logger) {
		l.SetLevel(level)
	}
}

// WithFormatter sets the log formatter.
func WithFormatter(formatter logrus.Formatter) LoggerOption {
	return func(l *logrus.Logger) {
		l.SetFormatter(formatter)
	}
}

// NewLogger builds a standalone logrus logger for command-line tools that
// should not touch the per-component file sinks, such as the schema
// generator. Output defaults to stderr so whatever the tool prints on
// stdout stays clean.
func NewLogger(opts ...LoggerOption) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	for _, opt := range opts {
		opt(logger)
	}

	return logger
}
