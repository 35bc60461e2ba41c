// Package logging configures the structured logger shared by the CLI and the
// session components.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Options struct {
	Level  string
	Format string
	Output io.Writer
}

func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	logger.SetOutput(output)

	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(parsed)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}

	return logger, nil
}

// Discard returns an entry that drops everything. Components fall back to it
// when no logger is wired.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// Component tags entry with the component name, tolerating a nil entry.
func Component(entry *logrus.Entry, name string) *logrus.Entry {
	if entry == nil {
		entry = Discard()
	}
	return entry.WithField("component", name)
}
