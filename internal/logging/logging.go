// Package logging provides the logger interface used across the stopwatch
// and a logrus-backed implementation.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the leveled logger consumed by the stopwatch packages.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	WithField(key string, value any) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
}

type logger struct {
	*logrus.Logger
}

// New creates a text logger writing to w at the given level.
func New(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return &logger{Logger: l}
}

// Discard returns a logger that drops every entry.
func Discard() Logger {
	return New(io.Discard, logrus.PanicLevel)
}

// NewFromVerbosity creates a logger from a verbosity name or digit:
// 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace.
func NewFromVerbosity(w io.Writer, verbosity string) (Logger, error) {
	switch strings.ToLower(verbosity) {
	case "0", "silent":
		return Discard(), nil
	case "1", "error":
		return New(w, logrus.ErrorLevel), nil
	case "2", "warn":
		return New(w, logrus.WarnLevel), nil
	case "3", "info":
		return New(w, logrus.InfoLevel), nil
	case "4", "debug":
		return New(w, logrus.DebugLevel), nil
	case "5", "trace":
		return New(w, logrus.TraceLevel), nil
	default:
		return nil, fmt.Errorf("unknown verbosity level %q", verbosity)
	}
}
