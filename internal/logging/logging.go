// Package logging provides the logger interface abstraction used by the
// command line tools. It uses logrus under the hood.
package logging

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
}

type logger struct {
	*logrus.Logger
}

func New(w io.Writer, level logrus.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	return &logger{Logger: l}
}

// NewVerbosity builds a logger from a verbosity name or number:
// 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace.
func NewVerbosity(w io.Writer, verbosity string) (Logger, error) {
	switch verbosity {
	case "0", "silent":
		return New(io.Discard, logrus.PanicLevel), nil
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
		return nil, errors.Errorf("unknown verbosity level %q", verbosity)
	}
}
