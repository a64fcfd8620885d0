package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger on top of a logrus entry. Derived loggers share
// the underlying logrus.Logger, so level and output changes apply to all of them.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter builds a logger writing to stderr.
//
// level is one of "debug", "info", "warn" or "error" (anything else means info);
// format is "json" or "text".
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterWithWriter(os.Stderr, level, format)
}

// NewLogrusAdapterWithWriter is NewLogrusAdapter writing to w.
func NewLogrusAdapterWithWriter(w io.Writer, level, format string) Logger {
	base := logrus.New()
	base.SetOutput(w)

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		base.Warnf("Invalid log level '%s', using 'info'", level)
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)

	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &LogrusAdapter{entry: logrus.NewEntry(base)}
}

func (l *LogrusAdapter) log(level logrus.Level, msg string, fields []Field) {
	if len(fields) == 0 {
		l.entry.Log(level, msg)
		return
	}
	l.entry.WithFields(toLogrus(fields)).Log(level, msg)
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.log(logrus.DebugLevel, msg, fields) }

func (l *LogrusAdapter) Info(msg string, fields ...Field) { l.log(logrus.InfoLevel, msg, fields) }

func (l *LogrusAdapter) Warn(msg string, fields ...Field) { l.log(logrus.WarnLevel, msg, fields) }

func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.log(logrus.ErrorLevel, msg, fields) }

// Fatal logs msg and exits with status 1.
func (l *LogrusAdapter) Fatal(msg string, fields ...Field) {
	l.entry.WithFields(toLogrus(fields)).Fatal(msg)
}

// Fatalf is Fatal with a format string.
func (l *LogrusAdapter) Fatalf(msg string, args ...interface{}) {
	l.entry.Fatalf(msg, args...)
}

func (l *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: l.entry.WithError(err)}
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{entry: l.entry.WithField(key, value)}
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return &LogrusAdapter{entry: l.entry.WithFields(toLogrus(fields))}
}

func toLogrus(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
