package logx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level is the minimum severity that gets written
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Fields is a set of structured key/value pairs
type Fields = logrus.Fields

var std = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLevel changes the global log level
func SetLevel(level Level) {
	switch level {
	case LevelDebug:
		std.SetLevel(logrus.DebugLevel)
	case LevelWarn:
		std.SetLevel(logrus.WarnLevel)
	case LevelError:
		std.SetLevel(logrus.ErrorLevel)
	default:
		std.SetLevel(logrus.InfoLevel)
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetJSON switches between JSON and text output
func SetJSON(enabled bool) {
	if enabled {
		std.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// WithFields returns an entry carrying structured context
func WithFields(fields Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func Debug(args ...any)                 { std.Debug(args...) }
func Debugf(format string, args ...any) { std.Debugf(format, args...) }
func Info(args ...any)                  { std.Info(args...) }
func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Warn(args ...any)                  { std.Warn(args...) }
func Warnf(format string, args ...any)  { std.Warnf(format, args...) }
func Error(args ...any)                 { std.Error(args...) }
func Errorf(format string, args ...any) { std.Errorf(format, args...) }
func Fatal(args ...any)                 { std.Fatal(args...) }
func Fatalf(format string, args ...any) { std.Fatalf(format, args...) }
