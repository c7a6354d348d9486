package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is one named log channel. Printf on a disabled level is a no-op.
type Level struct {
	level logrus.Level
	log   *logrus.Logger
}

// Printf logs a formatted message on this channel.
func (l *Level) Printf(format string, args ...interface{}) {
	if l == nil || l.log == nil {
		return
	}
	l.log.Logf(l.level, format, args...)
}

// WithFields returns a logrus entry bound to this channel's logger.
func (l *Level) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.log.WithFields(fields)
}

// Enabled reports whether messages on this channel are written.
func (l *Level) Enabled() bool {
	return l.log.IsLevelEnabled(l.level)
}

var (
	Info    *Level
	Warn    *Level
	Debug   *Level
	Verbose *Level
	Error   *Level
	Always  *Level // always written, regardless of log level

	// Current log level for filtering
	currentLogLevel string
	logFile         *os.File
)

func init() {
	configure("info", os.Stderr, os.Stderr)
}

func Init() error {
	return InitWithLevel("info")
}

func InitWithLevel(logLevel string) error {
	return InitWithConfig(logLevel, "finengine.log")
}

// InitWithConfig routes every channel to logFilePath; Error is mirrored to
// stderr. An empty path logs to stderr only.
func InitWithConfig(logLevel, logFilePath string) error {
	if logFilePath == "" {
		configure(logLevel, os.Stderr, os.Stderr)
		return nil
	}

	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	configure(logLevel, f, io.MultiWriter(os.Stderr, f))
	return nil
}

// InitWithWriter sends all channels to w. Used by tests and tools.
func InitWithWriter(logLevel string, w io.Writer) {
	configure(logLevel, w, w)
}

// CurrentLogLevel returns the configured level name.
func CurrentLogLevel() string {
	return currentLogLevel
}

func configure(logLevel string, out, errOut io.Writer) {
	currentLogLevel = strings.ToLower(strings.TrimSpace(logLevel))
	level := parseLevel(currentLogLevel)

	base := newLogger(out, level)
	errs := newLogger(errOut, level)
	always := newLogger(out, logrus.TraceLevel)

	Info = &Level{level: logrus.InfoLevel, log: base}
	Warn = &Level{level: logrus.WarnLevel, log: base}
	Debug = &Level{level: logrus.DebugLevel, log: base}
	Verbose = &Level{level: logrus.TraceLevel, log: base}
	Error = &Level{level: logrus.ErrorLevel, log: errs}
	Always = &Level{level: logrus.InfoLevel, log: always}
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// parseLevel maps the level names used in config onto logrus levels.
// Unknown names fall back to info.
func parseLevel(name string) logrus.Level {
	levels := map[string]logrus.Level{
		"error":   logrus.ErrorLevel,
		"warn":    logrus.WarnLevel,
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"verbose": logrus.TraceLevel,
	}

	if level, exists := levels[name]; exists {
		return level
	}
	return logrus.InfoLevel
}
