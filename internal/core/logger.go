package core

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/door43-tools/tanotion/pkg/resync"
)

var (
	// Lazy-load and ensure a single logger
	loggerOnce      resync.Once
	loggerSingleton *Logger
)

type VerboseLevel int

const (
	VerboseOff VerboseLevel = iota
	VerboseInfo
	VerboseDebug
	VerboseTrace
)

func CurrentLogger() *Logger {
	loggerOnce.Do(func() {
		loggerSingleton = NewLogger()
	})
	return loggerSingleton
}

// Logger wraps logrus with the verbosity levels exposed by the CLI
// flags. Warnings and errors are always printed.
type Logger struct {
	log     *logrus.Logger
	logFile *os.File
}

func NewLogger() *Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return &Logger{log: log}
}

// SetVerboseLevel overrides the default verbose level
func (l *Logger) SetVerboseLevel(level VerboseLevel) *Logger {
	switch level {
	case VerboseOff:
		l.log.SetLevel(logrus.WarnLevel)
	case VerboseInfo:
		l.log.SetLevel(logrus.InfoLevel)
	case VerboseDebug:
		l.log.SetLevel(logrus.DebugLevel)
	case VerboseTrace:
		l.log.SetLevel(logrus.TraceLevel)
	}
	return l
}

// LogToFile duplicates the output to a log file in addition to stderr.
func (l *Logger) LogToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	l.logFile = file
	l.log.SetOutput(io.MultiWriter(os.Stderr, file))
	return nil
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	return l.logFile.Close()
}

func (l *Logger) Fatal(v ...any) {
	l.log.Fatalln(v...)
}
func (l *Logger) Fatalf(format string, v ...any) {
	l.log.Fatalf(format, v...)
}

func (l *Logger) Error(v ...any) {
	l.log.Errorln(v...)
}
func (l *Logger) Errorf(format string, v ...any) {
	l.log.Errorf(format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.log.Warnln(v...)
}
func (l *Logger) Warnf(format string, v ...any) {
	l.log.Warnf(format, v...)
}

func (l *Logger) Info(v ...any) {
	l.log.Infoln(v...)
}
func (l *Logger) Infof(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.log.Debugln(v...)
}
func (l *Logger) Debugf(format string, v ...any) {
	l.log.Debugf(format, v...)
}

func (l *Logger) Trace(v ...any) {
	l.log.Traceln(v...)
}
func (l *Logger) Tracef(format string, v ...any) {
	l.log.Tracef(format, v...)
}
