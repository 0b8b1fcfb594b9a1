package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = "info"

var (
	baseLoggerOnce sync.Once
	baseLogger     *logrus.Logger
)

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) Debug(args ...any) {
	l.entry.Debug(args...)
}

func (l *logrusLogger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logrusLogger) Info(args ...any) {
	l.entry.Info(args...)
}

func (l *logrusLogger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logrusLogger) Warn(args ...any) {
	l.entry.Warn(args...)
}

func (l *logrusLogger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logrusLogger) Error(args ...any) {
	l.entry.Error(args...)
}

func (l *logrusLogger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logrusLogger) WithField(key string, value any) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}

// Configure sets the level and destination of the process-wide logrus logger.
// An empty level keeps DefaultLevel; a nil writer keeps stderr.
func Configure(level string, out io.Writer) error {
	logger := base()

	level = strings.TrimSpace(level)
	if level == "" {
		level = DefaultLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)

	if out != nil {
		logger.SetOutput(out)
	}
	return nil
}

func NewLogger(ctx context.Context) Logger {
	factory := GetLoggerFactory()
	if factory != nil {
		return factory.CreateLogger(ctx)
	}

	return newLogrusLogger(ctx)
}

func newLogrusLogger(ctx context.Context) Logger {
	return &logrusLogger{entry: base().WithContext(ctx)}
}

func base() *logrus.Logger {
	baseLoggerOnce.Do(func() {
		baseLogger = logrus.New()
		baseLogger.SetOutput(os.Stderr)
		baseLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:          true,
			DisableLevelTruncation: true,
		})
	})
	return baseLogger
}
