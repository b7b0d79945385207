package logging

import (
	"github.com/sirupsen/logrus"

	"mindcave/pkg/config"
)

// Logger is the shared logger type; aliased so callers import one package.
type Logger = *logrus.Logger

// Fields carries structured log fields.
type Fields = logrus.Fields

// Level aliases the logrus level type.
type Level = logrus.Level

// Re-exported log levels.
const (
	DebugLevel = logrus.DebugLevel
	InfoLevel  = logrus.InfoLevel
	WarnLevel  = logrus.WarnLevel
	ErrorLevel = logrus.ErrorLevel
)

// NewLogger returns a JSON-formatted logger at the level set by LOG_LEVEL.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	return logger
}

// NewLoggerWithService returns a logger tagged with a service field.
func NewLoggerWithService(serviceName string) *logrus.Logger {
	logger := NewLogger()
	logger = logger.WithField("service", serviceName).Logger
	return logger
}
