// Package logging wraps zap.SugaredLogger with the environment-driven
// level selection and key-value call signature used throughout the
// command-line tooling.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around zap.SugaredLogger.
type Logger struct {
	zLogger *zap.SugaredLogger
}

// Config selects the running environment ("development" or
// "production"), an optional file to duplicate the log output to, and
// whether stacktraces should be attached to Error/Panic/Fatal records.
type Config struct {
	EnableStacktrace bool   `toml:"enable_stacktrace,omitempty"`
	Environment      string `toml:"env"`
	Path             string `toml:"path,omitempty"`
}

// New builds a Logger that writes DebugLevel and above in development,
// InfoLevel and above in production, to stderr and to Path if set.
func New(conf *Config) *Logger {
	zLevel := zap.NewAtomicLevel()
	switch {
	case strings.EqualFold("development", conf.Environment):
		zLevel.SetLevel(zap.DebugLevel)
	case strings.EqualFold("production", conf.Environment):
		zLevel.SetLevel(zap.InfoLevel)
	default:
		panic("Environment must be either development or production")
	}

	outputPaths := []string{"stderr"}
	if conf.Path != "" {
		outputPaths = append(outputPaths, conf.Path)
	}

	zConfig := &zap.Config{
		Level:             zLevel,
		Development:       false,
		Encoding:          "console",
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "path",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths: outputPaths,
	}

	logger, err := zConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{logger.Sugar()}
}

// Debug logs a message useful while debugging the commitment engines,
// with additional context addressed by key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Debug(msg)
	} else {
		l.zLogger.Debugw(msg, keysAndValues...)
	}
}

// Info logs a message that highlights ordinary progress.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Info(msg)
	} else {
		l.zLogger.Infow(msg, keysAndValues...)
	}
}

// Warn logs a message that indicates a potentially harmful situation.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Warn(msg)
	} else {
		l.zLogger.Warnw(msg, keysAndValues...)
	}
}

// Error logs an operation failure that does not abort the process.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Error(msg)
	} else {
		l.zLogger.Errorw(msg, keysAndValues...)
	}
}

// Fatal logs a message and then calls os.Exit.
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	if keysAndValues == nil {
		l.zLogger.Fatal(msg)
	} else {
		l.zLogger.Fatalw(msg, keysAndValues...)
	}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zLogger.Sync()
}
