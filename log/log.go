//
// Tencent is pleased to support the open source community by making trpc-agent-bench available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-bench is licensed under the Apache License Version 2.0.
//
//

// Package log provides logging utilities.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalColorLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// Default borrows logging utilities from zap.
// You may replace it with whatever logger you like as long as it implements the Logger interface.
var Default Logger = zap.New(
	zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zapLevel,
	),
	zap.AddCaller(),
	zap.AddCallerSkip(1),
).Sugar()

// SetLevel sets the log level to the specified level.
// Valid levels are: "debug", "info", "warn", "error", "fatal"
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelInfo:
		zapLevel.SetLevel(zapcore.InfoLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	case LevelFatal:
		zapLevel.SetLevel(zapcore.FatalLevel)
	default:
		Default.Warnf("unknown log level %q, keeping current level", level)
	}
}

// Logger is the underlying logging interface.
type Logger interface {
	// Debug logs at the debug level.
	Debug(args ...any)
	// Debugf logs at the debug level with formatting.
	Debugf(format string, args ...any)
	// Info logs at the info level.
	Info(args ...any)
	// Infof logs at the info level with formatting.
	Infof(format string, args ...any)
	// Warn logs at the warn level.
	Warn(args ...any)
	// Warnf logs at the warn level with formatting.
	Warnf(format string, args ...any)
	// Error logs at the error level.
	Error(args ...any)
	// Errorf logs at the error level with formatting.
	Errorf(format string, args ...any)
	// Fatal logs at the fatal level.
	Fatal(args ...any)
	// Fatalf logs at the fatal level with formatting.
	Fatalf(format string, args ...any)
}

// Debug logs at the debug level using the default logger.
func Debug(args ...any) { Default.Debug(args...) }

// Debugf logs at the debug level with formatting using the default logger.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Info logs at the info level using the default logger.
func Info(args ...any) { Default.Info(args...) }

// Infof logs at the info level with formatting using the default logger.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warn logs at the warn level using the default logger.
func Warn(args ...any) { Default.Warn(args...) }

// Warnf logs at the warn level with formatting using the default logger.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Error logs at the error level using the default logger.
func Error(args ...any) { Default.Error(args...) }

// Errorf logs at the error level with formatting using the default logger.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }

// Fatal logs at the fatal level using the default logger.
func Fatal(args ...any) { Default.Fatal(args...) }

// Fatalf logs at the fatal level with formatting using the default logger.
func Fatalf(format string, args ...any) { Default.Fatalf(format, args...) }
