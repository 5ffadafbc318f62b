// Package logging builds the leveled logger the CLI hands to the calculation engine.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the verbosity level of logging
type LogLevel int

// Available log levels
const (
	LevelNone  LogLevel = iota // No logging
	LevelError                 // Only errors
	LevelWarn                  // Warnings and errors
	LevelInfo                  // Informational messages, warnings, and errors
	LevelDebug                 // Everything
)

// Config holds configuration for the logger
type Config struct {
	Level  LogLevel
	Output io.Writer // defaults to stderr
}

// New returns a sugared zap logger. Its Debugf/Infof/Warnf/Errorf methods satisfy calculation.Logger.
func New(cfg Config) *zap.SugaredLogger {
	if cfg.Level == LevelNone {
		return zap.NewNop().Sugar()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), cfg.Level.zapLevel())
	return zap.New(core).Sugar()
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelError:
		return zapcore.ErrorLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// String returns a string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LevelNone:
		return "NONE"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return fmt.Sprintf("LogLevel(%d)", l)
	}
}

// LevelFromString converts a level name, in any case, to a LogLevel. Unknown names mean WARN.
func LevelFromString(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "NONE", "OFF":
		return LevelNone
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "INFO":
		return LevelInfo
	case "DEBUG":
		return LevelDebug
	default:
		return LevelWarn
	}
}
