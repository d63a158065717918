// Package logger provides leveled logging for the mdsim tools.
// It wraps the standard log package; messages go to stderr so they never
// mix with the results the commands print.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents a logging level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

var defaultLogger = &Logger{level: InfoLevel, logger: log.New(os.Stderr, "", log.LstdFlags)}

// ParseLevel returns the Level named by s. Unknown names give InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// InitWriter sets up the default logger to write to w with the given level
// and format ("text" adds the file and line of the call).
func InitWriter(w io.Writer, level string, format string) {
	flags := log.LstdFlags
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}
	defaultLogger = &Logger{
		level:  ParseLevel(level),
		logger: log.New(w, "", flags),
	}
}

func output(l Level, tag, format string, args ...interface{}) {
	if defaultLogger.level <= l {
		_ = defaultLogger.logger.Output(3, fmt.Sprintf(tag+format, args...))
	}
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) { output(DebugLevel, "[DEBUG] ", format, args...) }

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) { output(InfoLevel, "[INFO] ", format, args...) }

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) { output(WarnLevel, "[WARN] ", format, args...) }

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) { output(ErrorLevel, "[ERROR] ", format, args...) }
