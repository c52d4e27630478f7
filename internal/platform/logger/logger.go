// Package logger provides leveled logging for the hosts and the engine.
// The pet core itself never logs.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger provides structured logging with context.
type Logger struct {
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

const flags = log.Ldate | log.Ltime | log.Lshortfile

// NewLogger creates a logger writing info and warnings to stdout and errors to stderr.
func NewLogger() *Logger {
	return &Logger{
		infoLogger:  log.New(os.Stdout, "[SDOP-INFO] ", flags),
		warnLogger:  log.New(os.Stdout, "[SDOP-WARN] ", flags),
		errorLogger: log.New(os.Stderr, "[SDOP-ERROR] ", flags),
	}
}

// NewLoggerWithWriter sends every level to w. The terminal host uses it to
// keep log lines off the screen.
func NewLoggerWithWriter(w io.Writer) *Logger {
	return &Logger{
		infoLogger:  log.New(w, "[SDOP-INFO] ", flags),
		warnLogger:  log.New(w, "[SDOP-WARN] ", flags),
		errorLogger: log.New(w, "[SDOP-ERROR] ", flags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewLoggerWithWriter(io.Discard)
}

// Info logs informational messages.
func (l *Logger) Info(msg string) {
	l.infoLogger.Output(2, msg)
}

// Warn logs warning messages.
func (l *Logger) Warn(msg string) {
	l.warnLogger.Output(2, msg)
}

// Error logs error messages.
func (l *Logger) Error(msg string) {
	l.errorLogger.Output(2, msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.infoLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.warnLogger.Output(2, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.errorLogger.Output(2, fmt.Sprintf(format, args...))
}

// Event logs a game event for later inspection.
func (l *Logger) Event(eventType string, actorID string, details string) {
	l.infoLogger.Output(2, fmt.Sprintf("[EVENT:%s] Actor:%s | %s", eventType, actorID, details))
}
