package core

import "fmt"

// Logger interface for renderer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// SilentLogger implements Logger by discarding all output
type SilentLogger struct{}

func (sl *SilentLogger) Printf(format string, args ...interface{}) {}
