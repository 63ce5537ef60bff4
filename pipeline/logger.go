package pipeline

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named entry point for emitting records into the pipeline.
// Records pass the logger's own threshold first and each attached
// handler's threshold second, so a handler can be stricter than the
// logger feeding it.
type Logger struct {
	name string
	z    *zap.Logger
}

// Name returns the qualified logger name.
func (l *Logger) Name() string {
	return l.name
}

// Debug emits a record at DEBUG level.
func (l *Logger) Debug(args ...interface{}) {
	l.z.Log(zapcore.DebugLevel, fmt.Sprint(args...))
}

// Debugf emits a formatted record at DEBUG level.
func (l *Logger) Debugf(template string, args ...interface{}) {
	l.z.Log(zapcore.DebugLevel, fmt.Sprintf(template, args...))
}

// Info emits a record at INFO level.
func (l *Logger) Info(args ...interface{}) {
	l.z.Log(zapcore.InfoLevel, fmt.Sprint(args...))
}

// Infof emits a formatted record at INFO level.
func (l *Logger) Infof(template string, args ...interface{}) {
	l.z.Log(zapcore.InfoLevel, fmt.Sprintf(template, args...))
}

// Warning emits a record at WARNING level.
func (l *Logger) Warning(args ...interface{}) {
	l.z.Log(zapcore.WarnLevel, fmt.Sprint(args...))
}

// Warningf emits a formatted record at WARNING level.
func (l *Logger) Warningf(template string, args ...interface{}) {
	l.z.Log(zapcore.WarnLevel, fmt.Sprintf(template, args...))
}

// Error emits a record at ERROR level.
func (l *Logger) Error(args ...interface{}) {
	l.z.Log(zapcore.ErrorLevel, fmt.Sprint(args...))
}

// Errorf emits a formatted record at ERROR level.
func (l *Logger) Errorf(template string, args ...interface{}) {
	l.z.Log(zapcore.ErrorLevel, fmt.Sprintf(template, args...))
}

// Critical emits a record at CRITICAL level.
func (l *Logger) Critical(args ...interface{}) {
	l.z.Log(zapcore.DPanicLevel, fmt.Sprint(args...))
}

// Criticalf emits a formatted record at CRITICAL level.
func (l *Logger) Criticalf(template string, args ...interface{}) {
	l.z.Log(zapcore.DPanicLevel, fmt.Sprintf(template, args...))
}

// WithCallerSkip returns a copy of the logger that attributes records
// to a caller further up the stack. Facades wrapping Logger methods use
// it so %(filename)s still names the application source file.
func (l *Logger) WithCallerSkip(skip int) *Logger {
	return &Logger{
		name: l.name,
		z:    l.z.WithOptions(zap.AddCallerSkip(skip)),
	}
}
