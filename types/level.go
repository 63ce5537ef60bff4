package types

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the ordered severity of a log record, a logger threshold or a
// handler threshold. The zero value LevelNotSet marks an absent `level`
// key in the configuration and is never a valid parse result.
type Level int8

const (
	// LevelNotSet marks a logger or handler without an explicit level
	LevelNotSet Level = iota
	// LevelDebug is the lowest severity
	LevelDebug
	// LevelInfo is the severity of routine messages
	LevelInfo
	// LevelWarning is the severity of recoverable anomalies
	LevelWarning
	// LevelError is the severity of failed operations
	LevelError
	// LevelCritical is the highest severity
	LevelCritical
)

// levelNames maps each settable level to its configuration spelling.
var levelNames = map[Level]string{
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

// ParseLevel converts a configuration level name into a Level. Only the
// five names DEBUG, INFO, WARNING, ERROR and CRITICAL are recognized,
// case-insensitively. NOTSET is not parseable on purpose: an absent key
// is the only way to leave a level unset.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for lvl, n := range levelNames {
		if n == name {
			return lvl, nil
		}
	}

	return LevelNotSet, fmt.Errorf("unrecognized level name %q", s)
}

// String returns the configuration spelling of the level.
func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}

	return "NOTSET"
}

// IsSet tells whether the level carries an explicit threshold.
func (l Level) IsSet() bool {
	return l != LevelNotSet
}

// ZapLevel maps the level onto the zapcore numeric scale. CRITICAL maps
// to DPanicLevel, which is used purely as a rank above ErrorLevel; the
// pipeline never enables zap's development panics.
func (l Level) ZapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarning:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	case LevelCritical:
		return zapcore.DPanicLevel
	default:
		return zapcore.DebugLevel
	}
}

// Enabled reports whether a record at the given zap level passes this
// threshold. An unset level filters nothing.
func (l Level) Enabled(zl zapcore.Level) bool {
	if !l.IsSet() {
		return true
	}

	return zl >= l.ZapLevel()
}

// LevelName renders the zap level of an emitted record with the
// configuration spelling, so formatted lines read WARNING and CRITICAL
// rather than zap's warn and dpanic.
func LevelName(zl zapcore.Level) string {
	switch {
	case zl <= zapcore.DebugLevel:
		return "DEBUG"
	case zl == zapcore.InfoLevel:
		return "INFO"
	case zl == zapcore.WarnLevel:
		return "WARNING"
	case zl == zapcore.ErrorLevel:
		return "ERROR"
	default:
		return "CRITICAL"
	}
}
