package log

import (
	"io"
	"log"
	"strings"
)

// Level selects which messages a Logger emits. Lower levels are noisier.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a LOG_LEVEL value to a Level. Unrecognized values fall
// back to Info so a typo never silences errors.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO", "":
		return LevelInfo
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger shared by all components. Call sites prefix
// their messages with a bracketed tag ("[MODEL] ...") to keep interleaved
// output traceable.
type Logger struct {
	out   *log.Logger
	level Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		out:   log.New(out, "", log.Ltime),
		level: level,
	}
}

func (l *Logger) logf(min Level, label, format string, v ...interface{}) {
	if l.level > min {
		return
	}
	l.out.Printf(label+": "+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logf(LevelDebug, "DEBUG", format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.logf(LevelInfo, "INFO", format, v...)
}

// Warnf logs at Info visibility; warnings are informational, not failures.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.logf(LevelInfo, "WARN", format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logf(LevelError, "ERROR", format, v...)
}

func (l *Logger) SetLevel(level Level) { l.level = level }

func (l *Logger) Level() Level { return l.level }
