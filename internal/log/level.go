package log

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a log verbosity. Higher values are more verbose.
type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// DefaultLevel is used when neither the environment nor the config sets one.
const DefaultLevel = LevelWarn

var levelNames = map[string]Level{
	"off":     LevelOff,
	"error":   LevelError,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"info":    LevelInfo,
	"debug":   LevelDebug,
	"trace":   LevelTrace,
}

// ParseLevel parses a level name such as "warn" or "debug".
func ParseLevel(s string) (Level, error) {
	if l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	names := slices.Sorted(maps.Keys(levelNames))
	return LevelOff, fmt.Errorf("unknown log level %q (valid: %s)", s, strings.Join(names, ", "))
}

// WithVerbosity shifts base by the number of -v and -q flags,
// clamped to the valid range.
func WithVerbosity(base Level, verbose, quiet int) Level {
	l := int(base) + verbose - quiet
	return Level(max(int(LevelOff), min(l, int(LevelTrace))))
}

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelError:
		return logrus.ErrorLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelTrace:
		return logrus.TraceLevel
	}
	return logrus.PanicLevel
}
