// Package log provides context-aware leveled logging for thumbs.
//
// Diagnostics go to stderr through a [Logger]. Primary data (thumbnail paths,
// tables, JSON) goes to stdout through the output package instead.
package log

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// Logger writes leveled diagnostics. The zero level is [LevelOff].
type Logger struct {
	base  *logrus.Logger
	level Level
	file  *lumberjack.Logger
}

// New creates a logger writing to out at the given level.
func New(out io.Writer, level Level) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&cliFormatter{})
	l := &Logger{base: base}
	l.SetLevel(level)
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelOff)
}

// FileOptions configures an additional rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// AddFile tees all log output into a rotating file.
func (l *Logger) AddFile(opts FileOptions) {
	if opts.Path == "" {
		return
	}
	l.file = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
		LocalTime:  true,
	}
	l.base.SetOutput(io.MultiWriter(l.base.Out, l.file))
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.level = level
	if level == LevelOff {
		l.base.SetLevel(logrus.PanicLevel)
		return
	}
	l.base.SetLevel(level.logrus())
}

// Level returns the current level.
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return level != LevelOff && l.level >= level
}

// Error logs msg with optional key/value pairs.
func (l *Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }

// Warn logs msg with optional key/value pairs.
func (l *Logger) Warn(msg string, kv ...any) { l.log(LevelWarn, msg, kv) }

// Info logs msg with optional key/value pairs.
func (l *Logger) Info(msg string, kv ...any) { l.log(LevelInfo, msg, kv) }

// Debug logs msg with optional key/value pairs.
func (l *Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv) }

// Trace logs msg with optional key/value pairs.
func (l *Logger) Trace(msg string, kv ...any) { l.log(LevelTrace, msg, kv) }

// Printf writes formatted output regardless of level, unless logging is off.
func (l *Logger) Printf(format string, args ...any) {
	if l.level == LevelOff {
		return
	}
	fmt.Fprintf(l.base.Out, format, args...)
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.base.Out
}

func (l *Logger) log(level Level, msg string, kv []any) {
	if !l.Enabled(level) {
		return
	}
	entry := logrus.NewEntry(l.base)
	if len(kv) > 0 {
		entry = entry.WithFields(fields(kv))
	}
	entry.Log(level.logrus(), msg)
}

// fields turns alternating key/value arguments into logrus fields.
// A trailing key without a value is recorded under "!BADKEY".
func fields(kv []any) logrus.Fields {
	f := make(logrus.Fields, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		if i+1 >= len(kv) {
			f["!BADKEY"] = kv[i]
			break
		}
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a discarding logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Discard()
}

// cliFormatter renders "level: message key=value" lines without timestamps.
type cliFormatter struct{}

func (cliFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(levelName(e.Level))
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, k := range sortedKeys(e.Data) {
		fmt.Fprintf(&b, " %s=%v", k, quoteIfNeeded(e.Data[k]))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "warn"
	case logrus.PanicLevel, logrus.FatalLevel:
		return "error"
	default:
		return l.String()
	}
}

func quoteIfNeeded(v any) any {
	s, ok := v.(string)
	if !ok {
		if err, isErr := v.(error); isErr {
			s = err.Error()
		} else {
			return v
		}
	}
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func sortedKeys(m logrus.Fields) []string {
	return slices.Sorted(maps.Keys(m))
}
