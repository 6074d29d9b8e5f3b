package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level Level
		emit  func(l *Logger)
		want  bool
	}{
		{"warn at warn", LevelWarn, func(l *Logger) { l.Warn("x") }, true},
		{"error at warn", LevelWarn, func(l *Logger) { l.Error("x") }, true},
		{"info at warn", LevelWarn, func(l *Logger) { l.Info("x") }, false},
		{"debug at debug", LevelDebug, func(l *Logger) { l.Debug("x") }, true},
		{"trace at debug", LevelDebug, func(l *Logger) { l.Trace("x") }, false},
		{"trace at trace", LevelTrace, func(l *Logger) { l.Trace("x") }, true},
		{"error when off", LevelOff, func(l *Logger) { l.Error("x") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.emit(New(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.Debug("found thumbnail", "path", "/a b/c.png", "count", 2, "err", errors.New("boom"))

	got := buf.String()
	want := `debug: found thumbnail count=2 err=boom path="/a b/c.png"` + "\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFormat_OddKeyValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, LevelWarn).Warn("odd", "dangling")
	if !strings.Contains(buf.String(), "!BADKEY=dangling") {
		t.Errorf("output = %q, want !BADKEY entry", buf.String())
	}
}

func TestPrintf(t *testing.T) {
	t.Parallel()

	t.Run("writes formatted output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, LevelError)
		l.Printf("hello %s %d", "world", 42)
		if got := buf.String(); got != "hello world 42" {
			t.Errorf("Printf output = %q, want %q", got, "hello world 42")
		}
	})

	t.Run("suppressed when off", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := New(&buf, LevelOff)
		l.Printf("should not appear")
		if buf.Len() != 0 {
			t.Errorf("Printf wrote %q when off", buf.String())
		}
	})
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	l := New(&bytes.Buffer{}, LevelInfo)
	if !l.Enabled(LevelWarn) {
		t.Error("Enabled(warn) = false at info")
	}
	if l.Enabled(LevelDebug) {
		t.Error("Enabled(debug) = true at info")
	}
	if l.Enabled(LevelOff) {
		t.Error("Enabled(off) = true")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"warn", LevelWarn, false},
		{"WARNING", LevelWarn, false},
		{" debug ", LevelDebug, false},
		{"off", LevelOff, false},
		{"trace", LevelTrace, false},
		{"loud", LevelOff, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithVerbosity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		base           Level
		verbose, quiet int
		want           Level
	}{
		{"default", LevelWarn, 0, 0, LevelWarn},
		{"one -v", LevelWarn, 1, 0, LevelInfo},
		{"two -v", LevelWarn, 2, 0, LevelDebug},
		{"clamped high", LevelWarn, 9, 0, LevelTrace},
		{"one -q", LevelWarn, 0, 1, LevelError},
		{"clamped low", LevelWarn, 0, 5, LevelOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WithVerbosity(tt.base, tt.verbose, tt.quiet); got != tt.want {
				t.Errorf("WithVerbosity(%v, %d, %d) = %v, want %v", tt.base, tt.verbose, tt.quiet, got, tt.want)
			}
		})
	}
}

func TestAddFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "thumbs.log")
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.AddFile(FileOptions{Path: path, MaxSizeMB: 1})
	l.Info("deleted", "n", 3)
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "info: deleted n=3") {
		t.Errorf("log file = %q, want info line", data)
	}
	if !strings.Contains(buf.String(), "info: deleted n=3") {
		t.Errorf("stderr = %q, want info line", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		l := New(&bytes.Buffer{}, LevelInfo)
		if got := FromContext(WithLogger(context.Background(), l)); got != l {
			t.Error("FromContext did not return the attached logger")
		}
	})

	t.Run("discard when missing", func(t *testing.T) {
		t.Parallel()
		got := FromContext(context.Background())
		if got == nil {
			t.Fatal("FromContext returned nil")
		}
		if got.Enabled(LevelError) {
			t.Error("fallback logger should be off")
		}
	})
}
