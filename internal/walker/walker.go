// Package walker expands input paths into the files whose thumbnails should
// be looked up.
//
// Named files are yielded as is. Named directories are either skipped and
// counted (non-recursive) or traversed depth first (recursive). Entries whose
// name starts with "." are pruned unless hidden files are included. Errors on
// individual entries are logged and counted, never returned; only a named input
// that cannot be read at all ends the walk with an error.
package walker

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/thumbs-cli/thumbs/internal/log"
)

// Options controls a walk.
type Options struct {
	Recursive     bool
	IncludeHidden bool
	// AccessedBefore, when non-zero, keeps only files whose last access
	// time is strictly before it.
	AccessedBefore time.Time
}

// Stats counts what a walk left out.
type Stats struct {
	SkippedDirs    int // directories ignored because recursion is off
	SkippedEntries int // unreadable entries and files without access times
	Filtered       int // files accessed at or after AccessedBefore
}

// Walker expands paths. A Walker is single use.
type Walker struct {
	opts  Options
	log   *log.Logger
	stats Stats
	atime func(string) (time.Time, error)
}

// New creates a Walker. A nil logger discards diagnostics.
func New(opts Options, l *log.Logger) *Walker {
	if l == nil {
		l = log.Discard()
	}
	return &Walker{opts: opts, log: l, atime: accessTime}
}

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() Stats {
	return w.stats
}

// Walk lazily yields files below paths. A non-nil error means a named input
// could not be read; the sequence stops after yielding it.
func (w *Walker) Walk(paths []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				yield(p, err)
				return
			}

			if !info.IsDir() {
				if w.keep(p) && !yield(p, nil) {
					return
				}
				continue
			}

			if !w.opts.Recursive {
				w.log.Debug("ignoring directory", "path", p)
				w.stats.SkippedDirs++
				continue
			}

			root, err := filepath.EvalSymlinks(p)
			if err != nil {
				yield(p, err)
				return
			}
			if !w.tree(root, yield) {
				return
			}
		}
	}
}

// tree walks root and reports whether the consumer wants more.
func (w *Walker) tree(root string, yield func(string, error) bool) bool {
	more := true
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Debug("skipping unreadable entry", "path", p, "error", err)
			w.stats.SkippedEntries++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if p != root && !w.opts.IncludeHidden && IsHidden(d.Name()) {
			w.log.Trace("skipping hidden entry", "path", p)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !w.keep(p) {
			return nil
		}
		if !yield(p, nil) {
			more = false
			return filepath.SkipAll
		}
		return nil
	})
	return more
}

// keep applies the access time filter.
func (w *Walker) keep(p string) bool {
	if w.opts.AccessedBefore.IsZero() {
		return true
	}
	at, err := w.atime(p)
	if err != nil {
		w.log.Debug("cannot read access time, skipping", "path", p, "error", err)
		w.stats.SkippedEntries++
		return false
	}
	if !at.Before(w.opts.AccessedBefore) {
		w.log.Trace("accessed too recently", "path", p, "accessed", at.Format(time.RFC3339))
		w.stats.Filtered++
		return false
	}
	return true
}

func accessTime(p string) (time.Time, error) {
	ts, err := times.Stat(p)
	if err != nil {
		return time.Time{}, err
	}
	return ts.AccessTime(), nil
}

// IsHidden reports whether a file name marks a hidden entry.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
