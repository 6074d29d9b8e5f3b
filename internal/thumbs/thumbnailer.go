package thumbs

import (
	"fmt"
	"time"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
	"github.com/thumbs-cli/thumbs/internal/globset"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/walker"
)

// Options are fixed for the lifetime of a Thumbnailer.
type Options struct {
	Recursive bool
	Hidden    bool
	// LookupFailures adds fail/<tool> locations to Locate and Delete.
	LookupFailures bool
	// CleanupFailures adds fail/<tool> locations to Cleanup.
	CleanupFailures bool
}

// Thumbnailer runs the locate, delete and cleanup operations against one
// thumbnail cache. Cache locations are discovered once, in New.
type Thumbnailer struct {
	opts     Options
	root     string
	lookup   []cachedir.Location
	cleanup  []cachedir.Location
	log      *log.Logger
	progress func(ScanStats)
}

// New discovers the locations under the thumbnails root. A nil logger
// discards diagnostics.
func New(root string, opts Options, l *log.Logger) *Thumbnailer {
	if l == nil {
		l = log.Discard()
	}
	all := cachedir.NewLocator(root, l).Locate(opts.LookupFailures || opts.CleanupFailures)

	t := &Thumbnailer{opts: opts, root: root, log: l}
	t.lookup, t.cleanup = all, all
	if !opts.LookupFailures {
		t.lookup = cachedir.WithoutFailures(all)
	}
	if !opts.CleanupFailures {
		t.cleanup = cachedir.WithoutFailures(all)
	}
	return t
}

// Root returns the thumbnails directory.
func (t *Thumbnailer) Root() string {
	return t.root
}

// Locations returns the locations searched by Locate and Delete.
func (t *Thumbnailer) Locations() []cachedir.Location {
	return t.lookup
}

// CleanupLocations returns the locations scanned by Cleanup.
func (t *Thumbnailer) CleanupLocations() []cachedir.Location {
	return t.cleanup
}

// OnScanProgress registers fn to receive updates during Cleanup.
func (t *Thumbnailer) OnScanProgress(fn func(ScanStats)) {
	t.progress = fn
}

// Locate returns the thumbnails of path. A path that does not exist is an
// error; a path without thumbnails is not.
func (t *Thumbnailer) Locate(path string) ([]Match, error) {
	c := &collector{}
	if err := NewResolver(t.lookup, t.log).each(path, c.Visit); err != nil {
		return nil, fmt.Errorf("locate %s: %w", path, err)
	}
	return c.matches, nil
}

// DeleteResult is the outcome of Delete.
type DeleteResult struct {
	Matches []Match
	walker.Stats
}

// Delete finds the thumbnails of every file reachable from paths. With
// dryRun it only reports them; otherwise each is removed as it is found.
// A zero accessedBefore disables the access time filter.
func (t *Thumbnailer) Delete(paths []string, dryRun bool, accessedBefore time.Time) (DeleteResult, error) {
	w := walker.New(walker.Options{
		Recursive:      t.opts.Recursive,
		IncludeHidden:  t.opts.Hidden,
		AccessedBefore: accessedBefore,
	}, t.log)
	rm := newRemover(dryRun, "thumbnail", t.log)
	res := NewResolver(t.lookup, t.log)

	skipped := 0
	result := func() DeleteResult {
		r := DeleteResult{Matches: rm.matches, Stats: w.Stats()}
		r.SkippedEntries += skipped
		return r
	}

	for p, err := range w.Walk(paths) {
		if err != nil {
			return result(), fmt.Errorf("delete %s: %w", p, err)
		}
		if err := res.each(p, rm.Visit); err != nil {
			if IsDeleteError(err) {
				return result(), err
			}
			// the file went away or cannot become a URI
			t.log.Debug("skipping", "path", p, "error", err)
			skipped++
		}
	}
	return result(), nil
}

// CleanupResult is the outcome of Cleanup.
type CleanupResult struct {
	Orphans []Match
	ScanStats
}

// Cleanup scans the cache for thumbnails whose local origin no longer
// exists and passes filter. With force each orphan is removed during the
// scan; otherwise nothing is deleted.
func (t *Thumbnailer) Cleanup(force bool, filter globset.Filter) (CleanupResult, error) {
	s := NewScanner(filter, t.opts.Hidden, t.log)
	if t.progress != nil {
		s.OnProgress(t.progress)
	}
	rm := newRemover(!force, "orphaned thumbnail", t.log)

	stats, err := s.Scan(t.cleanup, rm)
	return CleanupResult{Orphans: rm.matches, ScanStats: stats}, err
}
