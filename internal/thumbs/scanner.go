package thumbs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
	"github.com/thumbs-cli/thumbs/internal/globset"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/pngtext"
	"github.com/thumbs-cli/thumbs/internal/thumbkey"
	"github.com/thumbs-cli/thumbs/internal/walker"
)

// ScanStats summarizes a cleanup scan.
type ScanStats struct {
	Scanned int // .png files examined
	Skipped int // entries without a usable local origin
	Kept    int // origins filtered out or still present
}

// Scanner classifies cached thumbnails as orphaned or kept.
type Scanner struct {
	filter   globset.Filter
	hidden   bool
	log      *log.Logger
	exists   func(string) bool
	progress func(ScanStats)
}

// NewScanner creates a Scanner using filter. A nil logger discards
// diagnostics.
func NewScanner(filter globset.Filter, includeHidden bool, l *log.Logger) *Scanner {
	if l == nil {
		l = log.Discard()
	}
	return &Scanner{filter: filter, hidden: includeHidden, log: l, exists: exists}
}

// OnProgress registers fn to be called after each examined file.
func (s *Scanner) OnProgress(fn func(ScanStats)) {
	s.progress = fn
}

// Scan visits every orphan in locations. A location that does not exist is
// skipped; one that exists but cannot be listed aborts the scan. Per-file
// problems are logged and counted.
func (s *Scanner) Scan(locations []cachedir.Location, v Visitor) (ScanStats, error) {
	var stats ScanStats
	for _, loc := range locations {
		entries, err := os.ReadDir(loc.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				s.log.Debug("cache location does not exist", "path", loc.Path)
				continue
			}
			return stats, fmt.Errorf("read cache location %s: %w", loc.Path, err)
		}

		for _, e := range entries {
			if e.IsDir() || (!s.hidden && walker.IsHidden(e.Name())) || filepath.Ext(e.Name()) != thumbkey.Extension {
				continue
			}
			path := filepath.Join(loc.Path, e.Name())
			stats.Scanned++

			m, orphan, err := s.Classify(path)
			switch {
			case err != nil:
				stats.Skipped++
				s.log.Debug(err.Error(), "thumbnail", path)
			case m.Source == "":
				stats.Skipped++
			case !orphan:
				stats.Kept++
			default:
				m.Location = loc
				if err := v.Visit(m); err != nil {
					return stats, err
				}
			}
			if s.progress != nil {
				s.progress(stats)
			}
		}
	}
	return stats, nil
}

// Classify reads the origin of the thumbnail at path and reports whether it
// is an orphan. A non-local origin yields an empty Match, false and no error.
func (s *Scanner) Classify(path string) (Match, bool, error) {
	s.log.Trace("processing", "thumbnail", path)

	raw, err := pngtext.ReadURI(path)
	if err != nil {
		if errors.Is(err, pngtext.ErrNotFound) || errors.Is(err, pngtext.ErrNotPNG) {
			return Match{}, false, errors.New("failed to find origin path")
		}
		return Match{}, false, err
	}

	origin, err := thumbkey.ParseOrigin(raw)
	if err != nil {
		return Match{}, false, err
	}
	if !origin.IsLocal() {
		s.log.Trace("found a thumbnail origin URI with scheme "+origin.Scheme+", ignoring", "thumbnail", path)
		return Match{}, false, nil
	}

	m := Match{Source: origin.Path, URI: origin.URI, Thumbnail: path}
	switch {
	case s.filter.Exclude.Match(origin.Path):
		s.log.Trace("origin excluded", "origin", origin.Path)
		return m, false, nil
	case !s.filter.Include.Match(origin.Path):
		s.log.Trace("origin not included", "origin", origin.Path)
		return m, false, nil
	case s.exists(origin.Path):
		return m, false, nil
	}
	return m, true, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	if err == nil {
		return true
	}
	// unknown errors (e.g. permissions) count as present
	return !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR)
}
