// Package cachedir discovers the freedesktop.org thumbnail cache locations.
//
// The cache lives at $XDG_CACHE_HOME/thumbnails (usually ~/.cache/thumbnails):
//
//	thumbnails/
//	  normal/<md5>.png      128x128
//	  large/<md5>.png       256x256
//	  fail/<tool>/<md5>.png failure markers written by each thumbnailer
//
// Each directory is a flat namespace of <md5>.png files and is returned as
// one [Location].
package cachedir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thumbs-cli/thumbs/internal/log"
)

// ErrNoCacheDir is returned when no cache directory can be determined.
var ErrNoCacheDir = errors.New("could not find cache directory")

// Kind classifies a location.
type Kind string

const (
	KindNormal  Kind = "normal"
	KindLarge   Kind = "large"
	KindFailure Kind = "fail"
)

// Location is one directory of cached thumbnails.
type Location struct {
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	Tool string `json:"tool,omitempty"` // thumbnailer name, for failure locations
}

// Name returns a short label such as "normal" or "fail/gnome-thumbnail-factory".
func (l Location) Name() string {
	if l.Kind == KindFailure {
		return string(KindFailure) + "/" + l.Tool
	}
	return string(l.Kind)
}

// IsFailure reports whether l holds failure markers.
func (l Location) IsFailure() bool {
	return l.Kind == KindFailure
}

// Root returns the thumbnails directory. A non-empty override replaces the
// platform cache directory; "thumbnails" is appended in both cases.
func Root(override string) (string, error) {
	base := override
	if base == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoCacheDir, err)
		}
		base = dir
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoCacheDir, err)
	}
	return filepath.Join(abs, "thumbnails"), nil
}

// Locator lists the locations below a thumbnails root.
type Locator struct {
	root string
	log  *log.Logger
}

// NewLocator creates a Locator for root. A nil logger discards diagnostics.
func NewLocator(root string, l *log.Logger) *Locator {
	if l == nil {
		l = log.Discard()
	}
	return &Locator{root: root, log: l}
}

// Root returns the thumbnails directory this locator searches.
func (l *Locator) Root() string {
	return l.root
}

// Locate returns normal and large, whether or not they exist, followed by
// every subdirectory of fail/ when includeFailures is set. Problems reading
// fail/ are logged and yield no failure locations.
func (l *Locator) Locate(includeFailures bool) []Location {
	locs := []Location{
		{Path: filepath.Join(l.root, string(KindNormal)), Kind: KindNormal},
		{Path: filepath.Join(l.root, string(KindLarge)), Kind: KindLarge},
	}

	if includeFailures {
		locs = append(locs, l.failures()...)
	}

	if l.log.Enabled(log.LevelDebug) {
		l.log.Debug("will look for thumbnails in the following directories")
		for _, loc := range locs {
			l.log.Debug("  " + loc.Path)
		}
	}
	return locs
}

func (l *Locator) failures() []Location {
	dir := filepath.Join(l.root, string(KindFailure))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.log.Debug("no failure thumbnails directory", "path", dir)
		} else {
			l.log.Warn("cannot list failure thumbnails", "path", dir, "error", err)
		}
		return nil
	}

	var locs []Location
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		locs = append(locs, Location{
			Path: filepath.Join(dir, e.Name()),
			Kind: KindFailure,
			Tool: e.Name(),
		})
	}
	return locs
}

// WithoutFailures returns locs minus failure locations.
func WithoutFailures(locs []Location) []Location {
	out := make([]Location, 0, len(locs))
	for _, loc := range locs {
		if !loc.IsFailure() {
			out = append(out, loc)
		}
	}
	return out
}
