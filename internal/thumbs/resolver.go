package thumbs

import (
	"os"
	"path/filepath"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/thumbkey"
)

// Resolver finds the thumbnails of source files.
type Resolver struct {
	locations []cachedir.Location
	log       *log.Logger
}

// NewResolver creates a Resolver over locations. A nil logger discards
// diagnostics.
func NewResolver(locations []cachedir.Location, l *log.Logger) *Resolver {
	if l == nil {
		l = log.Discard()
	}
	return &Resolver{locations: locations, log: l}
}

// Resolve returns one match per location holding a thumbnail for path, in
// location order. Finding nothing is not an error.
func (r *Resolver) Resolve(path string) ([]Match, error) {
	var matches []Match
	err := r.each(path, func(m Match) error {
		matches = append(matches, m)
		return nil
	})
	return matches, err
}

// each calls visit for every thumbnail of path and returns the first error.
func (r *Resolver) each(path string, visit func(Match) error) error {
	d, err := thumbkey.Derive(path)
	if err != nil {
		return err
	}
	r.log.Trace("derived uri", "uri", d.URI)
	r.log.Debug("processing "+path, "key", d.Key.String())

	seen := false
	for _, loc := range r.locations {
		thumb := filepath.Join(loc.Path, d.Key.Filename())
		info, err := os.Lstat(thumb)
		if err != nil || info.IsDir() {
			r.log.Debug("  not found  " + thumb)
			continue
		}
		r.log.Debug("  found      " + thumb)
		seen = true
		if err := visit(Match{Source: path, URI: d.URI, Thumbnail: thumb, Location: loc}); err != nil {
			return err
		}
	}

	if !seen {
		r.log.Debug("could not find a thumbnail for " + path)
	}
	return nil
}
