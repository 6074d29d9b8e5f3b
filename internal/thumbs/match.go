package thumbs

import (
	"errors"
	"fmt"
	"os"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
)

// Match pairs a cached thumbnail with the source file it belongs to. For
// Cleanup results, Source is the origin path decoded from the thumbnail's
// metadata and no longer exists.
type Match struct {
	Source    string            `json:"source"`
	URI       string            `json:"uri"`
	Thumbnail string            `json:"thumbnail"`
	Location  cachedir.Location `json:"location"`
}

// DeleteError reports a failed removal and how many removals preceded it.
type DeleteError struct {
	Path    string
	Deleted int
	Err     error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("failed to delete %s (after deleting %d thumbnail(s)): %v", e.Path, e.Deleted, e.Err)
}

func (e *DeleteError) Unwrap() error {
	return e.Err
}

// Remove deletes every thumbnail in matches, in order. It stops at the first
// failure and returns a *DeleteError; files removed before that stay removed.
func Remove(matches []Match) error {
	for i, m := range matches {
		if err := os.Remove(m.Thumbnail); err != nil {
			return &DeleteError{Path: m.Thumbnail, Deleted: i, Err: err}
		}
	}
	return nil
}

// IsDeleteError reports whether err came from a failed removal.
func IsDeleteError(err error) bool {
	var de *DeleteError
	return errors.As(err, &de)
}
