package thumbkey

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
)

// Extension is the file suffix of every cached thumbnail.
const Extension = ".png"

// ErrNotRepresentable is returned for paths that cannot be expressed as a
// local file:// URI.
var ErrNotRepresentable = errors.New("path cannot be represented as a file URI")

// Key is the MD5 digest of a canonical file URI.
type Key [md5.Size]byte

// FromURI hashes uri exactly as given.
func FromURI(uri string) Key {
	return md5.Sum([]byte(uri))
}

// String returns the 32 character lower-case hex form.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Filename returns the thumbnail file name for k.
func (k Key) Filename() string {
	return k.String() + Extension
}

// Derived is the result of deriving a key for a path.
type Derived struct {
	Path string // canonical absolute path
	URI  string
	Key  Key
}

// Derive canonicalizes path, converts it to a file URI and hashes it.
// It fails when the path does not exist or cannot be expressed as a URI.
func Derive(path string) (Derived, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return Derived{}, err
	}
	uri, err := FileURI(canonical)
	if err != nil {
		return Derived{}, err
	}
	return Derived{Path: canonical, URI: uri, Key: FromURI(uri)}, nil
}

// Canonicalize makes path absolute, removes . and .. elements and resolves
// symlinks.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	return resolved, nil
}
