package thumbkey

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// FileURI converts an absolute path to a file:// URI.
func FileURI(path string) (string, error) {
	if !filepath.IsAbs(path) || strings.IndexByte(path, 0) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrNotRepresentable, path)
	}

	var b strings.Builder
	b.Grow(len("file://") + len(path))
	b.WriteString("file://")
	for i := 0; i < len(path); i++ {
		c := path[i]
		if allowed(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String(), nil
}

func allowed(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/", c) >= 0
}

// Origin is a parsed thumbnail origin URI.
type Origin struct {
	URI    string
	Scheme string
	Path   string // decoded local path; empty unless IsLocal
}

// IsLocal reports whether the origin names a file on this machine.
func (o Origin) IsLocal() bool {
	return o.Path != ""
}

// ParseOrigin parses a URI read from thumbnail metadata. Non-file schemes
// parse successfully but are not local.
func ParseOrigin(raw string) (Origin, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Origin{}, fmt.Errorf("parse origin uri: %w", err)
	}
	o := Origin{URI: raw, Scheme: strings.ToLower(u.Scheme)}
	if o.Scheme != "file" {
		return o, nil
	}
	if u.Host != "" && u.Host != "localhost" {
		return Origin{}, fmt.Errorf("%w: remote host %q in %s", ErrNotRepresentable, u.Host, raw)
	}
	if !filepath.IsAbs(u.Path) {
		return Origin{}, fmt.Errorf("%w: %s", ErrNotRepresentable, raw)
	}
	o.Path = u.Path
	return o, nil
}
