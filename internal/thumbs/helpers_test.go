package thumbs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thumbs-cli/thumbs/internal/pngtext"
	"github.com/thumbs-cli/thumbs/internal/pngtext/pngtexttest"
	"github.com/thumbs-cli/thumbs/internal/thumbkey"
)

// fixture is a fake thumbnail cache next to a directory of source files.
type fixture struct {
	root string // thumbnails/
	src  string // source files
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	f := fixture{root: filepath.Join(base, "cache", "thumbnails"), src: filepath.Join(base, "src")}
	for _, d := range []string{f.src, filepath.Join(f.root, "normal"), filepath.Join(f.root, "large")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return f
}

// source creates a source file and returns its path.
func (f fixture) source(t *testing.T, rel string) string {
	t.Helper()
	p := filepath.Join(f.src, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(rel), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// thumbnail writes a cached PNG for path into the named location and
// returns its path. path need not exist.
func (f fixture) thumbnail(t *testing.T, location, path string) string {
	t.Helper()
	uri, err := thumbkey.FileURI(path)
	if err != nil {
		t.Fatal(err)
	}
	return f.thumbnailForURI(t, location, uri)
}

func (f fixture) thumbnailForURI(t *testing.T, location, uri string) string {
	t.Helper()
	p := filepath.Join(f.root, location, thumbkey.FromURI(uri).Filename())
	pngtexttest.Write(t, p,
		pngtexttest.Text("Thumb::MTime", "1600000000"),
		pngtexttest.Text(pngtext.URIKey, uri),
	)
	return p
}

func fileExists(t *testing.T, p string) bool {
	t.Helper()
	_, err := os.Stat(p)
	return err == nil
}

func thumbnails(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Thumbnail
	}
	return out
}
