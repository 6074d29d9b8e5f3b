package thumbs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/thumbs-cli/thumbs/internal/cachedir"
	"github.com/thumbs-cli/thumbs/internal/globset"
	"github.com/thumbs-cli/thumbs/internal/pngtext/pngtexttest"
)

func filter(t *testing.T, tokens ...string) globset.Filter {
	t.Helper()
	f, err := globset.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", tokens, err)
	}
	return f
}

func TestClassify(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	gone := filepath.Join(f.src, "tmp", "gone.jpg")
	present := f.source(t, "tmp/here.jpg")

	tests := []struct {
		name       string
		origin     string
		tokens     []string
		wantOrphan bool
	}{
		{"missing origin default globs", gone, nil, true},
		{"existing origin", present, nil, false},
		{"excluded regardless of existence", gone, []string{"!" + filepath.Join(f.src, "tmp") + "/**"}, false},
		{"outside include", gone, []string{"/elsewhere/**"}, false},
		{"inside include", gone, []string{filepath.Join(f.src, "**")}, true},
		{"basename exclude", gone, []string{"!*.jpg"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := f.thumbnail(t, "normal", tt.origin)
			m, orphan, err := NewScanner(filter(t, tt.tokens...), false, nil).Classify(thumb)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}
			if orphan != tt.wantOrphan {
				t.Errorf("orphan = %v, want %v", orphan, tt.wantOrphan)
			}
			if m.Source != tt.origin {
				t.Errorf("Source = %q, want %q", m.Source, tt.origin)
			}
		})
	}
}

func TestClassify_TmpGone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	thumb := f.thumbnailForURI(t, "normal", "file:///tmp/gone.jpg")

	s := NewScanner(filter(t), false, nil)
	s.exists = func(string) bool { return false }
	if _, orphan, err := s.Classify(thumb); err != nil || !orphan {
		t.Errorf("Classify() = %v, %v; want orphan", orphan, err)
	}

	s.exists = func(p string) bool { return p == "/tmp/gone.jpg" }
	if _, orphan, err := s.Classify(thumb); err != nil || orphan {
		t.Errorf("Classify() = %v, %v; want kept when origin exists", orphan, err)
	}

	s = NewScanner(filter(t, "!/tmp/**"), false, nil)
	s.exists = func(string) bool { return false }
	if _, orphan, err := s.Classify(thumb); err != nil || orphan {
		t.Errorf("Classify() = %v, %v; want kept when excluded", orphan, err)
	}
}

func TestClassify_NonLocal(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	thumb := f.thumbnailForURI(t, "normal", "https://example.com/gone.jpg")

	m, orphan, err := NewScanner(filter(t), false, nil).Classify(thumb)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if orphan || m.Source != "" {
		t.Errorf("remote origin should never be a candidate, got %+v orphan=%v", m, orphan)
	}
}

func TestClassify_NoMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	noURI := filepath.Join(dir, "a.png")
	pngtexttest.Write(t, noURI, pngtexttest.Text("Software", "test"))
	notPNG := filepath.Join(dir, "b.png")
	if err := os.WriteFile(notPNG, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewScanner(filter(t), false, nil)
	for _, p := range []string{noURI, notPNG, filepath.Join(dir, "vanished.png")} {
		if _, _, err := s.Classify(p); err == nil {
			t.Errorf("Classify(%s) error = nil, want error", filepath.Base(p))
		}
	}
}

func TestScan(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	orphanNormal := f.thumbnail(t, "normal", filepath.Join(f.src, "gone1.jpg"))
	orphanLarge := f.thumbnail(t, "large", filepath.Join(f.src, "gone2.jpg"))
	f.thumbnail(t, "normal", f.source(t, "kept.jpg"))
	f.thumbnailForURI(t, "normal", "sftp://host/x.jpg")
	failed := f.thumbnail(t, "fail/tool", filepath.Join(f.src, "gone3.jpg"))

	// noise the scan must skip
	pngtexttest.Write(t, filepath.Join(f.root, "normal", "nometa.png"))
	pngtexttest.Write(t, filepath.Join(f.root, "normal", "sub", "deep.png"))
	if err := os.WriteFile(filepath.Join(f.root, "normal", "readme.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	hidden := f.thumbnail(t, "normal", filepath.Join(f.src, "gone4.jpg"))
	hiddenPath := filepath.Join(filepath.Dir(hidden), ".hidden.png")
	if err := os.Rename(hidden, hiddenPath); err != nil {
		t.Fatal(err)
	}

	locs := cachedir.WithoutFailures(cachedir.NewLocator(f.root, nil).Locate(true))
	c := &collector{}
	stats, err := NewScanner(filter(t), false, nil).Scan(locs, c)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := thumbnails(c.matches)
	slices.Sort(got)
	want := []string{orphanLarge, orphanNormal}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("orphans = %v, want %v", got, want)
	}
	if slices.Contains(got, failed) {
		t.Error("failure thumbnails must not be scanned unless requested")
	}
	if stats.Scanned != 5 || stats.Kept != 1 || stats.Skipped != 2 {
		t.Errorf("stats = %+v, want Scanned=5 Kept=1 Skipped=2", stats)
	}

	c = &collector{}
	if _, err := NewScanner(filter(t), true, nil).Scan(locs, c); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(thumbnails(c.matches), hiddenPath) {
		t.Error("hidden thumbnail should be scanned when hidden entries are included")
	}
}

func TestScan_MissingLocation(t *testing.T) {
	t.Parallel()

	locs := []cachedir.Location{{Path: filepath.Join(t.TempDir(), "nope"), Kind: cachedir.KindNormal}}
	stats, err := NewScanner(globset.Filter{Include: globset.All()}, false, nil).Scan(locs, &collector{})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if stats.Scanned != 0 {
		t.Errorf("Scanned = %d, want 0", stats.Scanned)
	}
}

func TestScan_Progress(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.thumbnail(t, "normal", filepath.Join(f.src, "a.jpg"))
	f.thumbnail(t, "normal", filepath.Join(f.src, "b.jpg"))

	var calls int
	s := NewScanner(filter(t), false, nil)
	s.OnProgress(func(ScanStats) { calls++ })
	if _, err := s.Scan(cachedir.NewLocator(f.root, nil).Locate(false), &collector{}); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("progress calls = %d, want 2", calls)
	}
}
