package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thumbs-cli/thumbs/internal/config"
	"github.com/thumbs-cli/thumbs/internal/log"
	"github.com/thumbs-cli/thumbs/internal/output"
	"github.com/thumbs-cli/thumbs/internal/pngtext"
	"github.com/thumbs-cli/thumbs/internal/pngtext/pngtexttest"
	"github.com/thumbs-cli/thumbs/internal/thumbkey"
	"github.com/thumbs-cli/thumbs/internal/ui/prompt"
)

// harness runs the command tree against a temporary cache.
type harness struct {
	cfg    config.Config
	cache  string // thumbnails/
	src    string
	stdout bytes.Buffer
	stderr bytes.Buffer

	tty     bool
	answers []prompt.ConfirmResult
	asked   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{
		cfg:   config.Default(),
		cache: filepath.Join(base, "cache", "thumbnails"),
		src:   filepath.Join(base, "src"),
	}
	h.cfg.CacheDir = filepath.Join(base, "cache")
	for _, d := range []string{h.src, filepath.Join(h.cache, "normal"), filepath.Join(h.cache, "large")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()

	a := &app{
		interactive: func() bool { return h.tty },
		progress:    func() bool { return false },
		confirm: func(string) (prompt.ConfirmResult, error) {
			if h.asked >= len(h.answers) {
				t.Fatalf("unexpected prompt #%d", h.asked+1)
			}
			res := h.answers[h.asked]
			h.asked++
			return res, nil
		},
		now:    func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
		stderr: &h.stderr,
	}

	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(&h.stderr, log.LevelWarn))
	ctx = output.WithPrinter(ctx, &h.stdout)
	cfg := h.cfg
	ctx = config.WithConfig(ctx, &cfg)

	root := newRootCmd(a)
	root.SetContext(ctx)
	root.SetArgs(args)
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return root.Execute()
}

func (h *harness) source(t *testing.T, rel string) string {
	t.Helper()
	p := filepath.Join(h.src, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(rel), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func (h *harness) thumbnail(t *testing.T, location, path string) string {
	t.Helper()
	uri, err := thumbkey.FileURI(path)
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(h.cache, location, thumbkey.FromURI(uri).Filename())
	pngtexttest.Write(t, p, pngtexttest.Text(pngtext.URIKey, uri))
	return p
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
