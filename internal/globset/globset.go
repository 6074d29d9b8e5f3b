// Package globset composes include and exclude globs for filtering origin paths.
//
// Patterns follow .gitignore conventions, evaluated against absolute paths:
//
//   - A pattern without a slash matches a name at any depth ("*.jpg").
//   - A pattern with a slash is anchored at the filesystem root ("/tmp/**"
//     and "tmp/**" are the same).
//   - "*" and "?" do not cross "/"; "**" matches any number of directories.
//   - A trailing slash restricts the pattern to directories, which in turn
//     matches everything beneath them.
//   - A pattern that matches a directory matches everything beneath it.
//
// A leading "!" on a token passed to [Parse] turns it into an exclude.
package globset

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Set is a compiled list of patterns. The zero Set matches nothing.
type Set struct {
	patterns []pattern
	all      bool
}

type pattern struct {
	raw     string
	glob    string
	dirOnly bool
}

// All returns a Set that matches every path.
func All() Set {
	return Set{all: true}
}

// New compiles patterns into a Set.
func New(patterns ...string) (Set, error) {
	var s Set
	for _, p := range patterns {
		if err := s.add(p); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

func (s *Set) add(raw string) error {
	p := strings.TrimSpace(raw)
	if p == "" {
		return fmt.Errorf("empty glob")
	}
	if p == "**" || p == "/**" {
		s.all = true
		return nil
	}

	dirOnly := strings.HasSuffix(p, "/")
	p = strings.TrimRight(p, "/")
	if !strings.Contains(p, "/") {
		p = "**/" + p
	}
	p = strings.TrimPrefix(p, "/")

	if !doublestar.ValidatePattern(p) {
		return fmt.Errorf("invalid glob %q", raw)
	}
	s.patterns = append(s.patterns, pattern{raw: raw, glob: p, dirOnly: dirOnly})
	return nil
}

// Empty reports whether the set can match anything.
func (s Set) Empty() bool {
	return !s.all && len(s.patterns) == 0
}

// Patterns returns the patterns as given, or "**" for a match-all set.
func (s Set) Patterns() []string {
	if s.all {
		return []string{"**"}
	}
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.raw
	}
	return out
}

// Match reports whether p or one of its parent directories matches the set.
func (s Set) Match(p string) bool {
	if s.all {
		return true
	}
	if len(s.patterns) == 0 {
		return false
	}

	name := strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "/")
	if name == "" || name == "." {
		return false
	}

	leaf := true
	for cur := name; cur != "." && cur != ""; cur = path.Dir(cur) {
		for _, pat := range s.patterns {
			if pat.dirOnly && leaf {
				continue
			}
			if ok, _ := doublestar.Match(pat.glob, cur); ok {
				return true
			}
		}
		leaf = false
	}
	return false
}

// Filter is the include/exclude pair applied to origin paths.
type Filter struct {
	Include Set
	Exclude Set
}

// Parse splits tokens into includes and "!"-prefixed excludes. When no
// include is given, everything is included.
func Parse(tokens []string) (Filter, error) {
	var inc, exc []string
	for _, tok := range tokens {
		if rest, ok := strings.CutPrefix(tok, "!"); ok {
			exc = append(exc, rest)
			continue
		}
		inc = append(inc, tok)
	}

	var f Filter
	var err error
	if f.Exclude, err = New(exc...); err != nil {
		return Filter{}, fmt.Errorf("exclude: %w", err)
	}
	if len(inc) == 0 {
		f.Include = All()
		return f, nil
	}
	if f.Include, err = New(inc...); err != nil {
		return Filter{}, fmt.Errorf("include: %w", err)
	}
	return f, nil
}

// Allows reports whether p passes: not excluded and included.
func (f Filter) Allows(p string) bool {
	return !f.Exclude.Match(p) && f.Include.Match(p)
}
