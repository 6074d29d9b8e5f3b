package thumbs

import (
	"os"

	"github.com/thumbs-cli/thumbs/internal/log"
)

// Visitor receives each match produced by an operation. Returning an error
// stops the operation.
type Visitor interface {
	Visit(m Match) error
}

// VisitFunc adapts a function to a Visitor.
type VisitFunc func(m Match) error

// Visit calls f(m).
func (f VisitFunc) Visit(m Match) error {
	return f(m)
}

// collector keeps every match.
type collector struct {
	matches []Match
}

func (c *collector) Visit(m Match) error {
	c.matches = append(c.matches, m)
	return nil
}

// remover deletes each match unless dryRun is set, and keeps what it saw.
type remover struct {
	dryRun  bool
	what    string
	log     *log.Logger
	matches []Match
}

func newRemover(dryRun bool, what string, l *log.Logger) *remover {
	return &remover{dryRun: dryRun, what: what, log: l}
}

func (r *remover) Visit(m Match) error {
	if r.dryRun {
		r.log.Info("would delete " + r.what + " for " + m.Source)
		r.matches = append(r.matches, m)
		return nil
	}

	r.log.Info("deleting " + r.what + " for " + m.Source)
	if err := os.Remove(m.Thumbnail); err != nil {
		return &DeleteError{Path: m.Thumbnail, Deleted: len(r.matches), Err: err}
	}
	r.matches = append(r.matches, m)
	return nil
}
