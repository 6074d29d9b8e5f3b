package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/thumbs-cli/thumbs/internal/log"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitNothingFound = 125
)

// errNothingFound ends a command that ran fine but had nothing to act on.
var errNothingFound = errors.New("nothing found")

// usageError marks bad flags or arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNothingFound):
		return exitNothingFound
	default:
		return exitFailure
	}
}

// reportError prints err. Wrapped causes are listed at info level and
// above; below that the user is pointed at -v.
func reportError(w io.Writer, l *log.Logger, err error) {
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(w, "Error:", err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'thumbs -h' for help")
		return
	}

	causes := chain(err)
	if len(causes) == 0 {
		fmt.Fprintln(w, "Error:", err)
		return
	}
	if !l.Enabled(log.LevelInfo) {
		fmt.Fprintf(w, "Error: %v; rerun with '-v' for more information\n", err)
		return
	}
	fmt.Fprintln(w, "Error:", err)
	for _, c := range causes {
		l.Info("cause: " + c.Error())
	}
}

// chain returns the errors wrapped by err, outermost first.
func chain(err error) []error {
	var out []error
	for {
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
			if err == nil {
				return out
			}
			out = append(out, err)
		case interface{ Unwrap() []error }:
			return append(out, u.Unwrap()...)
		default:
			return out
		}
	}
}
