package types

import (
	"errors"
	"fmt"
)

var (
	ErrClassify    = errors.New("termtree: unrecognized transcript line")
	ErrStructure   = errors.New("termtree: malformed transcript structure")
	ErrNoCandidate = errors.New("termtree: no directory is large enough")
	ErrNotFound    = errors.New("termtree: not found")
	ErrNotDir      = errors.New("termtree: not a directory")
)

// LineError attaches a transcript position to a classification or
// structural error.
type LineError struct {
	Line int    // 1-based, 0 at end of input
	Text string // offending line, if any
	Msg  string
	Err  error // ErrClassify or ErrStructure
}

func (e *LineError) Error() string {
	switch {
	case e.Line == 0 && e.Text == "":
		return fmt.Sprintf("%v: end of input: %s", e.Err, e.Msg)
	case e.Line == 0:
		return fmt.Sprintf("%v: %q: %s", e.Err, e.Text, e.Msg)
	}
	return fmt.Sprintf("%v: line %d %q: %s", e.Err, e.Line, e.Text, e.Msg)
}

func (e *LineError) Unwrap() error { return e.Err }
