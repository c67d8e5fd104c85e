package selector

import (
	"errors"
	"fmt"
)

// Kind classifies a selection failure.
type Kind int

const (
	// KindUnexpected covers any other file-system fault (permissions, I/O).
	KindUnexpected Kind = iota
	KindNotFound
	KindNotDirectory
	KindNoMatches
	KindIndexOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindNotDirectory:
		return "not a directory"
	case KindNoMatches:
		return "no matches"
	case KindIndexOutOfRange:
		return "index out of range"
	default:
		return "unexpected"
	}
}

// Error is the failure returned by every selection.
type Error struct {
	Kind Kind
	// Path is the expanded, absolute directory the selection ran against.
	Path string
	// Index and Count are only set for KindIndexOutOfRange.
	Index int
	Count int
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("directory not found: %s", e.Path)
	case KindNotDirectory:
		return fmt.Sprintf("not a directory: %s", e.Path)
	case KindNoMatches:
		return fmt.Sprintf("no matching files in %s", e.Path)
	case KindIndexOutOfRange:
		return fmt.Sprintf("index out of range: %d (%d matching files in %s)", e.Index, e.Count, e.Path)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("selection failed in %s", e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindUnexpected if err is not an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnexpected
}
