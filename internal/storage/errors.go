package storage

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDirectory = errors.New("data directory not found")
	ErrUnreadableFile   = errors.New("data file missing or unreadable")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrNoData           = errors.New("no data to save")
)

// Error reports which file and line a save or load stopped at. Kind is one of
// the sentinel errors above, so callers branch with errors.Is.
type Error struct {
	Kind error
	File string
	Line int
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.File)
		if e.Line > 0 {
			msg = fmt.Sprintf("%s:%d", msg, e.Line)
		}
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(file string, line int, format string, args ...interface{}) error {
	return &Error{Kind: ErrMalformedRecord, File: file, Line: line, Err: fmt.Errorf(format, args...)}
}
