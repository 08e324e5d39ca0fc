package leb128

import (
	"errors"
	"fmt"
	"io"
)

// ErrorKind classifies decoding errors.
type ErrorKind int

const (
	// Overflow means the decoded value does not fit in the requested width.
	Overflow ErrorKind = iota + 1
	// Truncated means the source ended before the terminating group.
	Truncated
	// IOFailure is reported by KindOf for errors returned by the
	// underlying source or sink. Such errors are never wrapped in *Error.
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case Truncated:
		return "truncated"
	case IOFailure:
		return "I/O failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var (
	// ErrOverflow matches, through errors.Is, every error of kind Overflow.
	ErrOverflow = errors.New("leb128: integer overflow")
	// ErrTruncated matches, through errors.Is, every error of kind Truncated.
	ErrTruncated = errors.New("leb128: truncated input")
)

// Error is returned by the decoders when the input is malformed.
type Error struct {
	Kind  ErrorKind
	Width Width
	// Offset is the index, relative to the first byte of the value, of the
	// byte where the error was detected.
	Offset int64
	// Err is io.EOF or io.ErrUnexpectedEOF for Truncated errors.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case Overflow:
		return fmt.Sprintf("leb128: value at byte %d overflows %s integer", e.Offset, e.Width)
	case Truncated:
		if e.Offset == 0 {
			return "leb128: no input"
		}
		return fmt.Sprintf("leb128: input ends after %d bytes without terminating group", e.Offset)
	}
	return fmt.Sprintf("leb128: %v at byte %d", e.Kind, e.Offset)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrOverflow) and errors.Is(err, ErrTruncated)
// match on the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrOverflow:
		return e.Kind == Overflow
	case ErrTruncated:
		return e.Kind == Truncated
	}
	return false
}

// KindOf returns the kind of err: the Kind of a *Error found in its chain,
// IOFailure for any other non-nil error and 0 for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return IOFailure
}

func overflowError(w Width, off int) error {
	return &Error{Kind: Overflow, Width: w, Offset: int64(off)}
}

func truncatedError(w Width, off int) error {
	e := &Error{Kind: Truncated, Width: w, Offset: int64(off), Err: io.ErrUnexpectedEOF}
	if off == 0 {
		e.Err = io.EOF
	}
	return e
}
