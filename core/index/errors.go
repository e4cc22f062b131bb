// core/index/errors.go
package index

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every structured error below matches exactly one.
var (
	ErrNotFound = errors.New("sequence not found")
	ErrRange    = errors.New("range out of bounds")
	ErrParse    = errors.New("malformed FASTA")
	ErrIO       = errors.New("storage I/O failed")
)

// NotFoundError reports an unknown sequence name or id.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("no sequence %q", e.Key) }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// RangeError reports a [Start,End) request outside [0,Length].
type RangeError struct {
	Name       string
	Start, End int
	Length     int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range %d-%d invalid for %s (length %d)", e.Start, e.End, e.Name, e.Length)
}
func (e *RangeError) Is(target error) bool { return target == ErrRange }

// ParseError is returned by Build and ReadFAI. Line is 1-based.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse: line %d: %s", e.Line, e.Reason)
	}
	return "parse: " + e.Reason
}
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IOError wraps a storage failure (including timeouts and aborted reads).
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// WrapIO returns nil for nil, leaves already-classified errors alone and
// wraps anything else as an IOError.
func WrapIO(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrIO) || errors.Is(err, ErrParse) {
		return err
	}
	return &IOError{Op: op, Err: err}
}
