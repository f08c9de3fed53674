// Package bmffio
// Created by RTT.
// Author: teocci@yandex.com on 2021-Oct-27
package bmffio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader reports a box header whose size field cannot be
	// reconciled with its own length or with the enclosing content range.
	ErrMalformedHeader = errors.New("bmffio: malformed box header")
	// ErrTruncatedData reports a field read that needs more bytes than the
	// box or the source provides.
	ErrTruncatedData = errors.New("bmffio: truncated data")
	// ErrStringDecode reports a string property no known encoding accepts.
	ErrStringDecode = errors.New("bmffio: undecodable string")
	// ErrIndexOutOfRange reports a positional lookup past the last child.
	ErrIndexOutOfRange = errors.New("bmffio: child index out of range")
	// ErrRange reports a slice narrowing outside its parent slice.
	ErrRange = errors.New("bmffio: slice range out of bounds")
	// ErrInvalidTag reports a textual type code longer than four bytes.
	ErrInvalidTag = errors.New("bmffio: invalid type code")
)

// ParseError locates a failure at an absolute offset of the source.
// Err is one of the sentinel errors above, possibly wrapping an I/O error.
type ParseError struct {
	Op     string
	Offset int64
	Err    error
}

func (pe *ParseError) Error() string {
	return fmt.Sprintf("%s (%s at offset %d)", pe.Err, pe.Op, pe.Offset)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

func parseErr(op string, offset int64, err error) error {
	return &ParseError{Op: op, Offset: offset, Err: err}
}

// ioErr classifies a failed source read: short reads become truncation,
// anything else keeps its identity under the truncation sentinel.
func ioErr(err error) error {
	return fmt.Errorf("%w: %w", ErrTruncatedData, err)
}
