// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 encoding")

	// ErrInvalidCodepoint is returned when a value cannot be encoded as UTF-8.
	ErrInvalidCodepoint = errors.New("invalid code point")

	// ErrOutOfMemory is returned when the input could not be buffered.
	ErrOutOfMemory = errors.New("out of memory")
)

// DecodeError reports where decoding stopped. Truncated is set when the
// input ended in the middle of a multi-byte sequence; otherwise Offset is
// the byte that drove the automaton into the reject state.
type DecodeError struct {
	Offset    int64
	Truncated bool
}

func (e *DecodeError) Error() string {
	if e.Truncated {
		return fmt.Sprintf("truncated utf-8 sequence at end of input (offset %d)", e.Offset)
	}
	return fmt.Sprintf("invalid utf-8 sequence at byte offset %d", e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidEncoding }

// ReadError wraps a failure of the underlying reader.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read error: " + e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

// CodepointError reports the first value in a sequence that has no UTF-8 form.
type CodepointError struct {
	Index int
	Value rune
}

func (e *CodepointError) Error() string {
	return fmt.Sprintf("cannot encode code point %#x at index %d", uint32(e.Value), e.Index)
}

func (e *CodepointError) Unwrap() error { return ErrInvalidCodepoint }
