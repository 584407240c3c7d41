// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package cipher

import (
	"io"

	"github.com/toeirei/udtc/core/codec"
	"github.com/toeirei/udtc/core/transpose"
)

// WriteError wraps a failure of the output writer.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "could not write output: " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }

// Stats describes one Process run.
type Stats struct {
	InputBytes  int
	CodePoints  int
	OutputBytes int
}

// Process reads all of r, decodes it as UTF-8, applies the cipher and
// writes the result to w with a single Write call. Nothing reaches w unless
// every step before the write succeeded. Empty input produces no output.
func Process(r io.Reader, w io.Writer, mode Mode, keys ...transpose.Key) (Stats, error) {
	var st Stats
	if err := validateKeys(keys); err != nil {
		return st, err
	}

	data, err := codec.ReadAll(r)
	if err != nil {
		return st, err
	}
	st.InputBytes = len(data)

	text, err := codec.Decode(data)
	if err != nil {
		return st, err
	}
	st.CodePoints = len(text)
	if len(text) == 0 {
		return st, nil
	}

	out, err := Apply(mode, text, keys...)
	if err != nil {
		return st, err
	}
	enc, err := codec.Encode(out)
	if err != nil {
		return st, err
	}

	n, err := w.Write(enc)
	st.OutputBytes = n
	if err != nil {
		return st, &WriteError{Err: err}
	}
	return st, nil
}
