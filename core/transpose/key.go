// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package transpose

import "errors"

// ErrInvalidKey is returned when a transposition is requested with an empty key.
var ErrInvalidKey = errors.New("key has length zero")

// Key is a cyclic transposition key. Its characters are bytes ordered as
// unsigned values, so a multi-byte UTF-8 character spans several columns.
type Key []byte

// Validate reports ErrInvalidKey for an empty key.
func (k Key) Validate() error {
	if len(k) == 0 {
		return ErrInvalidKey
	}
	return nil
}

// Len returns the number of columns of the key.
func (k Key) Len() int { return len(k) }

// At returns the key character and column index governing position p.
// It panics on an empty key; callers validate first.
func (k Key) At(p int) (rank byte, column int) {
	column = p % len(k)
	return k[column], column
}
