// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package codec converts raw UTF-8 byte streams into code point sequences
// and back. Decoding runs a table driven automaton one byte at a time and
// rejects malformed, overlong, surrogate and truncated sequences, so that
// Encode(Decode(b)) reproduces b exactly for every input Decode accepts.
package codec
