// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package codec

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// State is a state of the decoding automaton. Intermediate states are the
// multiples of 12 between Accept and the last row of the transition table.
type State uint32

const (
	Accept State = 0
	Reject State = 12
)

// classes maps each byte to one of twelve character classes:
// 0 ASCII, 1/7/9 continuation ranges, 2 two-byte lead, 3/4/10 three-byte
// leads, 5/6/11 four-byte leads, 8 never valid.
var classes = [256]uint8{
	0x00: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x10: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x20: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x30: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x40: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x50: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x60: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x70: 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0x80: 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	0x90: 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	0xa0: 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	0xb0: 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	0xc0: 8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	0xd0: 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	0xe0: 10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3,
	0xf0: 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,
}

// transitions is indexed by state+class. Each row of twelve entries is one
// state; 24, 36 expect one or two more continuation bytes, 48..96 are the
// lead bytes with a restricted second byte (E0, ED, F0, F1-F3, F4).
var transitions = [108]uint8{
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72, // Accept
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, // Reject
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12, // 24
	12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12, // 36
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, // 48: after E0
	12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12, // 60: after ED
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12, // 72: after F0
	12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12, // 84: after F1-F3
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, // 96: after F4
}

// Decoder is the incremental form of Decode. The zero value is ready to use.
type Decoder struct {
	state State
	codep rune
}

// Feed advances the automaton by one byte and returns the new state. When
// the result is Accept, Rune holds a complete code point.
func (d *Decoder) Feed(b byte) State {
	class := classes[b]
	if d.state != Accept {
		d.codep = rune(b&0x3f) | d.codep<<6
	} else {
		d.codep = rune(0xff>>class) & rune(b)
	}
	d.state = State(transitions[uint32(d.state)+uint32(class)])
	return d.state
}

// Rune returns the code point accumulated so far.
func (d *Decoder) Rune() rune { return d.codep }

// State returns the current automaton state.
func (d *Decoder) State() State { return d.state }

// Reset returns the decoder to Accept.
func (d *Decoder) Reset() { *d = Decoder{} }

// Decode converts b into code points. It fails on the first rejected byte
// and also when b ends inside a multi-byte sequence.
func Decode(b []byte) ([]rune, error) {
	out := make([]rune, 0, utf8.RuneCount(b))
	var d Decoder
	for i, c := range b {
		switch d.Feed(c) {
		case Accept:
			out = append(out, d.codep)
		case Reject:
			return nil, &DecodeError{Offset: int64(i)}
		}
	}
	if d.state != Accept {
		return nil, &DecodeError{Offset: int64(len(b)), Truncated: true}
	}
	return out, nil
}

// ReadAll buffers r completely. Allocation failure while growing the
// buffer is reported as ErrOutOfMemory instead of crashing the process.
func ReadAll(r io.Reader) (data []byte, err error) {
	var buf bytes.Buffer
	defer func() {
		if e := recover(); e != nil {
			if e == bytes.ErrTooLarge {
				data, err = nil, ErrOutOfMemory
				return
			}
			panic(e)
		}
	}()
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, &ReadError{Err: err}
	}
	return buf.Bytes(), nil
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader) ([]rune, error) {
	data, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
