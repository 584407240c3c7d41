// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package codec

const (
	// MaxRune is the largest Unicode code point.
	MaxRune = 0x10ffff

	surrogateMin = 0xd800
	surrogateMax = 0xdfff
)

// Valid reports whether r is a Unicode scalar value.
func Valid(r rune) bool {
	return r >= 0 && r <= MaxRune && (r < surrogateMin || r > surrogateMax)
}

// RuneLen returns the number of bytes needed to encode r, or -1 if r is
// not encodable.
func RuneLen(r rune) int {
	switch {
	case !Valid(r):
		return -1
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// AppendRune appends the UTF-8 form of r to dst. dst is returned unchanged
// together with a *CodepointError when r is out of range or a surrogate.
func AppendRune(dst []byte, r rune) ([]byte, error) {
	if !Valid(r) {
		return dst, &CodepointError{Value: r}
	}
	return appendValid(dst, r), nil
}

func appendValid(dst []byte, r rune) []byte {
	switch {
	case r < 0x80:
		return append(dst, byte(r))
	case r < 0x800:
		return append(dst,
			0xc0|byte(r>>6),
			0x80|byte(r)&0x3f)
	case r < 0x10000:
		return append(dst,
			0xe0|byte(r>>12),
			0x80|byte(r>>6)&0x3f,
			0x80|byte(r)&0x3f)
	default:
		return append(dst,
			0xf0|byte(r>>18),
			0x80|byte(r>>12)&0x3f,
			0x80|byte(r>>6)&0x3f,
			0x80|byte(r)&0x3f)
	}
}

// Encode converts s to UTF-8. The whole sequence is validated first, so on
// error no bytes are returned at all.
func Encode(s []rune) ([]byte, error) {
	n := 0
	for i, r := range s {
		l := RuneLen(r)
		if l < 0 {
			return nil, &CodepointError{Index: i, Value: r}
		}
		n += l
	}
	out := make([]byte, 0, n)
	for _, r := range s {
		out = appendValid(out, r)
	}
	return out, nil
}
