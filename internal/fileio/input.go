// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package fileio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame. 0xb5 cannot follow an ASCII byte in
// UTF-8, so no valid text input is mistaken for a compressed one.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// OpenInput opens path for reading; "" and "-" select stdin.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// MaybeDecompress returns a reader that transparently decodes r when it
// starts with a zstd frame. The returned func releases the decoder.
func MaybeDecompress(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	if !bytes.Equal(head, zstdMagic) {
		return br, func() {}, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create zstd reader: %w", err)
	}
	return dec, dec.Close, nil
}

// Compress wraps w in a zstd encoder. level is one of "fastest", "default",
// "better", "best"; empty means default. Close must be called to finish
// the frame.
func Compress(w io.Writer, level string) (io.WriteCloser, error) {
	lvl := zstd.SpeedDefault
	if level != "" {
		ok, l := zstd.EncoderLevelFromString(level)
		if !ok {
			return nil, fmt.Errorf("unknown zstd level %q", level)
		}
		lvl = l
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(lvl))
	if err != nil {
		return nil, fmt.Errorf("could not create zstd writer: %w", err)
	}
	return enc, nil
}
