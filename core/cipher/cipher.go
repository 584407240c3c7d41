// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cipher composes one or more columnar transpositions into the
// udtc cipher and runs it over UTF-8 byte streams.
//
// Encryption applies the keys in order. Decryption undoes the most recent
// transposition first, so it walks the same key list backwards:
//
//	Encrypt(text, k1, k2) == Transpose(Transpose(text, k1), k2)
//	Decrypt(text, k1, k2) == Reverse(Reverse(text, k2), k1)
package cipher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/udtc/core/transpose"
)

// ErrNoKeys is returned when no key at all is supplied.
var ErrNoKeys = errors.New("no keys supplied")

// Mode selects the direction of the cipher.
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "encrypt"/"e" and "decrypt"/"d", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "e":
		return ModeEncrypt, nil
	case "decrypt", "d":
		return ModeDecrypt, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func validateKeys(keys []transpose.Key) error {
	if len(keys) == 0 {
		return ErrNoKeys
	}
	for i, k := range keys {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("key%d: %w", i+1, err)
		}
	}
	return nil
}

// Encrypt transposes text with every key in turn.
func Encrypt(text []rune, keys ...transpose.Key) ([]rune, error) {
	if err := validateKeys(keys); err != nil {
		return nil, err
	}
	out := text
	for _, k := range keys {
		var err error
		if out, err = transpose.Transpose(out, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Decrypt inverts Encrypt. keys are given in the order used to encrypt.
func Decrypt(text []rune, keys ...transpose.Key) ([]rune, error) {
	if err := validateKeys(keys); err != nil {
		return nil, err
	}
	out := text
	for i := len(keys) - 1; i >= 0; i-- {
		var err error
		if out, err = transpose.Reverse(out, keys[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Apply runs Encrypt or Decrypt depending on mode.
func Apply(mode Mode, text []rune, keys ...transpose.Key) ([]rune, error) {
	switch mode {
	case ModeEncrypt:
		return Encrypt(text, keys...)
	case ModeDecrypt:
		return Decrypt(text, keys...)
	default:
		return nil, fmt.Errorf("unknown mode %v", mode)
	}
}
