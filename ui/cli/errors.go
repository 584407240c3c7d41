// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"io/fs"

	"github.com/toeirei/udtc/core/cipher"
	"github.com/toeirei/udtc/core/codec"
	"github.com/toeirei/udtc/internal/i18n"
	"github.com/toeirei/udtc/internal/keysource"
)

// cliError carries a localized message for the user while keeping the
// underlying error reachable through errors.Is/As.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }

func (e *cliError) Unwrap() error { return e.err }

func newCLIError(err error, messageID string, args ...any) error {
	return &cliError{msg: i18n.T(messageID, args...), err: err}
}

// reason strips the operation and path from filesystem errors.
func reason(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// describe turns a cipher pipeline failure into a user-facing error.
func describe(err error) error {
	var de *codec.DecodeError
	var ce *codec.CodepointError
	var re *codec.ReadError
	var we *cipher.WriteError
	switch {
	case errors.As(err, &de):
		if de.Truncated {
			return newCLIError(err, "cli.error_bad_utf8_tail")
		}
		return newCLIError(err, "cli.error_bad_utf8", de.Offset)
	case errors.As(err, &ce):
		return newCLIError(err, "cli.error_bad_codepoint")
	case errors.Is(err, codec.ErrOutOfMemory):
		return newCLIError(err, "cli.error_out_of_memory")
	case errors.As(err, &re):
		return newCLIError(err, "cli.error_read", re.Err)
	case errors.As(err, &we):
		return newCLIError(err, "cli.error_write", we.Err)
	}
	return newCLIError(err, "cli.error_read", err)
}

func describeKeyError(err error, maxLen int) error {
	var ke *keysource.KeyError
	if !errors.As(err, &ke) {
		return err
	}
	switch {
	case errors.Is(err, keysource.ErrEmptyKey):
		return newCLIError(err, "cli.error_key_empty", ke.Index)
	case errors.Is(err, keysource.ErrKeyTooLong):
		return newCLIError(err, "cli.error_key_too_long", ke.Index, maxLen)
	default:
		return newCLIError(err, "cli.error_key_read", ke.Index, ke.Err)
	}
}
