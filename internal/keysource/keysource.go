// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keysource obtains cipher keys from the user: from the controlling
// terminal with echo disabled, from plain lines of text, or from values
// supplied up front on the command line.
package keysource

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/toeirei/udtc/core/security"
)

var (
	// ErrEmptyKey is returned when the user enters an empty key.
	ErrEmptyKey = errors.New("key has length zero")

	// ErrKeyTooLong is returned when a key exceeds the configured maximum.
	ErrKeyTooLong = errors.New("key is too long")

	// ErrNoInput is returned when a source has no more keys to give.
	ErrNoInput = errors.New("no key available")
)

// DefaultMaxLen bounds key length when the caller does not choose one. It
// matches a 64-byte key buffer that keeps room for a terminator.
const DefaultMaxLen = 63

// Source yields one key per call.
type Source interface {
	ReadKey(prompt string) (security.Secret, error)
}

// KeyError ties a key failure to the 1-based position of the key.
type KeyError struct {
	Index int
	Err   error
}

func (e *KeyError) Error() string { return fmt.Sprintf("key%d: %v", e.Index, e.Err) }

func (e *KeyError) Unwrap() error { return e.Err }

// Acquire reads len(prompts) keys from src. Every key must be non-empty and
// at most maxLen bytes long (DefaultMaxLen when maxLen <= 0). Keys read
// before a failure are wiped.
func Acquire(src Source, prompts []string, maxLen int) ([]security.Secret, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	keys := make([]security.Secret, 0, len(prompts))
	fail := func(i int, err error) ([]security.Secret, error) {
		security.ZeroAll(keys)
		return nil, &KeyError{Index: i + 1, Err: err}
	}
	for i, prompt := range prompts {
		k, err := src.ReadKey(prompt)
		if err != nil {
			return fail(i, err)
		}
		if k.IsEmpty() {
			return fail(i, ErrEmptyKey)
		}
		if k.Len() > maxLen {
			k.Zero()
			return fail(i, ErrKeyTooLong)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Lines reads one key per line from a reader. Prompts go to an optional
// writer.
type Lines struct {
	r      *bufio.Reader
	prompt io.Writer
}

// NewLines returns a Lines source reading r and prompting on prompt (may be nil).
// A *bufio.Reader is used as is, so the caller can keep reading from it
// after the last key line.
func NewLines(r io.Reader, prompt io.Writer) *Lines {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Lines{r: br, prompt: prompt}
}

// ReadKey writes the prompt and returns the next line without its line ending.
func (l *Lines) ReadKey(prompt string) (security.Secret, error) {
	if l.prompt != nil {
		if _, err := io.WriteString(l.prompt, prompt); err != nil {
			return nil, fmt.Errorf("error asking for key: %w", err)
		}
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not read key: %w", err)
		}
		if line == "" {
			return nil, ErrNoInput
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return security.FromString(line), nil
}

// Static hands out keys given in advance, in order.
type Static struct {
	keys []security.Secret
	next int
}

// NewStatic returns a Static source over keys.
func NewStatic(keys ...string) *Static {
	s := &Static{keys: make([]security.Secret, len(keys))}
	for i, k := range keys {
		s.keys[i] = security.FromString(k)
	}
	return s
}

// ReadKey ignores the prompt and returns the next key.
func (s *Static) ReadKey(string) (security.Secret, error) {
	if s.next >= len(s.keys) {
		return nil, ErrNoInput
	}
	k := s.keys[s.next]
	s.next++
	return k, nil
}
