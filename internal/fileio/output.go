// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Package fileio owns the input and output streams of a udtc run. Output
// files are written under a temporary name and only renamed into place on
// Commit, so a failed or interrupted run never leaves a partial file behind.
package fileio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrFinished is returned when writing to or committing an output that was
// already committed or aborted.
var ErrFinished = errors.New("output already finished")

// Output is a destination that becomes visible only on Commit.
type Output interface {
	io.Writer
	Commit() error
	Abort()
}

// AtomicFile writes to a temporary file next to its target.
type AtomicFile struct {
	pf   *renameio.PendingFile
	path string
	done bool
}

// Create opens a temporary file in the directory of path. The target is
// created or replaced by Commit with mode 0600.
func Create(path string) (*AtomicFile, error) {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(0o600),
	)
	if err != nil {
		return nil, err
	}
	register(pf.Name())
	return &AtomicFile{pf: pf, path: path}, nil
}

func (a *AtomicFile) Write(p []byte) (int, error) {
	if a.done {
		return 0, ErrFinished
	}
	return a.pf.Write(p)
}

// Commit flushes the temporary file to disk and renames it over the target.
// On failure the temporary file is removed.
func (a *AtomicFile) Commit() error {
	if a.done {
		return ErrFinished
	}
	a.done = true
	defer unregister(a.pf.Name())

	if err := a.pf.CloseAtomicallyReplace(); err != nil {
		_ = a.pf.Cleanup()
		return fmt.Errorf("could not move output into place at %s: %w", a.path, err)
	}
	return nil
}

// Abort discards everything written so far. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	_ = a.pf.Cleanup()
	unregister(a.pf.Name())
}

type stream struct {
	w    *bufio.Writer
	done bool
}

// Stdout wraps w (normally the process stdout). Data is buffered and only
// flushed on Commit; Abort drops it.
func Stdout(w io.Writer) Output {
	return &stream{w: bufio.NewWriter(w)}
}

func (s *stream) Write(p []byte) (int, error) {
	if s.done {
		return 0, ErrFinished
	}
	return s.w.Write(p)
}

func (s *stream) Commit() error {
	if s.done {
		return ErrFinished
	}
	s.done = true
	return s.w.Flush()
}

func (s *stream) Abort() {
	if s.done {
		return
	}
	s.done = true
	s.w.Reset(io.Discard)
}
