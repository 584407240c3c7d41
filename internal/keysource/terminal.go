// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package keysource

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/toeirei/udtc/core/security"
	"github.com/toeirei/udtc/internal/i18n"
	"github.com/toeirei/udtc/internal/logging"
)

// DefaultTTY is the controlling terminal on Unix systems.
const DefaultTTY = "/dev/tty"

// Terminal prompts on the controlling terminal with echo disabled. When the
// terminal cannot be opened it warns and falls back to reading lines.
type Terminal struct {
	Path     string
	Fallback Source
}

// NewTerminal returns a Terminal that falls back to reading lines from
// stdin, prompting on stderr.
func NewTerminal(stdin io.Reader, stderr io.Writer) *Terminal {
	return &Terminal{Path: DefaultTTY, Fallback: NewLines(stdin, stderr)}
}

func (t *Terminal) ReadKey(prompt string) (security.Secret, error) {
	path := t.Path
	if path == "" {
		path = DefaultTTY
	}
	tty, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if t.Fallback == nil {
			return nil, fmt.Errorf("could not open %s: %w", path, err)
		}
		logging.Warnf("%s", i18n.T("cli.warn_key_echo"))
		return t.Fallback.ReadKey(prompt)
	}
	defer func() { _ = tty.Close() }()

	if _, err := io.WriteString(tty, prompt); err != nil {
		return nil, fmt.Errorf("error asking for key: %w", err)
	}
	b, err := term.ReadPassword(int(tty.Fd()))
	_, _ = io.WriteString(tty, "\n")
	if err != nil {
		return nil, fmt.Errorf("could not read key from %s: %w", path, err)
	}
	return security.Secret(b), nil
}
