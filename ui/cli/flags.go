// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"strconv"

	"github.com/toeirei/udtc/core/cipher"
)

// modeChoice is the mode picked on the command line, if any.
type modeChoice struct {
	mode cipher.Mode
	set  bool
}

// modeValue backs --encrypt and --decrypt. Both flags write the same
// modeChoice, so whichever appears last on the command line wins. A false
// value (-d=false) leaves the choice alone.
type modeValue struct {
	choice *modeChoice
	value  cipher.Mode
}

func (m *modeValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		m.choice.mode = m.value
		m.choice.set = true
	}
	return nil
}

func (m *modeValue) String() string {
	if m.choice == nil {
		return "false"
	}
	return strconv.FormatBool(m.choice.set && m.choice.mode == m.value)
}

func (m *modeValue) Type() string { return "bool" }

func (m *modeValue) IsBoolFlag() bool { return true }
