// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// swapLogger replaces L with a buffer-backed logger for the duration of the test.
func swapLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = New(&buf)
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	buf := swapLogger(t)
	L.SetLevel(clog.DebugLevel)

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E", "udtc"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestDefaultLevelHidesDebugAndInfo(t *testing.T) {
	buf := swapLogger(t)

	Debugf("quiet debug")
	Infof("quiet info")
	Warnf("loud warning")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("debug/info should be suppressed at default level; got: %s", out)
	}
	if !strings.Contains(out, "loud warning") {
		t.Fatalf("missing warning; got: %s", out)
	}
}

func TestSetLevel(t *testing.T) {
	buf := swapLogger(t)

	if err := SetLevel("info"); err != nil {
		t.Fatalf("SetLevel(info): %v", err)
	}
	Infof("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("info should be visible after SetLevel(info); got: %s", buf.String())
	}

	if err := SetLevel("shouting"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if err := SetLevel(""); err != nil {
		t.Fatalf("empty level should be ignored, got %v", err)
	}
}

func TestSetDebug(t *testing.T) {
	buf := swapLogger(t)

	SetDebug(true)
	Debugf("debug on")
	SetDebug(false)
	Debugf("debug off")

	out := buf.String()
	if !strings.Contains(out, "debug on") || strings.Contains(out, "debug off") {
		t.Fatalf("SetDebug did not toggle debug output; got: %s", out)
	}
}

func TestPrintfHasNoLevelTag(t *testing.T) {
	buf := swapLogger(t)
	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	Printf("could not open input file '%s'", "x.txt")

	out := strings.TrimSpace(buf.String())
	if out != "udtc: could not open input file 'x.txt'" {
		t.Fatalf("unexpected output %q", out)
	}
}
