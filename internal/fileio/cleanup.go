// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

package fileio

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	// Temporary output files that must not survive the process.
	pending   = make(map[string]struct{})
	pendingMu sync.Mutex

	signalHandlerInstalled bool
	signalHandlerMutex     sync.Mutex

	// exit is swapped in tests.
	exit = os.Exit
)

func register(path string) {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	pending[path] = struct{}{}
}

func unregister(path string) {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	delete(pending, path)
}

// Pending returns the temporary files not yet committed or aborted.
func Pending() []string {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	out := make([]string, 0, len(pending))
	for p := range pending {
		out = append(out, p)
	}
	return out
}

// RemovePending deletes every registered temporary file and returns how
// many were removed.
func RemovePending() int {
	pendingMu.Lock()
	defer pendingMu.Unlock()
	n := 0
	for p := range pending {
		if err := os.Remove(p); err == nil {
			n++
		}
		delete(pending, p)
	}
	return n
}

// InstallSignalHandler removes pending temporary files on SIGINT or SIGTERM
// and exits with 128+signal. Subsequent calls are ignored.
func InstallSignalHandler() {
	signalHandlerMutex.Lock()
	defer signalHandlerMutex.Unlock()

	if signalHandlerInstalled {
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		RemovePending()
		code := 1
		if s, ok := sig.(syscall.Signal); ok {
			code = 128 + int(s)
		}
		exit(code)
	}()

	signalHandlerInstalled = true
}
