// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for udtc.
//
// Usage:
//
//	udtc [-1] [-d|-e] [-o FILE] [FILE]
//
// See --help for all options.
package main

import (
	"os"

	"github.com/toeirei/udtc/internal/logging"
	"github.com/toeirei/udtc/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Printf("%v", err)
		os.Exit(1)
	}
}
