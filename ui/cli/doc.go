// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the udtc command line using Cobra. It resolves
// configuration, acquires keys, owns the input and output streams and hands
// the actual work to core/cipher. Failures are returned as localized errors;
// the main package decides the exit status.
package cli
