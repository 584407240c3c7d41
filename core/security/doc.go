// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package security holds key material read from the user in a wrapper that
// never prints its contents and can be wiped once the cipher has run.
package security
