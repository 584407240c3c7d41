// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Package transpose implements columnar transposition over arbitrary
// sequences and its exact inverse.
//
// Transpose writes the sequence row by row into a grid as wide as the key
// and reads it back column by column, visiting columns in ascending order
// of their key character and, for equal characters, in column order. The
// grid is never built: every element is tagged with the key character and
// column of its position and the tags are stable sorted.
package transpose

import (
	"cmp"
	"slices"
)

type item[T any] struct {
	value T
	rank  int
	tie   int
}

func byRankThenTie[T any](a, b item[T]) int {
	if c := cmp.Compare(a.rank, b.rank); c != 0 {
		return c
	}
	return cmp.Compare(a.tie, b.tie)
}

func byRank[T any](a, b item[T]) int {
	return cmp.Compare(a.rank, b.rank)
}

// tag builds one item per position, carrying value(i) and the key
// character and column of position i.
func tag[T any](n int, key Key, value func(int) T) []item[T] {
	items := make([]item[T], n)
	for i := range items {
		rank, column := key.At(i)
		items[i] = item[T]{value: value(i), rank: int(rank), tie: column}
	}
	return items
}

func values[T any](items []item[T]) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.value
	}
	return out
}

// Transpose returns seq permuted by key. seq is not modified.
func Transpose[T any](seq []T, key Key) ([]T, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	items := tag(len(seq), key, func(i int) T { return seq[i] })
	slices.SortStableFunc(items, byRankThenTie[T])
	return values(items), nil
}

// Reverse undoes Transpose for the same key: Reverse(Transpose(s, k), k)
// equals s for every s.
//
// The first sort ranks positions exactly like Transpose does, so slot j ends
// up holding the original index that Transpose sends to j. Each element of
// seq is then tagged with the original index of its slot and sorted again;
// those tags are 0..n-1 without repeats, which puts every element back at
// its original index.
func Reverse[T any](seq []T, key Key) ([]T, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	order := tag(len(seq), key, func(i int) int { return i })
	slices.SortStableFunc(order, byRankThenTie[int])

	items := make([]item[T], len(seq))
	for j, o := range order {
		items[j] = item[T]{value: seq[j], rank: o.value}
	}
	slices.SortStableFunc(items, byRank[T])
	return values(items), nil
}
