// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bcast implements elementwise broadcasting over slices.
//
// An argument of length 1 broadcasts against every other argument.
// All other arguments must share one length.
package bcast

import "fmt"

// Len returns the length that slices of the given lengths broadcast
// to. It returns an error if the lengths are incompatible.
func Len(lens ...int) (int, error) {
	n := 1
	for _, l := range lens {
		switch {
		case l == 1:
		case n == 1:
			n = l
		case l != n:
			return 0, fmt.Errorf("cannot broadcast lengths %v", lens)
		}
	}
	return n, nil
}

// At returns xs[i], or xs[0] if xs is broadcast.
func At[T any](xs []T, i int) T {
	if len(xs) == 1 {
		return xs[0]
	}
	return xs[i]
}
