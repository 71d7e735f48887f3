// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"sort"
)

// SortByFirst returns copies of xss permuted by the ascending order of
// xss[0]. Elements of xss[0] that compare equal keep their relative
// order.
//
// All slices must have the same length. If xss is empty, SortByFirst
// returns an empty result.
func SortByFirst(xss ...[]float64) ([][]float64, error) {
	if len(xss) == 0 {
		return [][]float64{}, nil
	}
	n := len(xss[0])
	for i, xs := range xss {
		if len(xs) != n {
			return nil, fmt.Errorf("%w: slice %d has length %d, want %d", ErrShape, i, len(xs), n)
		}
	}

	key := xss[0]
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return key[perm[i]] < key[perm[j]]
	})

	out := make([][]float64, len(xss))
	for i, xs := range xss {
		ys := make([]float64, n)
		for j, p := range perm {
			ys[j] = xs[p]
		}
		out[i] = ys
	}
	return out, nil
}
