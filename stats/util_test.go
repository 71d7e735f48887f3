// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// aeqTol is aeq with an explicit absolute tolerance.
func aeqTol(expect, got, tol float64) bool {
	return math.Abs(expect-got) <= tol
}

// testFunc checks that f(x) ≅ y for each x, y in vals.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		t.Errorf("%s(%v) = %v, want %v", name, x, got, want)
	}
}

// testDiscreteCDF checks that dist.CDF is the running sum of
// dist.PMF, and that it is constant between integers.
func testDiscreteCDF(t *testing.T, name string, dist interface {
	PMF(float64) float64
	CDF(float64) float64
	Bounds() (float64, float64)
}) {
	t.Helper()
	lo, hi := dist.Bounds()
	sum := 0.0
	for k := lo - 2; k <= hi+2; k++ {
		sum += dist.PMF(k)
		for _, frac := range []float64{0, 0.5, 0.999} {
			if got := dist.CDF(k + frac); !aeq(sum, got) {
				t.Errorf("%s(%v) = %v, want %v", name, k+frac, got, sum)
			}
		}
	}
}

func wantDomainError(t *testing.T, name string, err error) {
	t.Helper()
	if !errors.Is(err, ErrDomain) {
		t.Errorf("%s: want ErrDomain, got %v", name, err)
	}
}
