// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"fmt"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

func domainError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

// checkNs checks that every element of ns is a valid number of draws.
func checkNs(ns []float64) error {
	for i, n := range ns {
		if !(n > 0) || math.IsInf(n, 1) {
			return domainError("ns[%d] (%v) must be positive and finite", i, n)
		}
	}
	return nil
}

// quantileTuningCurve returns, for each ns[i], the value that the best
// of ns[i] draws from the distribution with quantile function ppf does
// at least as well as with probability q.
//
// The maximum of n draws is below y with probability F(y)^n, so the
// curve is ppf(q^(1/n)). The minimum is above y with probability
// (1-F(y))^n, so the curve is ppf(1-q^(1/n)) and q = 0.5 gives the
// median either way. Both are continuous in n.
func quantileTuningCurve(ppf func(float64) float64, ns []float64, q float64, minimize bool) ([]float64, error) {
	if !(0 <= q && q <= 1) {
		return nil, domainError("q (%v) must be between 0 and 1", q)
	}
	if err := checkNs(ns); err != nil {
		return nil, err
	}
	ys := make([]float64, len(ns))
	for i, n := range ns {
		ys[i] = ppf(tuningLevel(n, q, minimize))
	}
	return ys, nil
}

// tuningLevel returns the quantile of a single draw that equals the
// quantile tuning curve at n.
func tuningLevel(n, q float64, minimize bool) float64 {
	if minimize {
		return -math.Expm1(math.Log(q) / n)
	}
	return math.Pow(q, 1/n)
}
