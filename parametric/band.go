// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"math"
	"sort"

	"github.com/opda/go-opda/stats"
)

// QuantileTuningCurveBand returns distribution-free confidence
// intervals for the quantile tuning curve at each of ns, estimated
// from ys, the scores of independent draws such as the trials of a
// random search.
//
// The curve at n is a fixed quantile of a single draw, so each
// interval is the order statistic interval of stats.QuantileCI for
// that quantile. Its coverage is at least confidence when ys has 30
// or fewer elements and approximately confidence otherwise. Bounds
// that fall outside the sample are ±Inf.
//
// obj resolves against convex as it does for the tuning curves of a
// distribution.
func QuantileTuningCurveBand(ys, ns []float64, q, confidence float64, convex bool, obj Objective) (los, his []float64, err error) {
	if len(ys) == 0 {
		return nil, nil, domainError("ys must be non-empty")
	}
	for i, y := range ys {
		if math.IsNaN(y) {
			return nil, nil, domainError("ys[%d] must not be NaN", i)
		}
	}
	if !(0 <= q && q <= 1) {
		return nil, nil, domainError("q (%v) must be between 0 and 1", q)
	}
	if !(0 <= confidence && confidence <= 1) {
		return nil, nil, domainError("confidence (%v) must be between 0 and 1", confidence)
	}
	if err := checkNs(ns); err != nil {
		return nil, nil, err
	}

	xs := append([]float64(nil), ys...)
	sort.Float64s(xs)
	minimize := obj.minimize(convex)
	los, his = make([]float64, len(ns)), make([]float64, len(ns))
	for i, n := range ns {
		ci := stats.QuantileCI(len(xs), tuningLevel(n, q, minimize), confidence)
		los[i], his[i] = ci.FromSample(xs)
	}
	return los, his, nil
}
