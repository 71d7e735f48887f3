// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// EstimateInitialParametersAndBounds returns rough estimates of the
// parameters (a, b, c) of the quadratic distribution that generated
// ys, along with a box of bounds on them. The estimates are meant to
// seed a nonlinear fit such as Fit.
//
// Only the share fraction of ys nearest the optimum informs the
// estimate of c: the lowest values if convex, and the highest
// otherwise. fraction must be in (0, 1].
//
// If every element of ys is equal, c cannot be identified and its
// estimate is NaN.
func EstimateInitialParametersAndBounds(ys []float64, fraction float64, convex bool) (params [3]float64, bounds [3][2]float64, err error) {
	xs, err := reflectSorted(ys, fraction, convex)
	if err != nil {
		return params, bounds, err
	}
	a, b, c := estimateConvex(xs, fraction)
	if !convex {
		a, b = -b, -a
	}
	lo, hi := floats.Min(ys), floats.Max(ys)
	params = [3]float64{a, b, c}
	bounds = [3][2]float64{{-inf, lo}, {hi, inf}, {0, inf}}
	return params, bounds, nil
}

// EstimateNoisyInitialParametersAndBounds is like
// EstimateInitialParametersAndBounds for the noisy quadratic
// distribution, returning estimates of (a, b, c, o).
//
// The noise scale is estimated by comparing the spacing of the
// extreme order statistics of ys with that of a standard normal
// sample of the same size. Noise can carry samples past a and b, so a
// is only bounded above by the largest sample and b below by the
// smallest.
func EstimateNoisyInitialParametersAndBounds(ys []float64, fraction float64, convex bool) (params [4]float64, bounds [4][2]float64, err error) {
	xs, err := reflectSorted(ys, fraction, convex)
	if err != nil {
		return params, bounds, err
	}
	a, b, c := estimateConvex(xs, fraction)
	if !convex {
		a, b = -b, -a
	}
	lo, hi := floats.Min(ys), floats.Max(ys)
	params = [4]float64{a, b, c, estimateNoise(xs)}
	bounds = [4][2]float64{{-inf, hi}, {lo, inf}, {0, inf}, {0, inf}}
	return params, bounds, nil
}

// reflectSorted validates ys and returns a sorted copy, negated if
// the distribution is concave so that the optimum is the minimum.
func reflectSorted(ys []float64, fraction float64, convex bool) ([]float64, error) {
	if len(ys) == 0 {
		return nil, domainError("ys must be non-empty")
	}
	if !(0 < fraction && fraction <= 1) {
		return nil, domainError("fraction (%v) must be in (0, 1]", fraction)
	}
	xs := make([]float64, len(ys))
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, domainError("ys[%d] (%v) must be finite", i, y)
		}
		if convex {
			xs[i] = y
		} else {
			xs[i] = -y
		}
	}
	sort.Float64s(xs)
	return xs, nil
}

// estimateConvex estimates the parameters of a convex quadratic
// distribution from the sorted sample xs.
//
// The minimum a is extrapolated one spacing below the smallest
// sample. Then c follows from matching the empirical quantiles at
// fraction/2 and fraction, since (y_q - a) is proportional to
// q^(2/c), and b from extrapolating the upper of those two quantiles
// to q = 1.
func estimateConvex(xs []float64, fraction float64) (a, b, c float64) {
	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		return lo, hi, nan
	}
	a = lo - (xs[1] - lo)

	q1, q2 := fraction/2, fraction
	y1 := stat.Quantile(q1, stat.Empirical, xs, nil)
	y2 := stat.Quantile(q2, stat.Empirical, xs, nil)
	c = 2 * math.Log(q2/q1) / math.Log((y2-a)/(y1-a))
	if !(c > 0) || math.IsInf(c, 1) {
		// The matched quantiles coincide; fall back to the
		// uniform shape.
		c = 2
	}
	b = math.Max(a+(y2-a)/math.Pow(q2, 2/c), hi)
	return a, b, c
}

// estimateNoise estimates the noise scale of the sorted sample xs.
func estimateNoise(xs []float64) float64 {
	n := len(xs)
	k := int(math.Sqrt(float64(n)))
	if k < 1 || xs[0] == xs[n-1] {
		return 0
	}
	nn := float64(n + 1)
	z := distuv.UnitNormal.Quantile(float64(k+1)/nn) - distuv.UnitNormal.Quantile(1/nn)
	return (xs[k] - xs[0]) / z
}
