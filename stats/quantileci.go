// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"sort"
)

// QuantileCIResult is a distribution-free confidence interval for a
// quantile, expressed in terms of order statistics of a sample.
type QuantileCIResult struct {
	// Quantile is the quantile passed to QuantileCI.
	Quantile float64

	// N is the sample size.
	N int

	// Confidence is the achieved confidence level, which is at
	// least the requested one.
	Confidence float64

	// LoOrder and HiOrder are the 1-based order statistics that
	// bound the interval: given sorted samples xs, the interval is
	// xs[LoOrder-1] to xs[HiOrder-1]. An order of 0 or N+1 means
	// the bound is -Inf or +Inf.
	LoOrder, HiOrder int

	// Ambiguous is set when the interval LoOrder+1 to HiOrder+1
	// has the same confidence.
	Ambiguous bool
}

// FromSample returns the bounds of q in terms of values from the
// sample xs, which need not be sorted. Bounds outside the sample are
// ±Inf.
//
// Applied to the running best values of independent search runs,
// this gives a nonparametric confidence interval for a point on a
// quantile tuning curve.
func (q QuantileCIResult) FromSample(xs []float64) (lo, hi float64) {
	if len(xs) != q.N {
		panic("sample size differs from computed quantile CI")
	}
	if !sort.Float64sAreSorted(xs) {
		xs = append([]float64(nil), xs...)
		sort.Float64s(xs)
	}

	lo, hi = math.Inf(-1), math.Inf(1)
	if q.LoOrder >= 1 {
		lo = xs[q.LoOrder-1]
	}
	if q.HiOrder <= len(xs) {
		hi = xs[q.HiOrder-1]
	}
	return
}

// quantileCIApproxThreshold is the sample size above which QuantileCI
// uses a normal approximation. It is a variable for testing.
var quantileCIApproxThreshold = 30

// QuantileCI returns the confidence interval of the q'th quantile of
// a sample of size n.
//
// The number of samples falling below the population quantile is
// Binomial(n, q), so interval k between consecutive order statistics
// contains the quantile with probability PMF(k). The interval is
// built from the most probable of these, biased to the left when
// there is a tie.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	res := QuantileCIResult{N: n, Quantile: q}
	if confidence >= 1 {
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, n+1
		return res
	}

	var l, r int
	samp := BinomialDist{N: n, P: q}
	if n <= quantileCIApproxThreshold {
		l, r = exactQuantileCI(samp, confidence, &res)
	} else {
		l, r = approxQuantileCI(samp, confidence, &res)
	}

	res.LoOrder, res.HiOrder = max(l, 0), min(r, n+1)
	return res
}

// exactQuantileCI grows the interval [l, r) outward from the mode of
// samp, always taking the more probable neighbor, until it reaches
// the requested confidence.
func exactQuantileCI(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	const debug = false

	// With two modes, start from the lower one.
	x := int(math.Ceil(float64(samp.N+1)*samp.P) - 1)
	if samp.P == 0 {
		x = 0
	}
	pmf := func(k int) float64 { return samp.PMF(float64(k)) }

	accum := pmf(x)
	l, r = x, x+1
	lp, rp := pmf(l-1), pmf(r)
	res.Ambiguous = rp == accum
	// Stop if the neighbors are exhausted, in case accumulated
	// rounding keeps us short of confidence.
	for accum < confidence && (lp > 0 || rp > 0) {
		res.Ambiguous = lp == rp
		if lp >= rp {
			accum += lp
			l--
			lp = pmf(l - 1)
		} else {
			accum += rp
			r++
			rp = pmf(r)
		}
		if debug {
			fmt.Printf("  [%d,%d) => %v\n", l, r, accum)
		}
	}
	res.Confidence = accum
	return l, r
}

// approxQuantileCI finds the interval using the normal approximation
// to samp with a continuity correction, so point k of samp covers
// [k-0.5, k+0.5] of the normal.
func approxQuantileCI(samp BinomialDist, confidence float64, res *QuantileCIResult) (l, r int) {
	norm := samp.NormalApprox()
	l1 := norm.Quantile((1 - confidence) / 2)
	r1 := 2*norm.Mu - l1

	// Round [l1, r1] out to half-integer boundaries and recover
	// the bands of samp they cover.
	l = int(math.Floor(math.Floor(l1-0.5)+0.5)) + 1
	r = int(math.Floor(math.Ceil(r1-0.5)+0.5)) + 1

	mass := func(l, r int) float64 {
		return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
	}
	res.Confidence = mass(l, r)
	// The interval is symmetric. Dropping its right-most band may
	// still meet the requested confidence.
	if biased := mass(l, r-1); biased >= confidence && biased < res.Confidence {
		res.Confidence, res.Ambiguous = biased, true
		r--
	}
	if l <= 0 && r >= samp.N+1 {
		// The normal has infinite support, so the mass of the
		// whole range falls just short of 1.
		res.Confidence, res.Ambiguous = 1, false
	}
	return l, r
}
