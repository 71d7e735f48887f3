// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"github.com/opda/go-opda/internal/bcast"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultATol is the absolute tolerance used by the highest density
// routines when the caller passes a non-positive tolerance.
var DefaultATol = 1e-10

// betaQuantile is the beta quantile function with p clamped to [0, 1].
func betaQuantile(d distuv.Beta, p float64) float64 {
	if p <= 0 {
		return 0
	} else if p >= 1 {
		return 1
	}
	return d.Quantile(p)
}

// betaSurvival returns 1 - CDF(x) of Beta(a, b) without the
// cancellation of subtracting the CDF from 1.
func betaSurvival(a, b, x float64) float64 {
	if x <= 0 {
		return 1
	} else if x >= 1 {
		return 0
	}
	return mathext.RegIncBeta(b, a, 1-x)
}

// betaMode returns the mode of Beta(a, b), which must exist. If the
// density is monotone, the mode is 0 or 1.
func betaMode(a, b float64) float64 {
	// If a+b == 2, one of a or b is < 1 and the division yields
	// ±Inf, which clips to the correct boundary.
	return math.Max(0, math.Min(1, (a-1)/(a+b-2)))
}

// densityOrder returns a monotone transform of the unnormalized
// Beta(a, b) density at x, namely the density raised to 1/(b-1).
//
// Comparing these values orders points by density. This is not true
// of distuv.Beta.Prob, which is not monotone between the boundaries
// and the mode and breaks bisection for small coverages.
func densityOrder(a, b, x float64) float64 {
	d := math.Pow(x, (a-1)/(b-1)) * (1 - x)
	if b < 1 {
		// The 1/(b-1) power reverses the order.
		return -d
	}
	return d
}

// bisectionSteps returns the number of bisection steps needed to
// shrink a bracket of the given width below atol. It is always at
// least 1 so that the midpoint is computed even when the bracket is
// already narrow.
func bisectionSteps(width, atol float64) int {
	return int(math.Ceil(math.Log2(math.Max(2, width/atol))))
}

func checkHighestDensity(a, b float64) error {
	if a <= 1 && b <= 1 {
		return domainError("either a (%v) or b (%v) must be greater than one to have a highest density interval", a, b)
	}
	return nil
}

// BetaEqualTailedInterval returns the interval containing coverage of
// the probability mass of Beta(a, b) and leaving equal mass in each
// tail.
//
// A coverage of 0 collapses the interval to the median and a
// coverage of 1 yields [0, 1].
func BetaEqualTailedInterval(a, b, coverage float64) (lo, hi float64, err error) {
	if err := checkShape(a, b); err != nil {
		return nan, nan, err
	}
	if err := checkUnit("coverage", coverage); err != nil {
		return nan, nan, err
	}
	beta := distuv.Beta{Alpha: a, Beta: b}
	lo = betaQuantile(beta, (1-coverage)/2)
	// Quantile is not monotone in the last ulp.
	hi = math.Max(lo, betaQuantile(beta, (1+coverage)/2))
	return lo, hi, nil
}

// BetaHighestDensityInterval returns the shortest interval containing
// coverage of the probability mass of Beta(a, b).
//
// The highest density interval only exists if a > 1 or b > 1. atol
// is the absolute tolerance on the interval's endpoints; if atol <=
// 0, DefaultATol is used.
func BetaHighestDensityInterval(a, b, coverage, atol float64) (lo, hi float64, err error) {
	if err := checkShape(a, b); err != nil {
		return nan, nan, err
	}
	if err := checkUnit("coverage", coverage); err != nil {
		return nan, nan, err
	}
	if err := checkHighestDensity(a, b); err != nil {
		return nan, nan, err
	}
	if atol <= 0 {
		atol = DefaultATol
	}

	s := newHDISearch(a, b, coverage)
	steps := bisectionSteps(s.xHi-s.xLo, atol)
	for i := 0; i < steps; i++ {
		s.step()
	}
	return s.x, s.y, nil
}

// hdiSearch is the state of a bisection for the lower endpoint of a
// highest density interval.
//
// Given the lower endpoint x, the upper one is y = ppf(cdf(x) +
// coverage). Below the interval, the density at x is less than the
// density at y; above it, the reverse.
type hdiSearch struct {
	beta     distuv.Beta
	coverage float64

	xLo, xHi float64
	x, y     float64
}

func newHDISearch(a, b, coverage float64) *hdiSearch {
	beta := distuv.Beta{Alpha: a, Beta: b}
	mode := betaMode(a, b)
	return &hdiSearch{
		beta:     beta,
		coverage: coverage,
		xLo:      betaQuantile(beta, math.Max(beta.CDF(mode)-coverage, 0)),
		xHi:      math.Min(mode, betaQuantile(beta, 1-coverage)),
	}
}

func (s *hdiSearch) step() {
	const debug = false

	a, b := s.beta.Alpha, s.beta.Beta
	s.x = (s.xLo + s.xHi) / 2
	s.y = betaQuantile(s.beta, s.beta.CDF(s.x)+s.coverage)
	// For tiny coverages, rounding can put y below x.
	s.y = math.Max(s.x, math.Min(s.y, 1))

	xd, yd := densityOrder(a, b, s.x), densityOrder(a, b, s.y)
	if xd <= yd {
		s.xLo = s.x
	}
	if xd >= yd {
		s.xHi = s.x
	}
	if debug {
		fmt.Printf("  [%v,%v] x=%v y=%v\n", s.xLo, s.xHi, s.x, s.y)
	}
}

// BetaEqualTailedCoverage returns the coverage of the smallest
// equal-tailed interval of Beta(a, b) containing x.
//
// It is the inverse of BetaEqualTailedInterval: one of the endpoints
// of the interval with the returned coverage is x.
func BetaEqualTailedCoverage(a, b, x float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return nan, err
	}
	if err := checkUnit("x", x); err != nil {
		return nan, err
	}
	beta := distuv.Beta{Alpha: a, Beta: b}
	if cdf := beta.CDF(x); cdf <= 0.5 {
		return 2 * (0.5 - cdf), nil
	}
	return math.Max(0, 2*(0.5-betaSurvival(a, b, x))), nil
}

// BetaHighestDensityCoverage returns the coverage of the smallest
// highest density interval of Beta(a, b) containing x.
//
// It is the inverse of BetaHighestDensityInterval. If x is the mode,
// the coverage is 0. atol is the absolute tolerance on the opposite
// endpoint; if atol <= 0, DefaultATol is used.
func BetaHighestDensityCoverage(a, b, x, atol float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return nan, err
	}
	if err := checkUnit("x", x); err != nil {
		return nan, err
	}
	if err := checkHighestDensity(a, b); err != nil {
		return nan, err
	}
	if atol <= 0 {
		atol = DefaultATol
	}

	s := newHDCSearch(a, b, x)
	steps := bisectionSteps(s.yHi-s.yLo, atol)
	for i := 0; i < steps; i++ {
		s.step()
	}
	return s.coverage(), nil
}

// hdcSearch is the state of a bisection for the endpoint opposite x
// of the highest density interval whose boundary contains x.
type hdcSearch struct {
	beta     distuv.Beta
	x, xd    float64
	xIsLower bool

	yLo, yHi float64
	y        float64
}

func newHDCSearch(a, b, x float64) *hdcSearch {
	mode := betaMode(a, b)
	// x == mode is treated as the upper end so the search
	// converges on the mode itself and the coverage is 0.
	s := &hdcSearch{
		beta:     distuv.Beta{Alpha: a, Beta: b},
		x:        x,
		xd:       densityOrder(a, b, x),
		xIsLower: x < mode,
	}
	if s.xIsLower {
		s.yLo, s.yHi = mode, 1
	} else {
		s.yLo, s.yHi = 0, mode
	}
	return s
}

func (s *hdcSearch) step() {
	a, b := s.beta.Alpha, s.beta.Beta
	s.y = (s.yLo + s.yHi) / 2
	yIsLo := s.xIsLower == (s.xd < densityOrder(a, b, s.y))
	if yIsLo {
		s.yLo = s.y
	} else {
		s.yHi = s.y
	}
}

func (s *hdcSearch) coverage() float64 {
	lo, hi := s.x, s.y
	if !s.xIsLower {
		lo, hi = hi, lo
	}
	mass := 1 - s.beta.CDF(lo) - betaSurvival(s.beta.Alpha, s.beta.Beta, hi)
	return math.Max(0, mass)
}

// BetaEqualTailedIntervalEach is the elementwise form of
// BetaEqualTailedInterval. Arguments of length 1 are broadcast.
func BetaEqualTailedIntervalEach(as, bs, coverages []float64) (los, his []float64, err error) {
	n, err := broadcastLen(len(as), len(bs), len(coverages))
	if err != nil {
		return nil, nil, err
	}
	los, his = make([]float64, n), make([]float64, n)
	for i := range los {
		los[i], his[i], err = BetaEqualTailedInterval(bcast.At(as, i), bcast.At(bs, i), bcast.At(coverages, i))
		if err != nil {
			return nil, nil, err
		}
	}
	return los, his, nil
}

// BetaHighestDensityIntervalEach is the elementwise form of
// BetaHighestDensityInterval. Arguments of length 1 are broadcast.
//
// All elements run the same number of bisection steps, determined by
// the widest initial bracket.
func BetaHighestDensityIntervalEach(as, bs, coverages []float64, atol float64) (los, his []float64, err error) {
	n, err := broadcastLen(len(as), len(bs), len(coverages))
	if err != nil {
		return nil, nil, err
	}
	if atol <= 0 {
		atol = DefaultATol
	}
	// Validate everything before computing anything.
	for i := 0; i < n; i++ {
		a, b, c := bcast.At(as, i), bcast.At(bs, i), bcast.At(coverages, i)
		if err := checkShape(a, b); err != nil {
			return nil, nil, err
		}
		if err := checkUnit("coverage", c); err != nil {
			return nil, nil, err
		}
		if err := checkHighestDensity(a, b); err != nil {
			return nil, nil, err
		}
	}

	searches := make([]*hdiSearch, n)
	width := 0.0
	for i := range searches {
		searches[i] = newHDISearch(bcast.At(as, i), bcast.At(bs, i), bcast.At(coverages, i))
		width = math.Max(width, searches[i].xHi-searches[i].xLo)
	}
	steps := bisectionSteps(width, atol)
	los, his = make([]float64, n), make([]float64, n)
	for i, s := range searches {
		for j := 0; j < steps; j++ {
			s.step()
		}
		los[i], his[i] = s.x, s.y
	}
	return los, his, nil
}

// BetaEqualTailedCoverageEach is the elementwise form of
// BetaEqualTailedCoverage. Arguments of length 1 are broadcast.
func BetaEqualTailedCoverageEach(as, bs, xs []float64) ([]float64, error) {
	n, err := broadcastLen(len(as), len(bs), len(xs))
	if err != nil {
		return nil, err
	}
	res := make([]float64, n)
	for i := range res {
		res[i], err = BetaEqualTailedCoverage(bcast.At(as, i), bcast.At(bs, i), bcast.At(xs, i))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// BetaHighestDensityCoverageEach is the elementwise form of
// BetaHighestDensityCoverage. Arguments of length 1 are broadcast.
func BetaHighestDensityCoverageEach(as, bs, xs []float64, atol float64) ([]float64, error) {
	n, err := broadcastLen(len(as), len(bs), len(xs))
	if err != nil {
		return nil, err
	}
	if atol <= 0 {
		atol = DefaultATol
	}
	for i := 0; i < n; i++ {
		a, b, x := bcast.At(as, i), bcast.At(bs, i), bcast.At(xs, i)
		if err := checkShape(a, b); err != nil {
			return nil, err
		}
		if err := checkUnit("x", x); err != nil {
			return nil, err
		}
		if err := checkHighestDensity(a, b); err != nil {
			return nil, err
		}
	}

	searches := make([]*hdcSearch, n)
	width := 0.0
	for i := range searches {
		searches[i] = newHDCSearch(bcast.At(as, i), bcast.At(bs, i), bcast.At(xs, i))
		width = math.Max(width, searches[i].yHi-searches[i].yLo)
	}
	steps := bisectionSteps(width, atol)
	res := make([]float64, n)
	for i, s := range searches {
		for j := 0; j < steps; j++ {
			s.step()
		}
		res[i] = s.coverage()
	}
	return res, nil
}

func broadcastLen(lens ...int) (int, error) {
	n, err := bcast.Len(lens...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return n, nil
}
