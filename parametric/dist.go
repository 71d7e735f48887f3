// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parametric implements the quadratic and noisy quadratic
// distributions, which model the score of the best configuration found
// by random hyperparameter search, and the tuning curves derived from
// them.
//
// Near an optimum, a loss surface is approximately quadratic. If
// hyperparameters are drawn uniformly from a ball around the optimum
// of a c-dimensional quadratic, the resulting score has the quadratic
// distribution with parameters a (the optimum), b (the worst score in
// the ball), and c. Whether the optimum is a minimum or a maximum is
// given by the convex flag.
package parametric // import "github.com/opda/go-opda/parametric"

import (
	"math"
	"strconv"
	"strings"

	"github.com/opda/go-opda/stats"
	"golang.org/x/exp/rand"
)

// ErrDomain is returned when an argument lies outside the domain of a
// function. It is the same error as stats.ErrDomain.
var ErrDomain = stats.ErrDomain

// A Distribution is a parametric distribution of the score of a
// random hyperparameter configuration.
type Distribution interface {
	// Params returns the family and parameters of this
	// distribution. Two distributions are equal if and only if
	// their Params are equal.
	Params() Params

	// Equal reports whether x is a distribution with the same
	// Params. Equality does not depend on the concrete type of x.
	Equal(x any) bool

	// String formats the family and parameters.
	String() string

	// Mean and Variance return the moments of this distribution.
	Mean() float64
	Variance() float64

	// PDF returns the value of the probability density function
	// of this distribution at y.
	PDF(y float64) float64

	// PDFEach returns PDF(ys[i]) for each i.
	PDFEach(ys []float64) []float64

	// CDF returns the value of the cumulative distribution
	// function for this distribution at y.
	CDF(y float64) float64

	// CDFEach returns CDF(ys[i]) for each i.
	CDFEach(ys []float64) []float64

	// PPF returns the quantile function at q, the inverse of CDF.
	// Values of q outside [0, 1] are clamped.
	PPF(q float64) float64

	// PPFEach returns PPF(qs[i]) for each i.
	PPFEach(qs []float64) []float64

	// Bounds returns reasonable bounds for this distribution's
	// PDF and CDF. The total weight outside of these bounds
	// should be approximately 0.
	Bounds() (float64, float64)

	// Sample returns a random draw from this distribution using
	// rng, or the default generator of package random if rng is
	// nil.
	Sample(rng *rand.Rand) float64

	// SampleN returns n random draws.
	SampleN(n int, rng *rand.Rand) []float64

	// QuantileTuningCurve returns the value that the best of n
	// draws from this distribution does at least as well as with
	// probability q. With q = 0.5 it is the median of the best.
	// n need not be an integer, but must be positive.
	QuantileTuningCurve(n, q float64, obj Objective) (float64, error)

	// QuantileTuningCurveEach returns the quantile tuning curve
	// at each of ns.
	QuantileTuningCurveEach(ns []float64, q float64, obj Objective) ([]float64, error)

	// AverageTuningCurve returns the expected value of the best
	// of n draws from this distribution. n need not be an
	// integer, but must be positive.
	AverageTuningCurve(n float64, obj Objective) (float64, error)

	// AverageTuningCurveEach returns the average tuning curve at
	// each of ns.
	AverageTuningCurveEach(ns []float64, obj Objective) ([]float64, error)
}

// Family identifies a family of distributions.
type Family string

const (
	QuadraticFamily      Family = "QuadraticDistribution"
	NoisyQuadraticFamily Family = "NoisyQuadraticDistribution"
)

// Params is the family and parameter tuple of a distribution.
// Parameters a family does not use are zero.
type Params struct {
	Family Family
	A, B   float64
	C      int
	O      float64
	Convex bool
}

// equalParams reports whether x has the parameters p.
func equalParams(p Params, x any) bool {
	d, ok := x.(interface{ Params() Params })
	return ok && d.Params() == p
}

// Objective selects whether a tuning curve tracks the running minimum
// or the running maximum.
type Objective int

const (
	// Auto minimizes for convex distributions and maximizes for
	// concave ones.
	Auto Objective = iota
	Minimize
	Maximize
)

func (o Objective) String() string {
	switch o {
	case Auto:
		return "Auto"
	case Minimize:
		return "Minimize"
	case Maximize:
		return "Maximize"
	}
	return "Objective(" + strconv.Itoa(int(o)) + ")"
}

// minimize resolves o for a distribution with the given convexity.
func (o Objective) minimize(convex bool) bool {
	switch o {
	case Minimize:
		return true
	case Maximize:
		return false
	}
	return convex
}

// formatFloat formats x in the shortest form that round-trips, always
// including a decimal point or exponent for finite values.
func formatFloat(x float64) string {
	s := strconv.FormatFloat(x, 'g', -1, 64)
	if math.IsInf(x, 0) || math.IsNaN(x) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

func each(f func(float64) float64, xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = f(x)
	}
	return res
}
