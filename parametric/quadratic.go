// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"fmt"
	"math"

	"github.com/opda/go-opda/random"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mathext"
)

// QuadraticDistribution is the distribution of a quadratic function of
// c variables evaluated at a point drawn uniformly from a ball around
// its optimum. Its support is [a, b].
//
// If convex is true, the optimum a is a minimum and the distribution
// has CDF ((y-a)/(b-a))^(c/2). Otherwise b is the optimum, a maximum,
// and the CDF is 1 - ((b-y)/(b-a))^(c/2).
//
// The zero value is not a valid distribution. Use
// NewQuadraticDistribution.
type QuadraticDistribution struct {
	a, b   float64
	c      int
	convex bool
}

// NewQuadraticDistribution returns the quadratic distribution with the
// given parameters. It requires a <= b and c > 0. If a == b, the
// distribution is a point mass at a.
func NewQuadraticDistribution(a, b float64, c int, convex bool) (QuadraticDistribution, error) {
	if err := checkBounds(a, b); err != nil {
		return QuadraticDistribution{}, err
	}
	if c <= 0 {
		return QuadraticDistribution{}, domainError("c (%d) must be positive", c)
	}
	return QuadraticDistribution{a, b, c, convex}, nil
}

func (d QuadraticDistribution) A() float64   { return d.a }
func (d QuadraticDistribution) B() float64   { return d.b }
func (d QuadraticDistribution) C() int       { return d.c }
func (d QuadraticDistribution) Convex() bool { return d.convex }

func (d QuadraticDistribution) shape() quadratic {
	return quadratic{d.a, d.b, float64(d.c), d.convex}
}

func (d QuadraticDistribution) Params() Params {
	return Params{Family: QuadraticFamily, A: d.a, B: d.b, C: d.c, Convex: d.convex}
}

func (d QuadraticDistribution) Equal(x any) bool {
	return equalParams(d.Params(), x)
}

func (d QuadraticDistribution) String() string {
	return fmt.Sprintf("QuadraticDistribution(a=%s, b=%s, c=%d, convex=%t)",
		formatFloat(d.a), formatFloat(d.b), d.c, d.convex)
}

func (d QuadraticDistribution) Mean() float64     { return d.shape().mean() }
func (d QuadraticDistribution) Variance() float64 { return d.shape().variance() }

func (d QuadraticDistribution) PDF(y float64) float64 { return d.shape().pdf(y) }
func (d QuadraticDistribution) CDF(y float64) float64 { return d.shape().cdf(y) }
func (d QuadraticDistribution) PPF(q float64) float64 { return d.shape().ppf(q) }

func (d QuadraticDistribution) PDFEach(ys []float64) []float64 { return each(d.PDF, ys) }
func (d QuadraticDistribution) CDFEach(ys []float64) []float64 { return each(d.CDF, ys) }
func (d QuadraticDistribution) PPFEach(qs []float64) []float64 { return each(d.PPF, qs) }

func (d QuadraticDistribution) Bounds() (float64, float64) {
	return d.a, d.b
}

func (d QuadraticDistribution) Sample(rng *rand.Rand) float64 {
	if d.a == d.b {
		return d.a
	}
	return d.PPF(random.Or(rng).Float64())
}

func (d QuadraticDistribution) SampleN(n int, rng *rand.Rand) []float64 {
	rng = random.Or(rng)
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = d.Sample(rng)
	}
	return ys
}

func (d QuadraticDistribution) QuantileTuningCurve(n, q float64, obj Objective) (float64, error) {
	ys, err := d.QuantileTuningCurveEach([]float64{n}, q, obj)
	if err != nil {
		return nan, err
	}
	return ys[0], nil
}

func (d QuadraticDistribution) QuantileTuningCurveEach(ns []float64, q float64, obj Objective) ([]float64, error) {
	return quantileTuningCurve(d.PPF, ns, q, obj.minimize(d.convex))
}

func (d QuadraticDistribution) AverageTuningCurve(n float64, obj Objective) (float64, error) {
	ys, err := d.AverageTuningCurveEach([]float64{n}, obj)
	if err != nil {
		return nan, err
	}
	return ys[0], nil
}

// AverageTuningCurveEach returns the expected best of each ns[i]
// draws. If U is uniform on [0, 1], the quadratic variate is an affine
// function of U^(2/c), and the expected minimum and maximum of n
// copies of U^(2/c) are n·B(n, 1+2/c) and n/(n+2/c).
func (d QuadraticDistribution) AverageTuningCurveEach(ns []float64, obj Objective) ([]float64, error) {
	if err := checkNs(ns); err != nil {
		return nil, err
	}
	minimize := obj.minimize(d.convex)
	e := 2 / float64(d.c)
	ys := make([]float64, len(ns))
	for i, n := range ns {
		// Expected extremes of n copies of (y-a)/(b-a) for the
		// convex case.
		lo := math.Exp(math.Log(n) + mathext.Lbeta(n, 1+e))
		hi := n / (n + e)
		switch {
		case d.convex && minimize:
			ys[i] = d.a + (d.b-d.a)*lo
		case d.convex:
			ys[i] = d.a + (d.b-d.a)*hi
		case minimize:
			ys[i] = d.b - (d.b-d.a)*hi
		default:
			ys[i] = d.b - (d.b-d.a)*lo
		}
	}
	return ys, nil
}

// quadratic is a quadratic distribution with a real-valued shape c.
// Fitting optimizes over continuous c.
type quadratic struct {
	a, b, c float64
	convex  bool
}

// unit maps y to its distance from the optimum, scaled to [0, 1].
func (d quadratic) unit(y float64) float64 {
	if d.convex {
		return (y - d.a) / (d.b - d.a)
	}
	return (d.b - y) / (d.b - d.a)
}

func (d quadratic) pdf(y float64) float64 {
	if d.a == d.b {
		if y == d.a {
			return inf
		}
		return 0
	}
	if !(d.a <= y && y <= d.b) {
		if math.IsNaN(y) {
			return nan
		}
		return 0
	}
	k := d.c / 2
	return k / (d.b - d.a) * math.Pow(d.unit(y), k-1)
}

func (d quadratic) cdf(y float64) float64 {
	switch {
	case math.IsNaN(y):
		return nan
	case y < d.a:
		return 0
	case y >= d.b:
		return 1
	}
	p := math.Pow(d.unit(y), d.c/2)
	if d.convex {
		return p
	}
	return 1 - p
}

func (d quadratic) ppf(q float64) float64 {
	switch {
	case math.IsNaN(q):
		return nan
	case q <= 0:
		return d.a
	case q >= 1:
		return d.b
	}
	e := 2 / d.c
	if d.convex {
		return d.a + (d.b-d.a)*math.Pow(q, e)
	}
	return d.b - (d.b-d.a)*math.Pow(1-q, e)
}

func (d quadratic) mean() float64 {
	r := d.c / (d.c + 2)
	if d.convex {
		return d.a + (d.b-d.a)*r
	}
	return d.b - (d.b-d.a)*r
}

func (d quadratic) variance() float64 {
	r := d.c / (d.c + 2)
	w := d.b - d.a
	return w * w * (d.c/(d.c+4) - r*r)
}

func checkBounds(a, b float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return domainError("a (%v) must be finite", a)
	}
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return domainError("b (%v) must be finite", b)
	}
	if a > b {
		return domainError("a (%v) must not exceed b (%v)", a, b)
	}
	return nil
}
