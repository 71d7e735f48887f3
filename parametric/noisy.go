// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"fmt"
	"math"

	"github.com/opda/go-opda/random"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// NoisyQuadraticDistribution is a quadratic distribution plus
// independent Gaussian noise with standard deviation o. It models
// scores measured with evaluation noise.
//
// With o == 0 it behaves exactly like the QuadraticDistribution with
// the same a, b, c and convex, though the two are never Equal.
type NoisyQuadraticDistribution struct {
	a, b   float64
	c      int
	o      float64
	convex bool
}

// NewNoisyQuadraticDistribution returns the noisy quadratic
// distribution with the given parameters. It requires a <= b, c > 0
// and o >= 0.
func NewNoisyQuadraticDistribution(a, b float64, c int, o float64, convex bool) (NoisyQuadraticDistribution, error) {
	if _, err := NewQuadraticDistribution(a, b, c, convex); err != nil {
		return NoisyQuadraticDistribution{}, err
	}
	if !(o >= 0) || math.IsInf(o, 1) {
		return NoisyQuadraticDistribution{}, domainError("o (%v) must be finite and non-negative", o)
	}
	return NoisyQuadraticDistribution{a, b, c, o, convex}, nil
}

func (d NoisyQuadraticDistribution) A() float64   { return d.a }
func (d NoisyQuadraticDistribution) B() float64   { return d.b }
func (d NoisyQuadraticDistribution) C() int       { return d.c }
func (d NoisyQuadraticDistribution) O() float64   { return d.o }
func (d NoisyQuadraticDistribution) Convex() bool { return d.convex }

// Base returns the distribution of the score without noise.
func (d NoisyQuadraticDistribution) Base() QuadraticDistribution {
	return QuadraticDistribution{d.a, d.b, d.c, d.convex}
}

func (d NoisyQuadraticDistribution) shape() noisy {
	return noisy{d.Base().shape(), d.o}
}

func (d NoisyQuadraticDistribution) Params() Params {
	return Params{Family: NoisyQuadraticFamily, A: d.a, B: d.b, C: d.c, O: d.o, Convex: d.convex}
}

func (d NoisyQuadraticDistribution) Equal(x any) bool {
	return equalParams(d.Params(), x)
}

func (d NoisyQuadraticDistribution) String() string {
	return fmt.Sprintf("NoisyQuadraticDistribution(a=%s, b=%s, c=%d, o=%s, convex=%t)",
		formatFloat(d.a), formatFloat(d.b), d.c, formatFloat(d.o), d.convex)
}

func (d NoisyQuadraticDistribution) Mean() float64 {
	return d.Base().Mean()
}

func (d NoisyQuadraticDistribution) Variance() float64 {
	return d.Base().Variance() + d.o*d.o
}

func (d NoisyQuadraticDistribution) PDF(y float64) float64 { return d.shape().pdf(y) }
func (d NoisyQuadraticDistribution) CDF(y float64) float64 { return d.shape().cdf(y) }
func (d NoisyQuadraticDistribution) PPF(q float64) float64 { return d.shape().ppf(q) }

func (d NoisyQuadraticDistribution) PDFEach(ys []float64) []float64 { return each(d.PDF, ys) }
func (d NoisyQuadraticDistribution) CDFEach(ys []float64) []float64 { return each(d.CDF, ys) }
func (d NoisyQuadraticDistribution) PPFEach(qs []float64) []float64 { return each(d.PPF, qs) }

func (d NoisyQuadraticDistribution) Bounds() (float64, float64) {
	return d.a - NoiseReach*d.o, d.b + NoiseReach*d.o
}

func (d NoisyQuadraticDistribution) Sample(rng *rand.Rand) float64 {
	rng = random.Or(rng)
	y := d.Base().Sample(rng)
	if d.o == 0 {
		return y
	}
	return y + d.o*rng.NormFloat64()
}

func (d NoisyQuadraticDistribution) SampleN(n int, rng *rand.Rand) []float64 {
	rng = random.Or(rng)
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = d.Sample(rng)
	}
	return ys
}

func (d NoisyQuadraticDistribution) QuantileTuningCurve(n, q float64, obj Objective) (float64, error) {
	ys, err := d.QuantileTuningCurveEach([]float64{n}, q, obj)
	if err != nil {
		return nan, err
	}
	return ys[0], nil
}

func (d NoisyQuadraticDistribution) QuantileTuningCurveEach(ns []float64, q float64, obj Objective) ([]float64, error) {
	return quantileTuningCurve(d.PPF, ns, q, obj.minimize(d.convex))
}

func (d NoisyQuadraticDistribution) AverageTuningCurve(n float64, obj Objective) (float64, error) {
	ys, err := d.AverageTuningCurveEach([]float64{n}, obj)
	if err != nil {
		return nan, err
	}
	return ys[0], nil
}

// AverageTuningCurveEach returns the expected best of each ns[i]
// draws. For the minimum M of n draws on [lo, hi], E[M] is lo plus
// the integral of (1-F)^n; for the maximum, it is hi minus the
// integral of F^n.
func (d NoisyQuadraticDistribution) AverageTuningCurveEach(ns []float64, obj Objective) ([]float64, error) {
	if d.o == 0 {
		return d.Base().AverageTuningCurveEach(ns, obj)
	}
	if err := checkNs(ns); err != nil {
		return nil, err
	}
	minimize := obj.minimize(d.convex)
	s := d.shape()
	lo, hi := d.Bounds()
	ys := make([]float64, len(ns))
	for i, n := range ns {
		if minimize {
			ys[i] = lo + integrate(func(y float64) float64 {
				return math.Pow(1-s.cdf(y), n)
			}, lo, hi)
		} else {
			ys[i] = hi - integrate(func(y float64) float64 {
				return math.Pow(s.cdf(y), n)
			}, lo, hi)
		}
	}
	return ys, nil
}

// ppfSteps bounds the noisy PPF's bisection, and ppfExpand bounds how
// many times its initial bracket is doubled.
const (
	ppfSteps  = 64
	ppfExpand = 64
)

// noisy is a noisy quadratic distribution with a real-valued shape c.
type noisy struct {
	quadratic
	o float64
}

// window returns the range of s = sqrt(unit(x)) for which x is
// within NoiseReach·o of y, and the base probability mass lying
// entirely below that range of x.
func (d noisy) window(y float64) (slo, shi, below float64) {
	w := d.b - d.a
	u, r := d.unit(y), NoiseReach*d.o/w
	ulo, uhi := clamp(u-r, 0, 1), clamp(u+r, 0, 1)
	if d.convex {
		below = math.Pow(ulo, d.c/2)
	} else {
		below = 1 - math.Pow(uhi, d.c/2)
	}
	return math.Sqrt(ulo), math.Sqrt(uhi), below
}

// at returns the base variate at s = sqrt(unit(x)).
func (d noisy) at(s float64) float64 {
	if d.convex {
		return d.a + (d.b-d.a)*s*s
	}
	return d.b - (d.b-d.a)*s*s
}

// The base variate is a function of U^(2/c) with U uniform. Writing
// U = s^c turns the convolution integral over U into an integral of
// c·s^(c-1)·K(y - x(s)) over s in [0, 1], whose integrand is smooth
// for every integer c.

func (d noisy) cdf(y float64) float64 {
	switch {
	case d.o == 0:
		return d.quadratic.cdf(y)
	case math.IsNaN(y):
		return nan
	case d.a == d.b:
		return distuv.Normal{Mu: d.a, Sigma: d.o}.CDF(y)
	}
	slo, shi, below := d.window(y)
	return below + integrate(func(s float64) float64 {
		return d.c * math.Pow(s, d.c-1) * distuv.UnitNormal.CDF((y-d.at(s))/d.o)
	}, slo, shi)
}

func (d noisy) pdf(y float64) float64 {
	switch {
	case d.o == 0:
		return d.quadratic.pdf(y)
	case math.IsNaN(y):
		return nan
	case d.a == d.b:
		return distuv.Normal{Mu: d.a, Sigma: d.o}.Prob(y)
	}
	slo, shi, _ := d.window(y)
	return integrate(func(s float64) float64 {
		return d.c * math.Pow(s, d.c-1) * distuv.UnitNormal.Prob((y-d.at(s))/d.o)
	}, slo, shi) / d.o
}

func (d noisy) ppf(q float64) float64 {
	switch {
	case d.o == 0:
		return d.quadratic.ppf(q)
	case math.IsNaN(q):
		return nan
	case q <= 0:
		return -inf
	case q >= 1:
		return inf
	}
	lo, hi := d.a-d.o, d.b+d.o
	for i := 0; i < ppfExpand && d.cdf(lo) > q; i++ {
		lo -= hi - lo
	}
	for i := 0; i < ppfExpand && d.cdf(hi) < q; i++ {
		hi += hi - lo
	}
	for i := 0; i < ppfSteps; i++ {
		mid := lo + (hi-lo)/2
		if d.cdf(mid) < q {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + (hi-lo)/2
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
