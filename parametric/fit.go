// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/optimize"
)

// FitOptions configures Fit and FitNoisy.
type FitOptions struct {
	// Fraction is the share of the sample nearest the optimum that
	// the fitted CDF is matched against. Zero means 1.
	Fraction float64

	// MaxEvaluations limits the number of objective evaluations
	// in each optimization. Zero means 2000.
	MaxEvaluations int
}

func (o *FitOptions) withDefaults() FitOptions {
	var res FitOptions
	if o != nil {
		res = *o
	}
	if res.Fraction == 0 {
		res.Fraction = 1
	}
	if res.MaxEvaluations == 0 {
		res.MaxEvaluations = 2000
	}
	return res
}

const (
	// fitPoints is the largest number of empirical CDF points a
	// fit matches.
	fitPoints = 64

	// minFitC is the smallest shape a fit considers. It rounds to
	// c = 1.
	minFitC = 0.5

	// infeasible is the objective value outside a < b.
	infeasible = 1e10
)

// Fit fits a quadratic distribution to ys by minimizing the squared
// distance between its CDF and the empirical CDF of ys. It starts
// from EstimateInitialParametersAndBounds and stays within its
// bounds. c is fit as a real number, rounded to the nearest positive
// integer, and a and b are then refit with c fixed.
func Fit(ys []float64, convex bool, opts *FitOptions) (QuadraticDistribution, error) {
	o := opts.withDefaults()
	params, bounds, err := EstimateInitialParametersAndBounds(ys, o.Fraction, convex)
	if err != nil {
		return QuadraticDistribution{}, err
	}
	if math.IsNaN(params[2]) {
		// A point mass. Every c describes it.
		return NewQuadraticDistribution(params[0], params[1], 1, convex)
	}
	bounds[2][0] = minFitC
	params[2] = clamp(params[2], bounds[2][0], bounds[2][1])
	ts, ps := fitTargets(ys, o.Fraction, convex)

	x, err := minimize(func(x []float64) float64 {
		return cdfDistance(quadratic{x[0], x[1], x[2], convex}.cdf, ts, ps)
	}, params[:], bounds[:], o.MaxEvaluations)
	if err != nil {
		return QuadraticDistribution{}, err
	}

	c := roundShape(x[2])
	x, err = minimize(func(x []float64) float64 {
		return cdfDistance(quadratic{x[0], x[1], float64(c), convex}.cdf, ts, ps)
	}, x[:2], bounds[:2], o.MaxEvaluations)
	if err != nil {
		return QuadraticDistribution{}, err
	}
	return NewQuadraticDistribution(x[0], x[1], c, convex)
}

// FitNoisy is like Fit for the noisy quadratic distribution.
func FitNoisy(ys []float64, convex bool, opts *FitOptions) (NoisyQuadraticDistribution, error) {
	o := opts.withDefaults()
	params, bounds, err := EstimateNoisyInitialParametersAndBounds(ys, o.Fraction, convex)
	if err != nil {
		return NoisyQuadraticDistribution{}, err
	}
	if math.IsNaN(params[2]) {
		return NewNoisyQuadraticDistribution(params[0], params[1], 1, 0, convex)
	}
	bounds[2][0] = minFitC
	params[2] = clamp(params[2], bounds[2][0], bounds[2][1])
	ts, ps := fitTargets(ys, o.Fraction, convex)

	x, err := minimize(func(x []float64) float64 {
		return cdfDistance(noisy{quadratic{x[0], x[1], x[2], convex}, x[3]}.cdf, ts, ps)
	}, params[:], bounds[:], o.MaxEvaluations)
	if err != nil {
		return NoisyQuadraticDistribution{}, err
	}

	c := roundShape(x[2])
	x, err = minimize(func(x []float64) float64 {
		return cdfDistance(noisy{quadratic{x[0], x[1], float64(c), convex}, x[2]}.cdf, ts, ps)
	}, []float64{x[0], x[1], x[3]}, [][2]float64{bounds[0], bounds[1], bounds[3]}, o.MaxEvaluations)
	if err != nil {
		return NoisyQuadraticDistribution{}, err
	}
	return NewNoisyQuadraticDistribution(x[0], x[1], c, x[2], convex)
}

// fitTargets returns at most fitPoints sample values ts and their
// empirical CDF values ps, drawn from the share fraction of ys
// nearest the optimum.
func fitTargets(ys []float64, fraction float64, convex bool) (ts, ps []float64) {
	xs := append([]float64(nil), ys...)
	sort.Float64s(xs)
	n := float64(len(xs))
	var keep []int
	for i := range xs {
		p := (float64(i) + 0.5) / n
		if convex && p <= fraction || !convex && p >= 1-fraction {
			keep = append(keep, i)
		}
	}
	stride := max(1, (len(keep)+fitPoints-1)/fitPoints)
	for j := 0; j < len(keep); j += stride {
		i := keep[j]
		ts = append(ts, xs[i])
		ps = append(ps, (float64(i)+0.5)/n)
	}
	return ts, ps
}

// cdfDistance returns the mean squared difference between cdf(ts[i])
// and ps[i], or infeasible if cdf does not describe a distribution.
func cdfDistance(cdf func(float64) float64, ts, ps []float64) float64 {
	var sum float64
	for i, t := range ts {
		d := cdf(t) - ps[i]
		sum += d * d
	}
	if math.IsNaN(sum) {
		return infeasible
	}
	return sum / float64(len(ts))
}

// minimize minimizes f with the Nelder-Mead method starting from x0.
// Each coordinate is clamped to bounds before f sees it, and the
// clamped minimizer is returned. Points with x[0] >= x[1] are
// infeasible.
func minimize(f func([]float64) float64, x0 []float64, bounds [][2]float64, evals int) ([]float64, error) {
	clamped := func(x []float64) []float64 {
		y := make([]float64, len(x))
		for i := range x {
			y[i] = clamp(x[i], bounds[i][0], bounds[i][1])
		}
		return y
	}
	p := optimize.Problem{
		Func: func(x []float64) float64 {
			y := clamped(x)
			if !(y[0] < y[1]) {
				return infeasible
			}
			return f(y)
		},
	}
	res, err := optimize.Minimize(p, x0, &optimize.Settings{FuncEvaluations: evals}, &optimize.NelderMead{})
	if res == nil {
		return nil, err
	}
	if err != nil && !(res.F < infeasible) {
		return nil, err
	}
	return clamped(res.X), nil
}

func roundShape(c float64) int {
	return max(1, int(math.Round(math.Min(c, 1<<30))))
}
