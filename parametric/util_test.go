// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/opda/go-opda/random"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

func aeqTol(expect, got, tol float64) bool {
	if expect == got {
		return true
	}
	if math.IsNaN(expect) || math.IsNaN(got) {
		return math.IsNaN(expect) && math.IsNaN(got)
	}
	return math.Abs(expect-got) <= tol*math.Max(1, math.Abs(expect))
}

func aeq(expect, got float64) bool {
	return aeqTol(expect, got, 1e-8)
}

func wantDomainError(t *testing.T, what string, err error) {
	t.Helper()
	if !errors.Is(err, ErrDomain) {
		t.Errorf("%s: want error wrapping ErrDomain, got %v", what, err)
	}
}

func mustQuadratic(t testing.TB, a, b float64, c int, convex bool) QuadraticDistribution {
	t.Helper()
	d, err := NewQuadraticDistribution(a, b, c, convex)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func mustNoisy(t testing.TB, a, b float64, c int, o float64, convex bool) NoisyQuadraticDistribution {
	t.Helper()
	d, err := NewNoisyQuadraticDistribution(a, b, c, o, convex)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// ecdfDistance returns the largest distance between cdf and the
// empirical CDF of ys.
func ecdfDistance(cdf func(float64) float64, ys []float64) float64 {
	xs := append([]float64(nil), ys...)
	sort.Float64s(xs)
	n := float64(len(xs))
	var d float64
	for i, x := range xs {
		f := cdf(x)
		d = math.Max(d, math.Max(math.Abs(f-float64(i)/n), math.Abs(f-float64(i+1)/n)))
	}
	return d
}

// testTuningCurveSim checks that the quantile and average tuning
// curves of dist match the running best of simulated draws.
func testTuningCurveSim(t *testing.T, dist Distribution, ns []int, minimize bool, tol float64) {
	t.Helper()
	const trials = 2000
	obj := Maximize
	if minimize {
		obj = Minimize
	}
	rng := newTestRand()
	for _, n := range ns {
		bests := make([]float64, trials)
		for i := range bests {
			ys := dist.SampleN(n, rng)
			best := ys[0]
			for _, y := range ys {
				if minimize && y < best || !minimize && y > best {
					best = y
				}
			}
			bests[i] = best
		}
		avg, err := dist.AverageTuningCurve(float64(n), obj)
		if err != nil {
			t.Fatal(err)
		}
		if got := stat.Mean(bests, nil); !aeqTol(avg, got, tol) {
			t.Errorf("%v n=%d %v: average tuning curve %v, simulated %v", dist, n, obj, avg, got)
		}
		med, err := dist.QuantileTuningCurve(float64(n), 0.5, obj)
		if err != nil {
			t.Fatal(err)
		}
		sort.Float64s(bests)
		if got := stat.Quantile(0.5, stat.Empirical, bests, nil); !aeqTol(med, got, tol) {
			t.Errorf("%v n=%d %v: median tuning curve %v, simulated %v", dist, n, obj, med, got)
		}
	}
}

func newTestRand() *rand.Rand {
	return random.New(1)
}
