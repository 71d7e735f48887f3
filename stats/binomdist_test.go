// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestBinomialDist(t *testing.T) {
	dist := BinomialDist{N: 5, P: 0.2}
	testFunc(t, fmt.Sprintf("%+v.PMF", dist), dist.PMF,
		map[float64]float64{
			-1:  0,
			0:   0.32768,
			1:   0.4096,
			1.5: 0.4096,
			4:   0.0064,
			5:   math.Pow(dist.P, 5),
			6:   0,
		})
	testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)

	for _, n := range []int{1, 10, 30} {
		for _, p := range []float64{0.01, 0.3, 0.5, 0.95} {
			dist := BinomialDist{N: n, P: p}
			ref := distuv.Binomial{N: float64(n), P: p}
			for k := 0; k <= n; k++ {
				x := float64(k)
				if got, want := dist.PMF(x), ref.Prob(x); !aeqTol(want, got, 1e-12) {
					t.Errorf("%+v.PMF(%d) = %v, want %v", dist, k, got, want)
				}
				if got, want := dist.CDF(x), ref.CDF(x); !aeqTol(want, got, 1e-12) {
					t.Errorf("%+v.CDF(%d) = %v, want %v", dist, k, got, want)
				}
			}
			if !aeq(ref.Mean(), dist.Mean()) || !aeq(ref.Variance(), dist.Variance()) {
				t.Errorf("%+v: moments %v, %v, want %v, %v", dist, dist.Mean(), dist.Variance(), ref.Mean(), ref.Variance())
			}
		}
	}
}

func TestBinomialDistDegenerate(t *testing.T) {
	for _, p := range []float64{0, 1} {
		dist := BinomialDist{N: 4, P: p}
		at := 4 * p
		for k := 0.0; k <= 4; k++ {
			want := 0.0
			if k == at {
				want = 1
			}
			if got := dist.PMF(k); got != want {
				t.Errorf("%+v.PMF(%v) = %v, want %v", dist, k, got, want)
			}
		}
		testDiscreteCDF(t, fmt.Sprintf("%+v.CDF", dist), dist)
	}
}

func TestBinomialDistNormalApprox(t *testing.T) {
	// Only the center of a symmetric binomial is close to its
	// normal approximation.
	dist := BinomialDist{N: 30, P: 0.5}
	norm := dist.NormalApprox()
	if norm.Mu != 15 || !aeq(math.Sqrt(7.5), norm.Sigma) {
		t.Errorf("NormalApprox() = %+v", norm)
	}
	for k := 10.0; k <= 20; k++ {
		b := dist.PMF(k)
		n := norm.CDF(k+0.5) - norm.CDF(k-0.5)
		if math.Abs(b/n-1) > 0.01 {
			t.Errorf("PMF(%v) = %v, normal approximation %v", k, b, n)
		}
	}
}
