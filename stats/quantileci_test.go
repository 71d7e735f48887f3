// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"testing"
)

type quantileCITest struct {
	n                int
	q, confidence    float64
	loOrder, hiOrder int
	achieved         float64
	ambiguous        bool
}

func (test quantileCITest) check(t *testing.T) {
	t.Helper()
	res := QuantileCI(test.n, test.q, test.confidence)
	if res.LoOrder != test.loOrder || res.HiOrder != test.hiOrder || !aeq(test.achieved, res.Confidence) || res.Ambiguous != test.ambiguous {
		t.Errorf("QuantileCI(%d, %v, %v) = [%d,%d]@%v ambiguous=%v, want [%d,%d]@%v ambiguous=%v",
			test.n, test.q, test.confidence,
			res.LoOrder, res.HiOrder, res.Confidence, res.Ambiguous,
			test.loOrder, test.hiOrder, test.achieved, test.ambiguous)
	}
}

func TestQuantileCIExact(t *testing.T) {
	pmf := func(n int, p float64, k float64) float64 {
		return BinomialDist{N: n, P: p}.PMF(k)
	}
	for _, test := range []quantileCITest{
		// Low confidence falls directly around the quantile.
		{4, 0.5, 0.001, 2, 3, 0.375, false},
		{4, 0.25, 0.001, 1, 2, 0.421875, false},
		{4, 0, 0.001, 0, 1, 1, false},
		{4, 0.0001, 0.001, 0, 1, pmf(4, 0.0001, 0), false},
		{4, 1, 0.001, 4, 5, 1, false},
		{4, 0.999, 0.001, 4, 5, pmf(4, 0.999, 4), false},
		// Exactly the center band, and just beyond it, where
		// ties break to the left.
		{4, 0.5, 0.375, 2, 3, 0.375, false},
		{4, 0.5, 0.3750001, 1, 3, 0.375 + 0.25, true},
		{4, 0.5, 1, 0, 5, 1, false},
		{4, 0.5, 0.99, 0, 5, 1, false},
		{4, 0.5, 0.99 - 0.0625, 0, 4, 0.375 + 2*0.25 + 0.0625, true},

		// Odd sample sizes have two modes.
		{5, 0.5, 0.001, 2, 3, 0.3125, true},
		{5, 0.5, 0.3125, 2, 3, 0.3125, true},
		{5, 0.5, 0.3125001, 2, 4, 2 * 0.3125, false},
		{5, 0.5, 1, 0, 6, 1, false},
		{5, 0.5, 0.99, 0, 6, 1, false},
		{5, 0.5, 0.99 - 0.03125, 0, 5, 1 - 0.03125, true},
	} {
		test.check(t)
	}
}

func TestQuantileCIApprox(t *testing.T) {
	defer func(x int) { quantileCIApproxThreshold = x }(quantileCIApproxThreshold)
	quantileCIApproxThreshold = 0

	// band returns the normal approximation's mass for k samples
	// below the median.
	band := func(n int, k float64) float64 {
		norm := BinomialDist{N: n, P: 0.5}.NormalApprox()
		return norm.CDF(k+0.5) - norm.CDF(k-0.5)
	}
	b4 := func(ks ...float64) float64 {
		sum := 0.0
		for _, k := range ks {
			sum += band(4, k)
		}
		return sum
	}
	for _, test := range []quantileCITest{
		{4, 0.5, 0.001, 2, 3, b4(2), false},
		{4, 0.5, b4(2), 2, 3, b4(2), false},
		{4, 0.5, b4(2) + 0.00001, 1, 3, b4(1, 2), true},
		{4, 0.5, 1, 0, 5, 1, false},
		// The normal tails are heavy enough that 0.99 still
		// needs the whole range.
		{4, 0.5, 0.99, 0, 5, 1, false},
		{4, 0.5, 0.90, 0, 4, b4(0, 1, 2, 3), true},

		{5, 0.5, 0.001, 2, 3, band(5, 2), true},
		{5, 0.5, band(5, 2), 2, 3, band(5, 2), true},
		{5, 0.5, band(5, 2) + 0.00001, 2, 4, band(5, 2) + band(5, 3), false},

		// Extreme quantiles.
		{5, 0, 0.95, 0, 1, 1, false},
		{5, 0.001, 0.95, 0, 1, 1, false},
		{5, 1, 0.95, 5, 6, 1, false},
		{5, 0.999, 0.95, 5, 6, 1, false},
	} {
		test.check(t)
	}
}

func TestQuantileCIMass(t *testing.T) {
	// The achieved confidence of an exact interval is the binomial
	// mass of the gaps it spans, and meets the request.
	for n := 1; n <= quantileCIApproxThreshold; n++ {
		for _, q := range []float64{0.1, 0.5, 0.8} {
			for _, confidence := range []float64{0.5, 0.9, 0.95} {
				res := QuantileCI(n, q, confidence)
				dist := BinomialDist{N: n, P: q}
				mass := 0.0
				for k := res.LoOrder; k < res.HiOrder; k++ {
					mass += dist.PMF(float64(k))
				}
				name := fmt.Sprintf("QuantileCI(%d, %v, %v)", n, q, confidence)
				if !aeq(mass, res.Confidence) {
					t.Errorf("%s: confidence %v, spans mass %v", name, res.Confidence, mass)
				}
				if res.Confidence < confidence-1e-12 {
					t.Errorf("%s: confidence %v below request", name, res.Confidence)
				}
				if res.LoOrder < 0 || res.HiOrder > n+1 || res.LoOrder >= res.HiOrder {
					t.Errorf("%s: orders [%d,%d]", name, res.LoOrder, res.HiOrder)
				}
			}
		}
	}
}

func TestQuantileCIFromSample(t *testing.T) {
	// Reversed so FromSample has to sort.
	xs := []float64{4, 3, 2, 1}
	for _, test := range []struct {
		q      float64
		lo, hi float64
	}{
		{0.5, 2, 3},
		{0.25, 1, 2},
		{0, math.Inf(-1), 1},
		{1, 4, math.Inf(1)},
	} {
		lo, hi := QuantileCI(len(xs), test.q, 0.001).FromSample(xs)
		if lo != test.lo || hi != test.hi {
			t.Errorf("q=%v: FromSample gives [%v,%v], want [%v,%v]", test.q, lo, hi, test.lo, test.hi)
		}
	}
	if xs[0] != 4 {
		t.Errorf("FromSample modified its argument: %v", xs)
	}
}

func BenchmarkQuantileCI(b *testing.B) {
	defer func(x int) { quantileCIApproxThreshold = x }(quantileCIApproxThreshold)
	for n := 5; n <= 100; n += 5 {
		for _, approx := range []bool{false, true} {
			if approx {
				quantileCIApproxThreshold = 0
			} else {
				quantileCIApproxThreshold = 1000
			}

			b.Run(fmt.Sprintf("n=%d/approx=%v", n, approx), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					QuantileCI(n, 0.5, 0.95)
				}
			})
		}
	}
}
