// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parametric

import "gonum.org/v1/gonum/integrate/quad"

var (
	// QuadratureNodes is the number of Gauss-Legendre nodes in each
	// panel of the composite rule used by the noisy quadratic
	// distribution.
	QuadratureNodes = 16

	// QuadraturePanels is the number of equal-width panels the
	// integration range is split into.
	QuadraturePanels = 32

	// NoiseReach is how many noise standard deviations from a
	// point the noisy quadratic distribution integrates over. The
	// Gaussian mass beyond it is below 1e-23.
	NoiseReach = 10.0
)

// integrate returns the integral of f over [lo, hi] using the
// composite Gauss-Legendre rule. It returns 0 if the range is empty.
func integrate(f func(float64) float64, lo, hi float64) float64 {
	if !(lo < hi) {
		return 0
	}
	x := make([]float64, QuadratureNodes)
	w := make([]float64, QuadratureNodes)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)

	width := (hi - lo) / float64(QuadraturePanels)
	var sum float64
	for p := 0; p < QuadraturePanels; p++ {
		x0 := lo + float64(p)*width
		for i := range x {
			sum += w[i] * f(x0+width*x[i])
		}
	}
	return sum * width
}
