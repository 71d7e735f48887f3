// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"github.com/opda/go-opda/internal/bcast"
	"gonum.org/v1/gonum/stat/distuv"
)

// DKWEpsilon returns the half-width of the confidence band given by
// the Dvoretzky-Kiefer-Wolfowitz inequality for the empirical CDF of n
// samples:
//
//	ε = sqrt(log(2/α) / 2n)
//
// where 1-α is the confidence.
func DKWEpsilon(n int, confidence float64) (float64, error) {
	if n <= 0 {
		return nan, domainError("n (%d) must be positive", n)
	}
	if err := checkUnit("confidence", confidence); err != nil {
		return nan, err
	}
	return math.Sqrt(math.Log(2/(1-confidence)) / (2 * float64(n))), nil
}

// DKWEpsilonEach is the elementwise form of DKWEpsilon. Arguments of
// length 1 are broadcast.
func DKWEpsilonEach(ns []int, confidences []float64) ([]float64, error) {
	n, err := broadcastLen(len(ns), len(confidences))
	if err != nil {
		return nil, err
	}
	res := make([]float64, n)
	for i := range res {
		res[i], err = DKWEpsilon(bcast.At(ns, i), bcast.At(confidences, i))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// BinomialConfidenceInterval returns the equal-tailed Clopper-Pearson
// confidence interval for the success probability of a binomial
// distribution, given successes out of total trials.
//
// The Clopper-Pearson interval does not account for the discreteness
// of the binomial distribution, so it is conservative. The
// equal-tailed version is very conservative when successes is 0 or
// total.
//
// Clopper, C. and Pearson, E. S. (1934). "The Use of Confidence or
// Fiducial Limits Illustrated in the Case of the Binomial".
// Biometrika 26 (4): 404–413.
func BinomialConfidenceInterval(successes, total int, confidence float64) (lo, hi float64, err error) {
	if successes < 0 {
		return nan, nan, domainError("successes (%d) must be greater than or equal to 0", successes)
	}
	if total < 1 {
		return nan, nan, domainError("total (%d) must be greater than or equal to 1", total)
	}
	if err := checkUnit("confidence", confidence); err != nil {
		return nan, nan, err
	}
	if successes > total {
		return nan, nan, domainError("successes (%d) must be less than or equal to total (%d)", successes, total)
	}

	k, n := float64(successes), float64(total)
	alpha := (1 - confidence) / 2
	lo, hi = 0, 1
	if successes > 0 {
		lo = betaQuantile(distuv.Beta{Alpha: k, Beta: n - k + 1}, alpha)
	}
	if successes < total {
		hi = betaQuantile(distuv.Beta{Alpha: k + 1, Beta: n - k}, 1-alpha)
	}
	return lo, hi, nil
}

// BinomialConfidenceIntervalEach is the elementwise form of
// BinomialConfidenceInterval. Arguments of length 1 are broadcast.
func BinomialConfidenceIntervalEach(successes, totals []int, confidences []float64) (los, his []float64, err error) {
	n, err := broadcastLen(len(successes), len(totals), len(confidences))
	if err != nil {
		return nil, nil, err
	}
	los, his = make([]float64, n), make([]float64, n)
	for i := range los {
		los[i], his[i], err = BinomialConfidenceInterval(bcast.At(successes, i), bcast.At(totals, i), bcast.At(confidences, i))
		if err != nil {
			return nil, nil, err
		}
	}
	return los, his, nil
}
