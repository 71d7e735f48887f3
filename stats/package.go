// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats provides confidence and credible intervals for
// binomial proportions and beta-distributed quantities.
package stats // import "github.com/opda/go-opda/stats"

import (
	"errors"
	"fmt"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrDomain is returned when an argument lies outside the
	// domain of a function. Errors returned by this package and
	// by package parametric wrap ErrDomain, so callers can test
	// for it with errors.Is.
	ErrDomain = errors.New("argument out of domain")

	// ErrShape is returned when slice arguments cannot be
	// broadcast against each other.
	ErrShape = fmt.Errorf("%w: mismatched shapes", ErrDomain)
)

// domainError returns an error wrapping ErrDomain that describes the
// violated constraint.
func domainError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

func checkUnit(name string, x float64) error {
	if !(0 <= x && x <= 1) {
		return domainError("%s (%v) must be between 0 and 1", name, x)
	}
	return nil
}

func checkShape(a, b float64) error {
	if !(a > 0) {
		return domainError("a (%v) must be positive", a)
	}
	if !(b > 0) {
		return domainError("b (%v) must be positive", b)
	}
	return nil
}
