// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package random holds the process-wide default random number
// generator.
//
// Functions that sample take an explicit *rand.Rand and fall back to
// Default when it is nil. Reseeding with SetSeed affects only those
// callers; callers that need reproducible streams under concurrency
// should use their own generator from New.
package random // import "github.com/opda/go-opda/random"

import (
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

// lockedSource is a rand.Source that is safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	src *rand.PCGSource
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	n := s.src.Uint64()
	s.mu.Unlock()
	return n
}

func (s *lockedSource) Seed(seed uint64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

var (
	defaultSource = newLockedSource(uint64(time.Now().UnixNano()))
	defaultRand   = rand.New(defaultSource)
)

func newLockedSource(seed uint64) *lockedSource {
	s := &lockedSource{src: &rand.PCGSource{}}
	s.src.Seed(seed)
	return s
}

// Default returns the process-wide default generator. It is safe for
// concurrent use, but concurrent callers see an unspecified
// interleaving of its stream.
func Default() *rand.Rand {
	return defaultRand
}

// SetSeed reseeds the default generator.
func SetSeed(seed uint64) {
	defaultSource.Seed(seed)
}

// New returns a new generator seeded with seed. It is independent of
// the default generator and is not safe for concurrent use.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Or returns rng if it is non-nil and the default generator
// otherwise.
func Or(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return defaultRand
	}
	return rng
}
