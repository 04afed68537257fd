// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package selector provides candidate-selection strategies for rules.
package selector

import (
	"fmt"
	"math/rand"
	"sort"
)

// Selector chooses a candidate index for a rule at each expansion.
type Selector interface {
	// Pick returns an index in [0, count). It returns -1 when count is 0.
	Pick(count int) int
}

// PickFirst always selects index 0. It is stateless and installed
// automatically for single-candidate rules.
type PickFirst struct{}

func (PickFirst) Pick(count int) int {
	if count == 0 {
		return -1
	}
	return 0
}

// Shuffled cycles through a uniformly random permutation of the candidate
// indices. Every index is returned exactly once before a reshuffle, so no
// candidate repeats until all candidates have been shown.
type Shuffled struct {
	rng    *rand.Rand
	perm   []int
	cursor int
}

// NewShuffled creates a Shuffled selector bound to count candidates.
func NewShuffled(count int, rng *rand.Rand) *Shuffled {
	return &Shuffled{rng: rng, perm: rng.Perm(count)}
}

func (s *Shuffled) Pick(count int) int {
	if count != len(s.perm) {
		panic(fmt.Sprintf("selector: Shuffled built for %d candidates, asked to pick over %d", len(s.perm), count))
	}
	if count == 0 {
		return -1
	}
	if s.cursor == len(s.perm) {
		s.perm = s.rng.Perm(count)
		s.cursor = 0
	}
	idx := s.perm[s.cursor]
	s.cursor++
	return idx
}

// Weighted selects indices with probability proportional to their weights.
// Weights are fixed at construction, one per candidate.
type Weighted struct {
	rng   *rand.Rand
	cum   []int // cumulative weight sums, aligned with candidates
	total int
}

// NewWeighted creates a Weighted selector from per-candidate weights.
// Weights below 1 are treated as 1.
func NewWeighted(weights []int, rng *rand.Rand) *Weighted {
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w < 1 {
			w = 1
		}
		total += w
		cum[i] = total
	}
	return &Weighted{rng: rng, cum: cum, total: total}
}

func (w *Weighted) Pick(count int) int {
	if count != len(w.cum) {
		panic(fmt.Sprintf("selector: Weighted built for %d candidates, asked to pick over %d", len(w.cum), count))
	}
	if count == 0 {
		return -1
	}
	n := w.rng.Intn(w.total)
	return sort.SearchInts(w.cum, n+1)
}
