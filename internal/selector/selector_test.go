package selector

import (
	"math/rand"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestPickFirst(t *testing.T) {
	var s PickFirst
	for i := 0; i < 10; i++ {
		if got := s.Pick(5); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	}
	if got := s.Pick(0); got != -1 {
		t.Errorf("expected -1 on empty, got %d", got)
	}
}

func TestShuffledFullPass(t *testing.T) {
	const n = 7
	s := NewShuffled(n, testRand())

	// Every pass of n picks must return each index exactly once.
	for pass := 0; pass < 3; pass++ {
		seen := make(map[int]int)
		for i := 0; i < n; i++ {
			idx := s.Pick(n)
			if idx < 0 || idx >= n {
				t.Fatalf("index out of range: %d", idx)
			}
			seen[idx]++
		}
		for idx, count := range seen {
			if count != 1 {
				t.Errorf("pass %d: index %d returned %d times", pass, idx, count)
			}
		}
		if len(seen) != n {
			t.Errorf("pass %d: only %d distinct indices", pass, len(seen))
		}
	}
}

func TestShuffledCountMismatchPanics(t *testing.T) {
	s := NewShuffled(3, testRand())
	defer func() {
		if recover() == nil {
			t.Error("expected panic on count mismatch")
		}
	}()
	s.Pick(4)
}

func TestWeightedProportions(t *testing.T) {
	weights := []int{1, 3, 6}
	s := NewWeighted(weights, testRand())

	const draws = 100000
	counts := make([]int, len(weights))
	for i := 0; i < draws; i++ {
		idx := s.Pick(len(weights))
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	for i, w := range weights {
		want := float64(w) / float64(total)
		got := float64(counts[i]) / float64(draws)
		if diff := got - want; diff > 0.01 || diff < -0.01 {
			t.Errorf("index %d: frequency %.3f, want %.3f", i, got, want)
		}
	}
}

func TestWeightedDefaultsBelowOne(t *testing.T) {
	s := NewWeighted([]int{0, -2}, testRand())
	counts := make([]int, 2)
	for i := 0; i < 1000; i++ {
		counts[s.Pick(2)]++
	}
	// Both clamp to weight 1, so both must be drawn.
	if counts[0] == 0 || counts[1] == 0 {
		t.Errorf("expected both indices drawn, got %v", counts)
	}
}

func TestWeightedCountMismatchPanics(t *testing.T) {
	s := NewWeighted([]int{1, 1}, testRand())
	defer func() {
		if recover() == nil {
			t.Error("expected panic on count mismatch")
		}
	}()
	s.Pick(3)
}
