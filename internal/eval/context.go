// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

package eval

import (
	"errors"
	"fmt"
)

// MaxStackDepth bounds the recursion depth of every engine constructed after
// it is set. It is the primary defense against cyclic rule graphs.
var MaxStackDepth = 256

// ErrStackOverflow is returned when an expansion exceeds the maximum
// recursion depth. It aborts the whole expand call.
var ErrStackOverflow = errors.New("stack overflow")

// contextStack tracks the chain of in-progress rule and tag evaluations.
// Its depth equals the evaluator's current recursion depth.
type contextStack struct {
	frames []string
	max    int
}

func newContextStack(max int) *contextStack {
	return &contextStack{max: max}
}

// enter pushes an evaluation frame, failing when the configured maximum
// would be exceeded.
func (c *contextStack) enter(label string) error {
	if len(c.frames)+1 > c.max {
		return fmt.Errorf("expanding %q at depth %d: %w", label, len(c.frames), ErrStackOverflow)
	}
	c.frames = append(c.frames, label)
	return nil
}

// leave pops the innermost frame, floored at zero.
func (c *contextStack) leave() {
	if len(c.frames) > 0 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

func (c *contextStack) depth() int {
	return len(c.frames)
}

func (c *contextStack) reset() {
	c.frames = c.frames[:0]
}
