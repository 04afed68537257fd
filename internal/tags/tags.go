// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package tags stores runtime-bound tags during expansion.
package tags

import "strings"

// Policy controls tag visibility during recursive expansion.
type Policy int

const (
	// Flat keeps all tags in one table for the lifetime of an expand call.
	Flat Policy = iota
	// Scoped discards tags bound inside a nested expansion when that
	// expansion completes, shadowing same-named outer tags meanwhile.
	Scoped
)

// String returns the string representation of a Policy.
func (p Policy) String() string {
	switch p {
	case Flat:
		return "FLAT"
	case Scoped:
		return "SCOPED"
	}
	return "UNKNOWN"
}

// ParsePolicy parses a string into a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToUpper(s) {
	case "FLAT":
		return Flat, true
	case "SCOPED":
		return Scoped, true
	}
	return Flat, false
}

// Store maps tag names to their bound values. It is not safe for concurrent
// use; one expand call owns it at a time.
type Store struct {
	policy Policy
	frames []map[string]string // frames[0] is the root frame
}

// NewStore creates a Store with the given policy. The policy is fixed for
// the store's lifetime.
func NewStore(p Policy) *Store {
	return &Store{
		policy: p,
		frames: []map[string]string{{}},
	}
}

// Policy returns the store's policy.
func (s *Store) Policy() Policy {
	return s.policy
}

// Bind binds a tag in the innermost frame, shadowing any outer binding
// under the scoped policy and overwriting under the flat policy.
func (s *Store) Bind(name, value string) {
	s.frames[len(s.frames)-1][name] = value
}

// Lookup searches innermost to outermost and returns the first match.
func (s *Store) Lookup(name string) (string, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	return "", false
}

// RemoveAll discards every binding and every frame except an empty root.
func (s *Store) RemoveAll() {
	s.frames = []map[string]string{{}}
}

// EnterScope opens a shadow frame under the scoped policy; no-op when flat.
func (s *Store) EnterScope() {
	if s.policy == Scoped {
		s.frames = append(s.frames, map[string]string{})
	}
}

// ExitScope discards the innermost frame and everything bound within it
// under the scoped policy; no-op when flat. The root frame is never popped.
func (s *Store) ExitScope() {
	if s.policy == Scoped && len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the number of open shadow frames, root included.
func (s *Store) Depth() int {
	return len(s.frames)
}
