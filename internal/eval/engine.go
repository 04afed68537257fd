// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package eval implements the spindle grammar engine: rule registry,
// modifier table, tag storage, context stack and the recursive evaluator.
package eval

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"loomworks.net/spindle/internal/node"
	"loomworks.net/spindle/internal/parser"
	"loomworks.net/spindle/internal/selector"
	"loomworks.net/spindle/internal/tags"
)

// CandidatesProvider synthesizes a rule's candidate strings on demand.
type CandidatesProvider interface {
	Candidates() []string
}

// Candidate is one concrete expansion text of a rule and its parsed form.
type Candidate struct {
	Text  string
	Nodes []node.Node
}

// RuleMapping owns a rule's candidates and the strategy that picks among
// them. The selector is hot-swappable after registration.
type RuleMapping struct {
	Candidates []*Candidate
	Selector   selector.Selector
}

type modifierKind int

const (
	transformKind modifierKind = iota
	callKind
	methodKind
)

type modifierEntry struct {
	kind      modifierKind
	transform func(string) string
	call      func()
	method    func(string, []string) string
}

// Engine holds the mutable state of one grammar interpreter. It is intended
// for single-threaded use; concurrent Expand calls on one Engine must be
// externally serialized.
type Engine struct {
	rules     map[string]*RuleMapping
	modifiers map[string]*modifierEntry
	tags      *tags.Store
	stack     *contextStack
	rng       *rand.Rand
	diag      Diagnostics
	analyze   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTagPolicy sets the tag-storage policy, fixed for the engine lifetime.
func WithTagPolicy(p tags.Policy) Option {
	return func(e *Engine) { e.tags = tags.NewStore(p) }
}

// WithDiagnostics sets the diagnostics sink.
func WithDiagnostics(d Diagnostics) Option {
	return func(e *Engine) { e.diag = d }
}

// WithSeed seeds the engine's random source for reproducible expansions.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithRandom sets the engine's random source directly.
func WithRandom(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithAnalysis toggles the rule-book analysis pass run after registration.
func WithAnalysis(enabled bool) Option {
	return func(e *Engine) { e.analyze = enabled }
}

// New creates an Engine with the given options. The recursion limit is
// snapshot from MaxStackDepth at construction.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:     make(map[string]*RuleMapping),
		modifiers: make(map[string]*modifierEntry),
		tags:      tags.NewStore(tags.Flat),
		diag:      NewLogDiagnostics(os.Stderr),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.stack = newContextStack(MaxStackDepth)
	return e
}

// AddRule registers one rule. The definition may be a string, a []string, a
// CandidatesProvider, a selector.Selector, or anything else (stringified).
// Registration failures are diagnostics, never fatal.
func (e *Engine) AddRule(name string, definition any) {
	if name == "" || strings.ContainsAny(name, "#[") {
		e.diag.Warn("rule %q dropped: name must be plain text without '#' or '['", name)
		return
	}

	explicit, _ := definition.(selector.Selector)
	texts := candidateTexts(definition, explicit != nil)

	candidates := make([]*Candidate, 0, len(texts))
	weights := make([]int, 0, len(texts))
	weighted := false
	for _, text := range texts {
		nodes, err := parser.ParseCandidate(text)
		if err != nil {
			e.diag.Warn("rule %q: candidate %q dropped: %v", name, text, err)
			continue
		}
		// A weight annotation is always last; strip it into selector input.
		weight := 1
		if len(nodes) > 0 {
			if w, ok := nodes[len(nodes)-1].(node.Weight); ok {
				weight = w.Value
				weighted = true
				nodes = nodes[:len(nodes)-1]
			}
		}
		candidates = append(candidates, &Candidate{Text: text, Nodes: nodes})
		weights = append(weights, weight)
	}

	if len(candidates) == 0 {
		e.diag.Warn("rule %q dropped: no candidate survived parsing", name)
		return
	}

	sel := explicit
	if sel == nil {
		switch {
		case weighted:
			sel = selector.NewWeighted(weights, e.rng)
		case len(candidates) == 1:
			sel = selector.PickFirst{}
		default:
			sel = selector.NewShuffled(len(candidates), e.rng)
		}
	}

	if _, exists := e.rules[name]; exists {
		e.diag.Warn("rule %q re-registered: previous definition replaced", name)
	}
	e.rules[name] = &RuleMapping{Candidates: candidates, Selector: sel}
}

// candidateTexts normalizes a heterogeneous rule definition into candidate
// strings. A bare selector contributes no candidates of its own.
func candidateTexts(definition any, isSelector bool) []string {
	switch v := definition.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	}
	if p, ok := definition.(CandidatesProvider); ok {
		return p.Candidates()
	}
	if isSelector {
		return nil
	}
	return []string{fmt.Sprint(definition)}
}

// AddRules registers every entry of a rule book, in name order so that
// diagnostics are deterministic. Runs the analysis pass when enabled.
func (e *Engine) AddRules(book map[string]any) {
	names := make([]string, 0, len(book))
	for name := range book {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e.AddRule(name, book[name])
	}
	if e.analyze {
		e.Analyze()
	}
}

// SetCandidateSelector replaces a rule's selector after registration.
// Unknown rules are a no-op with a diagnostic.
func (e *Engine) SetCandidateSelector(rule string, sel selector.Selector) {
	mapping, ok := e.rules[rule]
	if !ok {
		e.diag.Warn("cannot set selector: unknown rule %q", rule)
		return
	}
	mapping.Selector = sel
}

// AddModifier registers a value transform. Its argument list, if any, is
// ignored at the call site.
func (e *Engine) AddModifier(name string, fn func(string) string) {
	e.setModifier(name, &modifierEntry{kind: transformKind, transform: fn})
}

// AddCall registers a side-effecting call. It passes its input through
// unchanged.
func (e *Engine) AddCall(name string, fn func()) {
	e.setModifier(name, &modifierEntry{kind: callKind, call: fn})
}

// AddMethod registers a parametrized modifier receiving the running text and
// the argument list.
func (e *Engine) AddMethod(name string, fn func(string, []string) string) {
	e.setModifier(name, &modifierEntry{kind: methodKind, method: fn})
}

func (e *Engine) setModifier(name string, entry *modifierEntry) {
	if _, exists := e.modifiers[name]; exists {
		e.diag.Warn("modifier %q re-registered: previous definition replaced", name)
	}
	e.modifiers[name] = entry
}

// HasRule reports whether a rule is registered.
func (e *Engine) HasRule(name string) bool {
	_, ok := e.rules[name]
	return ok
}

// RuleNames returns the registered rule names in sorted order.
func (e *Engine) RuleNames() []string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CandidateTexts returns the original candidate strings of a rule, or nil
// for an unknown rule.
func (e *Engine) CandidateTexts(rule string) []string {
	mapping, ok := e.rules[rule]
	if !ok {
		return nil
	}
	texts := make([]string, len(mapping.Candidates))
	for i, c := range mapping.Candidates {
		texts[i] = c.Text
	}
	return texts
}

// TagPolicy returns the engine's tag-storage policy.
func (e *Engine) TagPolicy() tags.Policy {
	return e.tags.Policy()
}
