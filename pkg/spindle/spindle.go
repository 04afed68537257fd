// Package spindle provides the public API for the spindle generative-grammar
// engine. A Grammar compiles a rule book into an AST once and then expands
// input strings into varied procedural text.
package spindle

import (
	"loomworks.net/spindle/internal/eval"
	"loomworks.net/spindle/internal/selector"
	"loomworks.net/spindle/internal/tags"
)

// Selector chooses a candidate index for a rule at each expansion. Custom
// implementations may be registered per rule.
type Selector = selector.Selector

// CandidatesProvider synthesizes a rule's candidate strings on demand.
type CandidatesProvider = eval.CandidatesProvider

// Diagnostics receives fire-and-forget engine notifications.
type Diagnostics = eval.Diagnostics

// Policy controls tag visibility during recursive expansion.
type Policy = tags.Policy

// Tag-storage policies.
const (
	Flat   = tags.Flat
	Scoped = tags.Scoped
)

// SetMaxStackDepth overrides the process-wide recursion limit (default 256).
// It applies to Grammars constructed afterwards, not retroactively.
func SetMaxStackDepth(depth int) {
	eval.MaxStackDepth = depth
}

// Grammar is a compiled rule book plus the engine state needed to expand it.
// A Grammar is intended for single-threaded use; serialize concurrent
// Expand calls externally.
type Grammar struct {
	engine *eval.Engine
}

// New compiles a rule book into a Grammar. Rule definitions may be strings,
// string slices, CandidatesProviders or Selectors; anything else is
// stringified. Registration problems are reported through the diagnostics
// sink and never fail construction.
func New(rules map[string]any, opts ...Option) *Grammar {
	cfg := newConfig(opts)
	g := &Grammar{engine: eval.New(cfg.engineOptions()...)}
	if !cfg.noDefaultModifiers {
		registerDefaultModifiers(g.engine)
	}
	g.engine.AddRules(rules)
	return g
}

// Expand expands input into finished text, resetting tag storage and the
// recursion counter first. It never returns an error value: failures are
// encoded as an "error: "-prefixed result string.
func (g *Grammar) Expand(input string) string {
	return g.engine.Expand(input)
}

// ExpandRetainingTags expands input while sharing tag bindings with prior
// calls, for controlled composition.
func (g *Grammar) ExpandRetainingTags(input string) string {
	return g.engine.ExpandRetainingTags(input)
}

// Add registers one more rule after construction.
func (g *Grammar) Add(name string, definition any) {
	g.engine.AddRule(name, definition)
}

// AddModifier registers a value transform modifier.
func (g *Grammar) AddModifier(name string, fn func(string) string) {
	g.engine.AddModifier(name, fn)
}

// AddCall registers a side-effecting call modifier; text passes through.
func (g *Grammar) AddCall(name string, fn func()) {
	g.engine.AddCall(name, fn)
}

// AddMethod registers a parametrized modifier.
func (g *Grammar) AddMethod(name string, fn func(string, []string) string) {
	g.engine.AddMethod(name, fn)
}

// SetCandidateSelector replaces a rule's selection strategy. Unknown rules
// are a no-op with a diagnostic.
func (g *Grammar) SetCandidateSelector(rule string, sel Selector) {
	g.engine.SetCandidateSelector(rule, sel)
}

// RuleNames returns the registered rule names, sorted.
func (g *Grammar) RuleNames() []string {
	return g.engine.RuleNames()
}

// CandidateTexts returns the original candidate strings of a rule, or nil
// for an unknown rule.
func (g *Grammar) CandidateTexts(rule string) []string {
	return g.engine.CandidateTexts(rule)
}

// Analyze re-runs the rule-book analysis pass, emitting diagnostics for
// dangling references.
func (g *Grammar) Analyze() {
	g.engine.Analyze()
}
