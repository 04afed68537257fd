// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

package eval

import "loomworks.net/spindle/internal/node"

// Analyze walks the registered rule book and emits diagnostics for
// references that resolve to neither a rule nor any tag assigned anywhere in
// the book, and for rules that reference themselves directly. It never
// affects expansion; a flagged grammar still runs.
func (e *Engine) Analyze() {
	assigned := make(map[string]bool)
	for _, mapping := range e.rules {
		for _, c := range mapping.Candidates {
			collectTags(c.Nodes, assigned)
		}
	}

	for _, name := range e.RuleNames() {
		for _, c := range e.rules[name].Candidates {
			for _, ref := range collectRefs(c.Nodes, nil) {
				if ref == name {
					e.diag.Warn("rule %q references itself; expansion is bounded only by the depth limit", name)
					continue
				}
				if !e.HasRule(ref) && !assigned[ref] {
					e.diag.Warn("rule %q references %q, which is neither a rule nor an assigned tag", name, ref)
				}
			}
		}
	}
}

func collectTags(nodes []node.Node, into map[string]bool) {
	for _, n := range nodes {
		if decl, ok := n.(node.TagDecl); ok {
			into[decl.Name] = true
			collectTags(decl.Value, into)
		}
	}
}

func collectRefs(nodes []node.Node, into []string) []string {
	for _, n := range nodes {
		switch v := n.(type) {
		case node.Ref:
			into = append(into, v.Name)
		case node.TagDecl:
			into = collectRefs(v.Value, into)
		}
	}
	return into
}
