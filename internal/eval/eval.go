// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

package eval

import (
	"errors"
	"fmt"
	"strings"

	"loomworks.net/spindle/internal/node"
	"loomworks.net/spindle/internal/parser"
)

// ErrorPrefix starts every failure result returned by Expand.
const ErrorPrefix = "error: "

// StackOverflowResult is the whole-call result of an expansion that exceeded
// the maximum recursion depth.
const StackOverflowResult = ErrorPrefix + "stack overflow"

// Expand expands input into finished text. Tag storage and the recursion
// counter are reset first, so independent calls on one engine do not leak
// state into each other. Expand never panics across its API boundary and
// never returns an error value: every failure is encoded as an
// ErrorPrefix-ed string result.
func (e *Engine) Expand(input string) string {
	return e.expand(input, true)
}

// ExpandRetainingTags expands input without resetting tag storage, for
// nested calls that must share bindings with their caller.
func (e *Engine) ExpandRetainingTags(input string) string {
	return e.expand(input, false)
}

func (e *Engine) expand(input string, reset bool) string {
	if reset {
		e.tags.RemoveAll()
		e.stack.reset()
	}

	nodes, err := parser.Parse(input)
	if err != nil {
		e.diag.Error("expand: %v", err)
		return ErrorPrefix + err.Error()
	}

	out, err := e.evalNodes(nodes)
	if err != nil {
		e.diag.Error("expand: %v", err)
		if errors.Is(err, ErrStackOverflow) {
			// Whole-call failure: no partial output on depth overflow.
			return StackOverflowResult
		}
		return ErrorPrefix + err.Error()
	}
	return out
}

// evalNodes walks a node sequence left to right, accumulating output.
func (e *Engine) evalNodes(nodes []node.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case node.Text:
			sb.WriteString(v.Value)
		case node.Ref:
			out, err := e.evalRef(v)
			if err != nil {
				return "", err
			}
			sb.WriteString(out)
		case node.TagDecl:
			// Binds a tag; contributes no visible text.
			if err := e.evalTagDecl(v); err != nil {
				return "", err
			}
		case node.Weight:
			return "", fmt.Errorf("weight annotation survived registration in %q", node.Source(nodes))
		}
	}
	return sb.String(), nil
}

// evalRef resolves a #name# reference. Tags shadow same-named rules; a name
// bound to neither renders as its raw reference text.
func (e *Engine) evalRef(ref node.Ref) (string, error) {
	if value, ok := e.tags.Lookup(ref.Name); ok {
		return e.applyModifiers(value, ref.Modifiers)
	}

	mapping, ok := e.rules[ref.Name]
	if !ok {
		e.diag.Warn("no rule or tag named %q; rendering reference as-is", ref.Name)
		return ref.String(), nil
	}

	idx := mapping.Selector.Pick(len(mapping.Candidates))
	if idx < 0 || idx >= len(mapping.Candidates) {
		e.diag.Warn("selector for rule %q made no selection; rendering reference as-is", ref.Name)
		return ref.String(), nil
	}

	out, err := e.evalNested(ref.Name, mapping.Candidates[idx].Nodes)
	if err != nil {
		return "", err
	}
	return e.applyModifiers(out, ref.Modifiers)
}

// evalNested evaluates a candidate inside its own context frame and tag
// scope. The deferred leave/exit run on every exit path, error included.
func (e *Engine) evalNested(label string, nodes []node.Node) (string, error) {
	if err := e.stack.enter(label); err != nil {
		return "", err
	}
	defer e.stack.leave()

	e.tags.EnterScope()
	defer e.tags.ExitScope()

	return e.evalNodes(nodes)
}

// evalTagDecl expands the assignment's value sub-sequence and binds the tag
// in the current scope.
func (e *Engine) evalTagDecl(decl node.TagDecl) error {
	if err := e.stack.enter(decl.Name); err != nil {
		return err
	}
	defer e.stack.leave()

	value, err := e.evalNodes(decl.Value)
	if err != nil {
		return err
	}
	e.tags.Bind(decl.Name, value)
	return nil
}

// applyModifiers applies a reference's modifier chain left to right.
func (e *Engine) applyModifiers(input string, chain []node.Call) (string, error) {
	out := input
	for _, call := range chain {
		entry, ok := e.modifiers[call.Name]
		if !ok {
			return "", fmt.Errorf("unknown modifier %q", call.Name)
		}
		switch entry.kind {
		case transformKind:
			out = entry.transform(out)
		case callKind:
			// Side effect only; text passes through untouched.
			entry.call()
		case methodKind:
			out = entry.method(out, call.Args)
		}
	}
	return out, nil
}
