// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package node defines spindle AST node types.
package node

import (
	"strconv"
	"strings"

	"loomworks.net/spindle/internal/token"
)

// Node is the interface all AST node types implement.
type Node interface {
	// String returns the serializable source representation of the node.
	String() string
}

// Text represents literal text content. Value holds the unescaped text.
type Text struct {
	Value string
}

func (t Text) String() string {
	var sb strings.Builder
	for _, r := range t.Value {
		if token.IsDelimiter(r) || r == token.RuneEscape {
			sb.WriteRune(token.RuneEscape)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Call represents one modifier application in a reference chain.
type Call struct {
	Name string
	Args []string // raw argument text, expanded at evaluation time
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + string(token.RuneOpenArgs) +
		strings.Join(c.Args, string(token.RuneArgSep)) +
		string(token.RuneCloseArgs)
}

// Ref represents a rule or tag reference (#name.mod1.mod2(a,b)#). Whether
// the name resolves to a tag or a rule is decided at evaluation time.
type Ref struct {
	Name      string
	Modifiers []Call
}

func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteRune(token.RuneRef)
	sb.WriteString(r.Name)
	for _, m := range r.Modifiers {
		sb.WriteRune(token.RuneChain)
		sb.WriteString(m.String())
	}
	sb.WriteRune(token.RuneRef)
	return sb.String()
}

// TagDecl represents a tag assignment ([name:value]). The bound value is the
// expansion of the Value node sequence; the assignment itself renders as
// nothing.
type TagDecl struct {
	Name  string
	Value []Node
}

func (t TagDecl) String() string {
	var sb strings.Builder
	sb.WriteRune(token.RuneOpenTag)
	sb.WriteString(t.Name)
	sb.WriteRune(token.RuneBind)
	for _, n := range t.Value {
		sb.WriteString(n.String())
	}
	sb.WriteRune(token.RuneCloseTag)
	return sb.String()
}

// Weight represents a trailing candidate weight annotation (",3"). It is
// only produced when parsing registration candidates, is always the last
// node of its sequence, and is stripped before the candidate takes part in
// expansion.
type Weight struct {
	Value int
}

func (w Weight) String() string {
	return string(token.RuneArgSep) + strconv.Itoa(w.Value)
}

// Source reconstructs the source text of a node sequence.
func Source(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.String())
	}
	return sb.String()
}
