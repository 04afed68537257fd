// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package parser turns spindle grammar text into AST node sequences.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"loomworks.net/spindle/internal/node"
	"loomworks.net/spindle/internal/scanner"
	"loomworks.net/spindle/internal/token"
)

// Error is a grammar parse error with its source line.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
}

func errorf(line int, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Parse parses expansion input text into AST nodes. Trailing weight
// annotations are not recognized; a literal ",3" suffix stays text.
func Parse(text string) ([]node.Node, error) {
	p := &parser{scan: scanner.NewFromString(text)}
	return p.parseSequence(false)
}

// ParseCandidate parses one rule candidate at registration time. It behaves
// like Parse except that a trailing ",N" (N a positive integer) on the final
// text node becomes a node.Weight, always last in the returned sequence.
func ParseCandidate(text string) ([]node.Node, error) {
	p := &parser{scan: scanner.NewFromString(text)}
	nodes, err := p.parseSequence(false)
	if err != nil {
		return nil, err
	}
	return splitTrailingWeight(nodes), nil
}

type parser struct {
	scan *scanner.Scanner
}

// parseSequence parses nodes until EOF, or until the closing bracket of the
// enclosing tag assignment when insideTag is set.
func (p *parser) parseSequence(insideTag bool) ([]node.Node, error) {
	var nodes []node.Node

	for {
		item, err := p.scan.Next()
		if err != nil {
			return nil, err
		}

		switch item.Kind {
		case token.EOF:
			if insideTag {
				return nil, errorf(item.Line, "unbalanced '%c': tag assignment is never closed", token.RuneOpenTag)
			}
			return nodes, nil

		case token.TEXT:
			if item.Value != "" {
				nodes = append(nodes, node.Text{Value: item.Value})
			}

		case token.HASH:
			ref, err := p.parseRef(item.Line)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, ref)

		case token.LBRACKET:
			decl, err := p.parseTagDecl(item.Line)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, decl)

		case token.RBRACKET:
			if insideTag {
				return nodes, nil
			}
			return nil, errorf(item.Line, "unbalanced '%c' outside a tag assignment", token.RuneCloseTag)
		}
	}
}

// parseRef parses the remainder of a #name.mod1.mod2(a,b)# reference, the
// opening hash already consumed.
func (p *parser) parseRef(line int) (node.Node, error) {
	body, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	if body.Kind == token.HASH {
		return nil, errorf(line, "empty reference '%c%c'", token.RuneRef, token.RuneRef)
	}
	if body.Kind != token.TEXT {
		return nil, errorf(line, "unterminated reference: expected text before closing '%c'", token.RuneRef)
	}
	closing, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	if closing.Kind != token.HASH {
		return nil, errorf(body.Line, "unterminated reference '%c%s'", token.RuneRef, body.Value)
	}
	return parseRefBody(body.Value, body.Line)
}

// parseRefBody splits "name.mod1.mod2(a,b)" into a Ref node. Chain dots
// inside an argument list do not split.
func parseRefBody(body string, line int) (node.Node, error) {
	segments, err := splitChain(body, line)
	if err != nil {
		return nil, err
	}
	name := segments[0]
	if name == "" {
		return nil, errorf(line, "reference has no name")
	}

	ref := node.Ref{Name: name}
	for _, seg := range segments[1:] {
		call, err := parseCall(seg, line)
		if err != nil {
			return nil, err
		}
		ref.Modifiers = append(ref.Modifiers, call)
	}
	return ref, nil
}

// splitChain splits a reference body on '.' outside parentheses.
func splitChain(body string, line int) ([]string, error) {
	var segments []string
	var sb strings.Builder
	depth := 0
	for _, r := range body {
		switch r {
		case token.RuneOpenArgs:
			depth++
			sb.WriteRune(r)
		case token.RuneCloseArgs:
			depth--
			if depth < 0 {
				return nil, errorf(line, "unbalanced '%c' in reference %q", token.RuneCloseArgs, body)
			}
			sb.WriteRune(r)
		case token.RuneChain:
			if depth == 0 {
				segments = append(segments, sb.String())
				sb.Reset()
			} else {
				sb.WriteRune(r)
			}
		default:
			sb.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, errorf(line, "unbalanced '%c' in reference %q", token.RuneOpenArgs, body)
	}
	segments = append(segments, sb.String())
	return segments, nil
}

// parseCall parses one modifier chain segment: "mod" or "mod(a,b)".
func parseCall(seg string, line int) (node.Call, error) {
	open := strings.IndexRune(seg, token.RuneOpenArgs)
	if open < 0 {
		if seg == "" {
			return node.Call{}, errorf(line, "empty modifier name in chain")
		}
		return node.Call{Name: seg}, nil
	}
	if open == 0 {
		return node.Call{}, errorf(line, "modifier call %q has no name", seg)
	}
	if !strings.HasSuffix(seg, string(token.RuneCloseArgs)) {
		return node.Call{}, errorf(line, "modifier call %q not closed", seg)
	}
	name := seg[:open]
	inner := seg[open+1 : len(seg)-1]
	if inner == "" {
		return node.Call{Name: name}, nil
	}
	return node.Call{Name: name, Args: strings.Split(inner, string(token.RuneArgSep))}, nil
}

// parseTagDecl parses the remainder of a [name:value] assignment, the
// opening bracket already consumed. The value may nest references and
// further assignments.
func (p *parser) parseTagDecl(line int) (node.Node, error) {
	head, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	if head.Kind != token.TEXT {
		return nil, errorf(line, "tag name must be plain text")
	}
	name, rest, found := strings.Cut(head.Value, string(token.RuneBind))
	if !found {
		return nil, errorf(head.Line, "tag assignment %q is missing '%c'", head.Value, token.RuneBind)
	}
	if name == "" {
		return nil, errorf(head.Line, "tag assignment has an empty name")
	}

	var value []node.Node
	if rest != "" {
		value = append(value, node.Text{Value: rest})
	}
	tail, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}
	return node.TagDecl{Name: name, Value: append(value, tail...)}, nil
}

// splitTrailingWeight converts a ",N" suffix on the final text node into a
// Weight node. Anything that does not look exactly like a positive integer
// weight stays literal text.
func splitTrailingWeight(nodes []node.Node) []node.Node {
	if len(nodes) == 0 {
		return nodes
	}
	last, ok := nodes[len(nodes)-1].(node.Text)
	if !ok {
		return nodes
	}
	cut := strings.LastIndex(last.Value, string(token.RuneArgSep))
	if cut < 0 {
		return nodes
	}
	digits := last.Value[cut+1:]
	if digits == "" || strings.Trim(digits, "0123456789") != "" {
		return nodes
	}
	w, err := strconv.Atoi(digits)
	if err != nil || w <= 0 {
		return nodes
	}

	nodes = nodes[:len(nodes)-1]
	if head := last.Value[:cut]; head != "" {
		nodes = append(nodes, node.Text{Value: head})
	}
	return append(nodes, node.Weight{Value: w})
}
