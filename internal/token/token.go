// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package token defines spindle grammar token kinds and delimiter runes.
package token

// Kind represents a spindle token kind.
type Kind int

const (
	EOF Kind = iota
	TEXT

	// Delimiters
	HASH     // # - opens and closes a rule/tag reference
	LBRACKET // [ - opens a tag assignment
	RBRACKET // ] - closes a tag assignment
)

// Delimiter and structural runes of the grammar language.
const (
	RuneRef       = '#'  // reference delimiter, both ends
	RuneOpenTag   = '['  // tag assignment open
	RuneCloseTag  = ']'  // tag assignment close
	RuneBind      = ':'  // separates tag name from value inside [ ]
	RuneChain     = '.'  // modifier chaining inside a reference
	RuneOpenArgs  = '('  // modifier argument list open
	RuneCloseArgs = ')'  // modifier argument list close
	RuneArgSep    = ','  // modifier argument separator, also weight marker
	RuneEscape    = '\\' // escapes the following rune into literal text
)

// IsDelimiter returns true if the rune starts or ends a grammar construct.
func IsDelimiter(r rune) bool {
	switch r {
	case RuneRef, RuneOpenTag, RuneCloseTag:
		return true
	}
	return false
}

// FromRune returns the token kind for a delimiter rune.
func FromRune(r rune) Kind {
	switch r {
	case RuneRef:
		return HASH
	case RuneOpenTag:
		return LBRACKET
	case RuneCloseTag:
		return RBRACKET
	}
	return TEXT
}

// String returns the string representation of a token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case TEXT:
		return "TEXT"
	case HASH:
		return "HASH"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	}
	return "UNKNOWN"
}
