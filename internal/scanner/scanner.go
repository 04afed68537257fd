// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

// Package scanner provides a streaming Unicode-aware lexer for spindle
// grammar text.
package scanner

import (
	"bufio"
	"io"
	"strings"

	"loomworks.net/spindle/internal/token"
)

// Scanner tokenizes grammar text rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	peeked *Item
	line   int // Current line number (1-based)
}

// Item represents a scanned token with its value.
type Item struct {
	Kind  token.Kind
	Value string
	Line  int // Line number where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input. Text runs accumulate until a
// delimiter rune; a backslash escapes the following rune into literal text.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	s.buf.Reset()
	startLine := s.line

	for {
		r, _, err := s.reader.ReadRune()
		if err == io.EOF {
			if s.buf.Len() > 0 {
				return &Item{Kind: token.TEXT, Value: s.buf.String(), Line: startLine}, nil
			}
			return &Item{Kind: token.EOF, Line: s.line}, nil
		}
		if err != nil {
			return nil, err
		}

		// Track newlines
		if r == '\n' {
			s.line++
		}

		if r == token.RuneEscape {
			next, _, err := s.reader.ReadRune()
			if err == io.EOF {
				// Dangling escape at end of input is kept literally
				s.buf.WriteRune(r)
				continue
			}
			if err != nil {
				return nil, err
			}
			if next == '\n' {
				s.line++
			}
			s.buf.WriteRune(next)
			continue
		}

		if token.IsDelimiter(r) {
			// If we have accumulated text, return it first
			if s.buf.Len() > 0 {
				s.reader.UnreadRune()
				return &Item{Kind: token.TEXT, Value: s.buf.String(), Line: startLine}, nil
			}
			return &Item{Kind: token.FromRune(r), Value: string(r), Line: s.line}, nil
		}

		s.buf.WriteRune(r)
	}
}
