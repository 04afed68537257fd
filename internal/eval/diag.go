// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2024-2026 The spindle authors

package eval

import (
	"io"
	"log"
)

// Diagnostics receives fire-and-forget engine notifications. Implementations
// must never affect control flow; a warning never aborts registration or
// expansion.
type Diagnostics interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// NewLogDiagnostics returns a Diagnostics sink writing to w via the standard
// log package.
func NewLogDiagnostics(w io.Writer) Diagnostics {
	return &logDiagnostics{l: log.New(w, "spindle: ", log.LstdFlags)}
}

type logDiagnostics struct {
	l *log.Logger
}

func (d *logDiagnostics) Info(format string, args ...any) {
	d.l.Printf("info: "+format, args...)
}

func (d *logDiagnostics) Warn(format string, args ...any) {
	d.l.Printf("warn: "+format, args...)
}

func (d *logDiagnostics) Error(format string, args ...any) {
	d.l.Printf("error: "+format, args...)
}

// Discard is a Diagnostics sink that drops everything.
var Discard Diagnostics = discardDiagnostics{}

type discardDiagnostics struct{}

func (discardDiagnostics) Info(format string, args ...any)  {}
func (discardDiagnostics) Warn(format string, args ...any)  {}
func (discardDiagnostics) Error(format string, args ...any) {}
