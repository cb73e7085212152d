// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package position implements a data structure for storing source line positions.
package position

import "fmt"

// A Position is the location in the source program at which a line was
// recognised.  CLite is processed one line at a time, so a position is only a
// filename and a zero-based line index.
type Position struct {
	Filename string // Source filename in which this line appears.
	Line     int    // Zero-based line index in the source.
}

// String formats a position to be useful for printing messages associated with
// this position, e.g. unbalanced scope diagnostics.  Lines are printed one-based.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d", p.Line+1)
	}
	return fmt.Sprintf("%s:%d", p.Filename, p.Line+1)
}

// Next returns the position of the following line in the same file.
func (p Position) Next() Position {
	return Position{p.Filename, p.Line + 1}
}
