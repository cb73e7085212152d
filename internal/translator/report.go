// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package translator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/clitesym/internal/clite/symbol"
)

// reporter writes one line per scope as it is closed.
type reporter struct {
	w    io.Writer
	name *color.Color // nil for plain output
}

func newReporter(w io.Writer, colored bool) *reporter {
	r := &reporter{w: w}
	if colored {
		// color disables itself when stdout is not a terminal.
		r.name = color.New(color.FgCyan, color.Bold)
	}
	return r
}

func (r *reporter) header(p string) error {
	_, err := fmt.Fprintf(r.w, "%s symbol table generation...\n", p)
	return err
}

func (r *reporter) scope(s *symbol.Scope) error {
	if r.name == nil {
		_, err := fmt.Fprintln(r.w, s)
		return err
	}
	_, err := fmt.Fprintf(r.w, "Scope (%s) variables: %s\n", r.name.Sprint(s.Name), s.VariableList())
	return err
}
