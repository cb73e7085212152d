// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package errors holds the diagnostics produced while reconstructing a symbol
// table.
package errors

import (
	"fmt"

	"github.com/google/clitesym/internal/clite/position"
	"github.com/pkg/errors"
)

// ErrUnbalanced is the cause of every error reporting that a pass ended with
// scopes still open, or that a closing brace had no scope to close.
var ErrUnbalanced = errors.New("unbalanced scopes")

type scopeError struct {
	pos *position.Position
	msg string
}

func (e scopeError) Error() string {
	if e.pos == nil {
		return e.msg
	}
	return e.pos.String() + ": " + e.msg
}

// ErrorList contains a list of positioned diagnostics.
type ErrorList []*scopeError

// Add appends an error at a position to the list of errors.  A nil position
// is allowed for errors that concern the whole input.
func (p *ErrorList) Add(pos *position.Position, msg string) {
	var pp *position.Position
	if pos != nil {
		c := *pos
		pp = &c
	}
	*p = append(*p, &scopeError{pp, msg})
}

// Err returns the list as an error, or nil if it is empty.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// ErrorList implements the error interface.
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	var r string
	for _, e := range p {
		r += fmt.Sprintf("%s\n", e)
	}
	return r[:len(r)-1]
}

// Unbalanced returns an error caused by ErrUnbalanced, annotated with the
// position at which the input ended and the scope left open.
func Unbalanced(pos position.Position, scope string, depth int) error {
	return errors.Wrapf(ErrUnbalanced, "%s: input ended inside scope %q (%d left open)", pos, scope, depth)
}

// IsUnbalanced reports whether err was caused by ErrUnbalanced.
func IsUnbalanced(err error) bool {
	return err != nil && errors.Cause(err) == ErrUnbalanced
}

// ExtraCloses returns an error caused by ErrUnbalanced for n closing braces
// found at global scope, the first of them at pos.
func ExtraCloses(pos position.Position, n int) error {
	return errors.Wrapf(ErrUnbalanced, "%s: closing brace outside any scope (%d unmatched)", pos, n)
}

// Errorf formats a diagnostic error with a stack trace.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}
