// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package translator

import (
	"io"

	"github.com/google/clitesym/internal/clite/builder"
	"github.com/pkg/errors"
)

// Option configures translator.Translator
type Option interface {
	apply(*Translator) error
}

// Discipline sets the scoping policy used for every translated program.
func Discipline(p builder.Policy) Option {
	return &discipline{p}
}

type discipline struct {
	builder.Policy
}

func (opt discipline) apply(t *Translator) error {
	if opt.Policy == nil {
		return errors.New("nil scoping discipline")
	}
	t.policy = opt.Policy
	return nil
}

// DisciplineName sets the scoping policy by its name, "static" or "dynamic".
type DisciplineName string

func (opt DisciplineName) apply(t *Translator) error {
	p, err := builder.PolicyByName(string(opt))
	if err != nil {
		return err
	}
	t.policy = p
	return nil
}

// AnonymousPrefix sets the prefix of names synthesised for anonymous blocks.
type AnonymousPrefix string

func (opt AnonymousPrefix) apply(t *Translator) error {
	if opt == "" {
		return errors.New("anonymous scope prefix must not be empty")
	}
	t.anonPrefix = string(opt)
	return nil
}

// Output sets the writer that closed scopes are reported to.
func Output(w io.Writer) Option {
	return &output{w}
}

type output struct {
	io.Writer
}

func (opt output) apply(t *Translator) error {
	t.out = opt.Writer
	return nil
}

// SetBuildInfo sets the program build information in the Translator.
type SetBuildInfo BuildInfo

func (opt SetBuildInfo) apply(t *Translator) error {
	t.buildInfo = BuildInfo(opt)
	return nil
}

type niladicOption struct {
	applyfunc func(t *Translator) error
}

func (n *niladicOption) apply(t *Translator) error {
	return n.applyfunc(t)
}

// Header makes the Translator print a line naming the scoping discipline
// before the first report of each program.
var Header = &niladicOption{
	func(t *Translator) error {
		t.header = true
		return nil
	}}

// DumpTable instructs the Translator to log the whole scope tree of each
// program after the pass.
var DumpTable = &niladicOption{
	func(t *Translator) error {
		t.dumpTable = true
		return nil
	}}

// Color makes reports highlight scope names when the output is a terminal.
var Color = &niladicOption{
	func(t *Translator) error {
		t.color = true
		return nil
	}}
