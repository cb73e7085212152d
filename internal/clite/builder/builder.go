// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package builder maintains the stack of open scopes while the lines of a
// CLite program are applied in order, and records every scope and
// declaration in a symbol.Table.
package builder

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/google/clitesym/internal/clite/classifier"
	"github.com/google/clitesym/internal/clite/errors"
	"github.com/google/clitesym/internal/clite/position"
	"github.com/google/clitesym/internal/clite/symbol"
)

// DefaultAnonymousPrefix prefixes the names synthesised for anonymous blocks.
const DefaultAnonymousPrefix = "unnamed_scope_"

// Builder holds the state of one pass over a program.  A Builder must not be
// reused for a second program.
type Builder struct {
	policy     Policy
	classifier *classifier.Classifier

	table   *symbol.Table
	global  symbol.ScopeID
	current symbol.ScopeID

	anonPrefix string
	anonCount  int // number of anonymous scopes opened so far

	absorb      int               // closing braces at global scope that end a body bound to it
	extraCloses int               // closing braces at global scope with nothing to close
	firstExtra  position.Position // position of the first such brace
}

// Option configures a new Builder.
type Option func(*Builder) error

// WithPolicy sets the scoping discipline.  The default is Static.
func WithPolicy(p Policy) Option {
	return func(b *Builder) error {
		if p == nil {
			return errors.Errorf("nil scoping policy")
		}
		b.policy = p
		return nil
	}
}

// AnonymousPrefix sets the prefix of synthesised anonymous scope names.
func AnonymousPrefix(prefix string) Option {
	return func(b *Builder) error {
		if prefix == "" {
			return errors.Errorf("anonymous scope prefix must not be empty")
		}
		b.anonPrefix = prefix
		return nil
	}
}

// New creates a Builder whose table holds only the global scope.
func New(options ...Option) (*Builder, error) {
	b := &Builder{
		policy:     Static,
		anonPrefix: DefaultAnonymousPrefix,
	}
	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}
	b.classifier = classifier.New(b.policy.ClassifierOptions()...)
	b.global = b.policy.GlobalScope()
	b.current = b.global
	b.table = symbol.NewTable(b.global)
	return b, nil
}

// Policy returns the scoping discipline of this Builder.
func (b *Builder) Policy() Policy {
	return b.policy
}

// Table returns the symbol table built so far.
func (b *Builder) Table() *symbol.Table {
	return b.table
}

// Global returns the id of the global scope.
func (b *Builder) Global() symbol.ScopeID {
	return b.global
}

// Current returns the id of the innermost open scope.
func (b *Builder) Current() symbol.ScopeID {
	return b.current
}

// Depth returns the number of scopes open inside the global scope.
func (b *Builder) Depth() int {
	return b.table.Depth(b.current)
}

// Classify classifies text with the classifier the policy asks for.
func (b *Builder) Classify(text string) classifier.Line {
	return b.classifier.Classify(text)
}

// Open creates a child of the current scope and makes it current.  An empty
// name opens an anonymous scope with a synthesised name.  A name already in
// the table gets a suffixed id so that no scope record is lost; the scope is
// still reported by name.
func (b *Builder) Open(name string, kind symbol.ScopeKind) symbol.ScopeID {
	if name == "" {
		b.anonCount++
		name = fmt.Sprintf("%s%d", b.anonPrefix, b.anonCount)
	}
	id := symbol.ScopeID(name)
	for n := 2; b.table.Contains(id); n++ {
		id = symbol.ScopeID(fmt.Sprintf("%s#%d", name, n))
	}
	s := symbol.NewScope(id, b.current, kind)
	s.Name = name
	b.table.Insert(s)
	glog.V(1).Infof("Opened %s scope %q in %q", kind, id, b.current)
	b.current = id
	return id
}

// Declare appends sym to the current scope.
func (b *Builder) Declare(sym *symbol.Symbol) {
	b.declareIn(b.current, sym)
}

func (b *Builder) declareIn(id symbol.ScopeID, sym *symbol.Symbol) {
	glog.V(1).Infof("Declared %s %s in %q", sym.Kind, sym, id)
	b.table.Get(id).Insert(sym)
}

// Close pops the current scope, returning it.  The global scope is never
// popped; closing it returns false, and unless the brace ends a body bound to
// the global scope it is counted against the balance checked by Finish.
func (b *Builder) Close() (*symbol.Scope, bool) {
	if b.current == b.global {
		if b.absorb > 0 {
			b.absorb--
			glog.V(1).Infof("Close absorbed by global scope %q", b.global)
			return nil, false
		}
		b.extraCloses++
		return nil, false
	}
	closed := b.table.Get(b.current)
	b.current = closed.Parent
	glog.V(1).Infof("Closed scope %q, current is %q", closed.ID, b.current)
	return closed, true
}

// Finish checks that every opened scope was closed and that no closing brace
// was left over.  pos is the position at which the input ended.  The error is
// caused by errors.ErrUnbalanced.
func (b *Builder) Finish(pos position.Position) error {
	if b.current != b.global {
		return errors.Unbalanced(pos, string(b.current), b.Depth())
	}
	if b.extraCloses > 0 {
		return errors.ExtraCloses(b.firstExtra, b.extraCloses)
	}
	return nil
}

// Apply changes the scope state according to a classified line found at pos.
// It returns the scope closed by the line, if any.
func (b *Builder) Apply(l classifier.Line, pos position.Position) *symbol.Scope {
	switch l.Kind {
	case classifier.MainHeader:
		b.policy.EnterMain(b, l, pos)
	case classifier.FunctionHeader:
		b.enterFunction(l, pos)
	case classifier.VarDecl:
		b.declareAll(l.Decls, pos)
	case classifier.ScopeOpen:
		b.Open(l.Name, symbol.BlockScope)
	case classifier.ScopeClose:
		n := b.extraCloses
		if closed, ok := b.Close(); ok {
			return closed
		}
		if b.extraCloses > n {
			if n == 0 {
				b.firstExtra = pos
			}
			glog.Warningf("%s: closing brace outside any scope", pos)
		}
	default:
		glog.V(2).Infof("%s: unrecognized line", pos)
	}
	return nil
}

// enterFunction declares the function where the policy says, opens its body
// and declares its parameters inside it.
func (b *Builder) enterFunction(l classifier.Line, pos position.Position) {
	home := b.policy.FunctionHome(b)
	b.declareIn(home, symbol.NewSymbol(l.Name, symbol.FuncSymbol, l.Type, pos.Line, pos))
	b.Open(l.Name, symbol.FunctionScope)
	b.declareAll(l.Decls, pos)
}

// Declarations are reported one line after the index they were found at.
func (b *Builder) declareAll(decls []classifier.Decl, pos position.Position) {
	for _, d := range decls {
		b.Declare(symbol.NewSymbol(d.Name, symbol.VarSymbol, d.Type, pos.Line+1, pos))
	}
}
