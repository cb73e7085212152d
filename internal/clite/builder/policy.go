// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package builder

import (
	"github.com/google/clitesym/internal/clite/classifier"
	"github.com/google/clitesym/internal/clite/errors"
	"github.com/google/clitesym/internal/clite/position"
	"github.com/google/clitesym/internal/clite/symbol"
)

// Policy is a scoping discipline.  The disciplines share the Builder's scope
// stack and differ only in how function and main headers are applied.
type Policy interface {
	// Name is the name the policy is selected by.
	Name() string
	// GlobalScope is the id given to the outermost scope.
	GlobalScope() symbol.ScopeID
	// ClassifierOptions configures the line classifier.
	ClassifierOptions() []classifier.Option
	// FunctionHome returns the scope a function header declares its
	// function symbol in.
	FunctionHome(b *Builder) symbol.ScopeID
	// EnterMain applies a main header.
	EnterMain(b *Builder, l classifier.Line, pos position.Position)
}

type staticPolicy struct{}

// Static is lexical scoping.  main is an ordinary function with its own body
// scope, and functions are declared in the scope that encloses them.
var Static Policy = staticPolicy{}

func (staticPolicy) Name() string                           { return "static" }
func (staticPolicy) GlobalScope() symbol.ScopeID            { return "global" }
func (staticPolicy) ClassifierOptions() []classifier.Option { return nil }

func (staticPolicy) FunctionHome(b *Builder) symbol.ScopeID {
	return b.Current()
}

// The static classifier never reports a main header, but a caller applying
// lines from elsewhere may; treat it as the function it is.
func (staticPolicy) EnterMain(b *Builder, l classifier.Line, pos position.Position) {
	b.enterFunction(l, pos)
}

type dynamicPolicy struct{}

// Dynamic approximates dynamic scoping.  The body of main is the global
// scope itself, and every function is declared in the global scope wherever
// it appears.  Blocks nest as they do under Static.
var Dynamic Policy = dynamicPolicy{}

func (dynamicPolicy) Name() string                { return "dynamic" }
func (dynamicPolicy) GlobalScope() symbol.ScopeID { return "main" }

func (dynamicPolicy) ClassifierOptions() []classifier.Option {
	return []classifier.Option{classifier.RecogniseMain()}
}

func (dynamicPolicy) FunctionHome(b *Builder) symbol.ScopeID {
	return b.Global()
}

// main's opening brace binds to the existing global scope, so no scope is
// opened and its closing brace is absorbed by the global scope.
func (dynamicPolicy) EnterMain(b *Builder, l classifier.Line, pos position.Position) {
	b.current = b.global
	b.absorb++
	b.declareIn(b.global, symbol.NewSymbol(l.Name, symbol.FuncSymbol, l.Type, pos.Line, pos))
}

// PolicyByName returns the policy called name.
func PolicyByName(name string) (Policy, error) {
	for _, p := range []Policy{Static, Dynamic} {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("unknown scoping discipline %q, want \"static\" or \"dynamic\"", name)
}
