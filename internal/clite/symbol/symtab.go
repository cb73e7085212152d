// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package symbol holds the scope records and declared symbols reconstructed
// from a CLite program.
package symbol

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/clitesym/internal/clite/position"
)

// SymbolKind enumerates the kind of a Symbol.
type SymbolKind int

// SymbolKind enumerates the kinds of symbols found in the program text.
const (
	VarSymbol  SymbolKind = iota // Variables and function parameters
	FuncSymbol                   // Functions, recorded in their enclosing scope

	endSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VarSymbol:
		return "variable"
	case FuncSymbol:
		return "function"
	default:
		panic("unexpected symbolkind")
	}
}

// Symbol describes one declaration.
type Symbol struct {
	Name string            // identifier name
	Kind SymbolKind        // kind of program object
	Type string            // primitive type name, or the return type of a function
	Line int               // line index reported for this declaration
	Pos  position.Position // source position of the line it was recognised on
}

// NewSymbol creates a record of a given symbol kind, named name, of type typ,
// reported at line.
func NewSymbol(name string, kind SymbolKind, typ string, line int, pos position.Position) *Symbol {
	return &Symbol{name, kind, typ, line, pos}
}

// String renders the symbol as `<name, type, line>`.
func (s *Symbol) String() string {
	return fmt.Sprintf("<%s, %s, %d>", s.Name, s.Type, s.Line)
}

// ScopeID identifies a scope in a Table.
type ScopeID string

// NoScope is the parent of the global scope.
const NoScope ScopeID = ""

// ScopeKind enumerates the kinds of scope created during a pass.
type ScopeKind int

const (
	GlobalScope   ScopeKind = iota // the outermost scope
	FunctionScope                  // the body of a function
	BlockScope                     // a named or anonymous block
)

func (k ScopeKind) String() string {
	switch k {
	case GlobalScope:
		return "global"
	case FunctionScope:
		return "function"
	case BlockScope:
		return "block"
	default:
		panic("unexpected scopekind")
	}
}

// Scope maintains a record of the identifiers declared in one program scope,
// in declaration order, and the id of the parent scope.  Name is the name the
// scope is reported by; ID is unique within a Table and may carry a suffix
// that Name does not.
type Scope struct {
	ID      ScopeID
	Name    string
	Parent  ScopeID
	Kind    ScopeKind
	Symbols []*Symbol
}

// NewScope creates a new, empty scope within the parent scope, named by its id.
func NewScope(id, parent ScopeID, kind ScopeKind) *Scope {
	return &Scope{ID: id, Name: string(id), Parent: parent, Kind: kind}
}

// Insert appends a symbol to the scope.  Duplicate names are kept; the scope
// records declarations, it does not validate them.
func (s *Scope) Insert(sym *Symbol) {
	s.Symbols = append(s.Symbols, sym)
}

// Find returns the most recently declared symbol named name in this scope
// only, or nil.
func (s *Scope) Find(name string) *Symbol {
	for i := len(s.Symbols) - 1; i >= 0; i-- {
		if s.Symbols[i].Name == name {
			return s.Symbols[i]
		}
	}
	return nil
}

// VariableList renders the symbols of the scope separated by commas.
func (s *Scope) VariableList() string {
	vars := make([]string, 0, len(s.Symbols))
	for _, sym := range s.Symbols {
		vars = append(vars, sym.String())
	}
	return strings.Join(vars, ", ")
}

// String formats the scope as `Scope (<name>) variables: <v1>, <v2>, ...`.
func (s *Scope) String() string {
	return fmt.Sprintf("Scope (%s) variables: %s", s.Name, s.VariableList())
}

// Table maps scope ids to scopes.  Scopes are only ever added.
type Table struct {
	global ScopeID
	scopes map[ScopeID]*Scope
	order  []ScopeID
}

// NewTable creates a table holding only the global scope named global.
func NewTable(global ScopeID) *Table {
	t := &Table{
		global: global,
		scopes: make(map[ScopeID]*Scope),
	}
	t.Insert(NewScope(global, NoScope, GlobalScope))
	return t
}

// Global returns the id of the outermost scope.
func (t *Table) Global() ScopeID {
	return t.global
}

// Insert attempts to insert a scope into the table.  If the table already
// contains a scope alt with the same id, the table is unchanged and the
// function returns alt.  Otherwise the scope is inserted, and returns nil.
func (t *Table) Insert(s *Scope) (alt *Scope) {
	if alt = t.scopes[s.ID]; alt == nil {
		t.scopes[s.ID] = s
		t.order = append(t.order, s.ID)
	}
	return
}

// Get returns the scope with the given id, or nil.
func (t *Table) Get(id ScopeID) *Scope {
	return t.scopes[id]
}

// Contains reports whether a scope with the given id is in the table.
func (t *Table) Contains(id ScopeID) bool {
	_, ok := t.scopes[id]
	return ok
}

// Len returns the number of scopes in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// Scopes returns every scope in creation order, the global scope first.
func (t *Table) Scopes() []*Scope {
	r := make([]*Scope, 0, len(t.order))
	for _, id := range t.order {
		r = append(r, t.scopes[id])
	}
	return r
}

// Children returns the direct children of id in creation order.
func (t *Table) Children(id ScopeID) []*Scope {
	var r []*Scope
	for _, cid := range t.order {
		if c := t.scopes[cid]; c.Parent == id && cid != t.global {
			r = append(r, c)
		}
	}
	return r
}

// Depth returns the number of parent links between id and the global scope.
func (t *Table) Depth(id ScopeID) int {
	d := 0
	for s := t.scopes[id]; s != nil && s.Parent != NoScope; s = t.scopes[s.Parent] {
		d++
	}
	return d
}

// Lookup returns the symbol with the given name if it is found in the scope
// from or any of its parents, innermost first, otherwise nil.
func (t *Table) Lookup(from ScopeID, name string) *Symbol {
	for s := t.scopes[from]; s != nil; s = t.scopes[s.Parent] {
		if sym := s.Find(name); sym != nil {
			return sym
		}
	}
	return nil
}

// Dump prints the scope tree, one scope per line indented by depth, in
// creation order.  This is used for the --dump_table debugging output.
func (t *Table) Dump() string {
	var buf bytes.Buffer
	t.dump(&buf, t.scopes[t.global], 0)
	return buf.String()
}

func (t *Table) dump(buf *bytes.Buffer, s *Scope, depth int) {
	fmt.Fprintf(buf, "%s%s (%s)", strings.Repeat("  ", depth), s.ID, s.Kind)
	for _, sym := range s.Symbols {
		fmt.Fprintf(buf, " %s", sym)
	}
	fmt.Fprintln(buf)
	for _, c := range t.Children(s.ID) {
		t.dump(buf, c, depth+1)
	}
}
