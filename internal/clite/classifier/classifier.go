// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package classifier recognises the shape of a single line of CLite source.
//
// Each line is tested on its own against a fixed list of shapes, in
// precedence order; the first shape that matches wins.  A line that matches
// no shape is Unrecognized, which is not an error.
package classifier

import (
	"regexp"
	"strings"
)

// Kind enumerates the line shapes the classifier recognises.
type Kind int

const (
	Unrecognized   Kind = iota // Not a recognised shape; skipped.
	MainHeader                 // `void main() {`, only when enabled.
	FunctionHeader             // `<type> <name>(<params>) {`
	VarDecl                    // `<type> <id> (, [<type>] <id>)* ;?`
	ScopeOpen                  // `<optional name> {`
	ScopeClose                 // `}`

	endKind
)

func (k Kind) String() string {
	switch k {
	case Unrecognized:
		return "unrecognized"
	case MainHeader:
		return "main_header"
	case FunctionHeader:
		return "function_header"
	case VarDecl:
		return "var_decl"
	case ScopeOpen:
		return "scope_open"
	case ScopeClose:
		return "scope_close"
	default:
		panic("unexpected kind")
	}
}

// Kinds returns every Kind, in precedence order after Unrecognized.
func Kinds() []Kind {
	r := make([]Kind, 0, endKind)
	for k := Unrecognized; k < endKind; k++ {
		r = append(r, k)
	}
	return r
}

// Decl is one (name, type) pair from a declaration list.
type Decl struct {
	Name string
	Type string
}

// Line is the result of classifying one line of text.
type Line struct {
	Kind   Kind
	Name   string // Function name for headers, scope name for ScopeOpen; empty if anonymous.
	Type   string // Return type for headers.
	Params string // Raw parameter list text for FunctionHeader.
	Decls  []Decl // Declared variables for VarDecl; parsed parameters for FunctionHeader.
}

const (
	ident    = `[a-zA-Z_][a-zA-Z0-9_]*`
	varType  = `int|float|char|bool`
	funcType = `int|float|char|bool|void`
)

var (
	mainHeaderRe = regexp.MustCompile(`^\s*void\s+main\s*\(\s*\)\s*\{\s*$`)
	funcHeaderRe = regexp.MustCompile(`^\s*(` + funcType + `)\s+(` + ident + `)\s*\((.*)\)\s*\{\s*$`)
	declListRe   = regexp.MustCompile(`^\s*(?:` + varType + `)\s+` + ident + `\s*(?:,\s*(?:(?:` + varType + `)\s+)?` + ident + `\s*)*;?\s*$`)
	declItemRe   = regexp.MustCompile(`^\s*(?:(` + varType + `)\s+)?(` + ident + `)\s*$`)
	scopeOpenRe  = regexp.MustCompile(`^\s*(.*?)\{\s*$`)
	scopeCloseRe = regexp.MustCompile(`^\s*\}\s*$`)
)

// Classifier classifies lines.  The zero value does not recognise the main
// header as a distinct shape.
type Classifier struct {
	mainHeader bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// RecogniseMain makes the classifier report `void main() {` as MainHeader
// instead of as an ordinary FunctionHeader.
func RecogniseMain() Option {
	return func(c *Classifier) {
		c.mainHeader = true
	}
}

// New creates a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify is a convenience for New().Classify(text).
func Classify(text string) Line {
	return (&Classifier{}).Classify(text)
}

// Classify returns the shape of text and the fields extracted from it.
func (c *Classifier) Classify(text string) Line {
	if c.mainHeader && mainHeaderRe.MatchString(text) {
		return Line{Kind: MainHeader, Name: "main", Type: "void"}
	}
	if m := funcHeaderRe.FindStringSubmatch(text); m != nil {
		l := Line{Kind: FunctionHeader, Type: m[1], Name: m[2], Params: m[3]}
		if strings.TrimSpace(l.Params) != "" {
			// Parameters that don't form a declaration list are not declared.
			l.Decls, _ = ParseDecls(l.Params)
		}
		return l
	}
	if decls, ok := ParseDecls(text); ok {
		return Line{Kind: VarDecl, Decls: decls}
	}
	if m := scopeOpenRe.FindStringSubmatch(text); m != nil {
		return Line{Kind: ScopeOpen, Name: strings.TrimSpace(m[1])}
	}
	if scopeCloseRe.MatchString(text) {
		return Line{Kind: ScopeClose}
	}
	return Line{Kind: Unrecognized}
}

// ParseDecls parses a declaration list such as `int a, float b, c;`.  A name
// without its own type takes the type most recently given in the list.  ok is
// false, and no declarations are returned, if text is not a whole
// declaration list.
func ParseDecls(text string) (decls []Decl, ok bool) {
	if !declListRe.MatchString(text) {
		return nil, false
	}
	body := strings.TrimSpace(text)
	body = strings.TrimSuffix(body, ";")
	var typ string
	for _, item := range strings.Split(body, ",") {
		m := declItemRe.FindStringSubmatch(item)
		if m == nil {
			return nil, false
		}
		if m[1] != "" {
			typ = m[1]
		}
		decls = append(decls, Decl{Name: m[2], Type: typ})
	}
	return decls, true
}
