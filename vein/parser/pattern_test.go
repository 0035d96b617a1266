// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser_test

import (
	"testing"

	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/intern"
)

// matchArmPattern drives the pattern grammar through a single match
// arm, since the pattern productions have no exported entry point of
// their own: "match x with | <pat> -> x" puts <pat> through
// parsePattern and hands the test back whichever pattern the arm bound.
func matchArmPattern(t *testing.T, pat string) (ast.Pattern, *intern.Environment) {
	t.Helper()
	e, env := parseTop(t, "match x with | "+pat+" -> x")
	m, ok := e.(*ast.ExprMatch)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprMatch", e)
	}
	if len(m.Arms) != 1 {
		t.Fatalf("len(Arms) = %d, want 1", len(m.Arms))
	}
	return m.Arms[0].Pat, env
}

func TestParsePatternIdent(t *testing.T) {
	pat, env := matchArmPattern(t, "y")
	id, ok := pat.(*ast.PatternIdent)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternIdent", pat)
	}
	if env.String(id.Name) != "y" {
		t.Fatalf("Name = %q, want y", env.String(id.Name))
	}
}

func TestParsePatternConstructorNoArgs(t *testing.T) {
	pat, env := matchArmPattern(t, "None")
	ctor, ok := pat.(*ast.PatternConstructor)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternConstructor", pat)
	}
	if env.String(ctor.Name) != "None" {
		t.Fatalf("Name = %q, want None", env.String(ctor.Name))
	}
	if len(ctor.Args) != 0 {
		t.Fatalf("Args = %v, want none", ctor.Args)
	}
}

func TestParsePatternConstructorWithArgs(t *testing.T) {
	pat, env := matchArmPattern(t, "Some y")
	ctor, ok := pat.(*ast.PatternConstructor)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternConstructor", pat)
	}
	if len(ctor.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(ctor.Args))
	}
	arg, ok := ctor.Args[0].(*ast.PatternIdent)
	if !ok || env.String(arg.Name) != "y" {
		t.Fatalf("Args[0] = %#v, want PatternIdent y", ctor.Args[0])
	}
}

func TestParsePatternConstructorMultipleArgs(t *testing.T) {
	pat, env := matchArmPattern(t, "Cons h t")
	ctor, ok := pat.(*ast.PatternConstructor)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternConstructor", pat)
	}
	if len(ctor.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(ctor.Args))
	}
	h, ok := ctor.Args[0].(*ast.PatternIdent)
	if !ok || env.String(h.Name) != "h" {
		t.Fatalf("Args[0] = %#v, want PatternIdent h", ctor.Args[0])
	}
	tl, ok := ctor.Args[1].(*ast.PatternIdent)
	if !ok || env.String(tl.Name) != "t" {
		t.Fatalf("Args[1] = %#v, want PatternIdent t", ctor.Args[1])
	}
}

func TestParsePatternAsBindsWholeAndInner(t *testing.T) {
	pat, env := matchArmPattern(t, "p@(a, b)")
	as, ok := pat.(*ast.PatternAs)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternAs", pat)
	}
	if env.String(as.Name) != "p" {
		t.Fatalf("Name = %q, want p", env.String(as.Name))
	}
	tup, ok := as.Pat.(*ast.PatternTuple)
	if !ok || len(tup.Elems) != 2 {
		t.Fatalf("Pat = %#v, want a 2-element PatternTuple", as.Pat)
	}
}

func TestParsePatternTuple(t *testing.T) {
	pat, env := matchArmPattern(t, "(a, b)")
	tup, ok := pat.(*ast.PatternTuple)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternTuple", pat)
	}
	if len(tup.Elems) != 2 {
		t.Fatalf("len(Elems) = %d, want 2", len(tup.Elems))
	}
	a, ok := tup.Elems[0].(*ast.PatternIdent)
	if !ok || env.String(a.Name) != "a" {
		t.Fatalf("Elems[0] = %#v, want PatternIdent a", tup.Elems[0])
	}
}

func TestParsePatternParenSingleIsNotATuple(t *testing.T) {
	pat, env := matchArmPattern(t, "(a)")
	id, ok := pat.(*ast.PatternIdent)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternIdent (parens alone don't make a tuple)", pat)
	}
	if env.String(id.Name) != "a" {
		t.Fatalf("Name = %q, want a", env.String(id.Name))
	}
}

func TestParsePatternLiteral(t *testing.T) {
	pat, _ := matchArmPattern(t, "42")
	lit, ok := pat.(*ast.PatternLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternLiteral", pat)
	}
	if lit.Lit.Value != "42" {
		t.Fatalf("Lit.Value = %q, want 42", lit.Lit.Value)
	}
}

func TestParsePatternRecordSplitsFieldsByCase(t *testing.T) {
	pat, env := matchArmPattern(t, "{a, B}")
	rec, ok := pat.(*ast.PatternRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternRecord", pat)
	}
	if len(rec.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(rec.Fields))
	}
	lower := rec.Fields[0]
	if env.String(lower.Name) != "a" || lower.IsType {
		t.Fatalf("Fields[0] = %#v, want value field a", lower)
	}
	if _, ok := lower.Value.(*ast.PatternIdent); !ok {
		t.Fatalf("Fields[0].Value = %#v, want PatternIdent", lower.Value)
	}
	upper := rec.Fields[1]
	if env.String(upper.Name) != "B" || !upper.IsType {
		t.Fatalf("Fields[1] = %#v, want type field B", upper)
	}
	if _, ok := upper.Value.(*ast.PatternConstructor); !ok {
		t.Fatalf("Fields[1].Value = %#v, want PatternConstructor", upper.Value)
	}
}

func TestParsePatternRecordExplicitFieldValue(t *testing.T) {
	pat, env := matchArmPattern(t, "{a = (x, y)}")
	rec, ok := pat.(*ast.PatternRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternRecord", pat)
	}
	if len(rec.Fields) != 1 || env.String(rec.Fields[0].Name) != "a" {
		t.Fatalf("Fields = %#v, want one field named a", rec.Fields)
	}
	if _, ok := rec.Fields[0].Value.(*ast.PatternTuple); !ok {
		t.Fatalf("Fields[0].Value = %#v, want PatternTuple", rec.Fields[0].Value)
	}
}

func TestParsePatternRecordImplicitImport(t *testing.T) {
	pat, _ := matchArmPattern(t, "{a ?}")
	rec, ok := pat.(*ast.PatternRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.PatternRecord", pat)
	}
	if rec.ImplicitImport == nil {
		t.Fatal("ImplicitImport = nil, want a synthesized binder id")
	}
}

func TestParseMatchArmMissingPatternRecovers(t *testing.T) {
	_, _, msgs := parseTopErr(t, "match x with | -> x")
	if len(msgs) == 0 {
		t.Fatal("expected a diagnostic for a match arm with no pattern")
	}
}
