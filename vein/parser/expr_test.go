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
	"github.com/veinlang/vein/vein/token"
)

func TestParseIdentAndLiteral(t *testing.T) {
	e, env := parseTop(t, "x")
	id, ok := e.(*ast.ExprIdent)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprIdent", e)
	}
	if env.String(id.Name) != "x" {
		t.Fatalf("ident name = %q, want x", env.String(id.Name))
	}

	e, _ = parseTop(t, "42")
	lit, ok := e.(*ast.ExprLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLiteral", e)
	}
	if lit.Lit.Kind != token.INT || lit.Lit.Value != "42" {
		t.Fatalf("literal = %v %q, want INT 42", lit.Lit.Kind, lit.Lit.Value)
	}
}

func TestParseApplication(t *testing.T) {
	e, env := parseTop(t, "f x y")
	app, ok := e.(*ast.ExprApp)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprApp", e)
	}
	head, ok := app.Func.(*ast.ExprIdent)
	if !ok || env.String(head.Name) != "f" {
		t.Fatalf("Func = %#v, want ident f", app.Func)
	}
	if len(app.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(app.Args))
	}
}

func TestParseImplicitArguments(t *testing.T) {
	e, _ := parseTop(t, "f ?x y")
	app, ok := e.(*ast.ExprApp)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprApp", e)
	}
	if len(app.ImplicitArgs) != 1 || len(app.Args) != 1 {
		t.Fatalf("ImplicitArgs/Args = %d/%d, want 1/1", len(app.ImplicitArgs), len(app.Args))
	}
}

func TestParseInfixRightAssociative(t *testing.T) {
	e, env := parseTop(t, "1 + 2 + 3")
	outer, ok := e.(*ast.ExprInfix)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprInfix", e)
	}
	if env.String(outer.Op) != "+" {
		t.Fatalf("outer.Op = %q, want +", env.String(outer.Op))
	}
	lhs, ok := outer.Lhs.(*ast.ExprLiteral)
	if !ok || lhs.Lit.Value != "1" {
		t.Fatalf("outer.Lhs = %#v, want literal 1", outer.Lhs)
	}
	inner, ok := outer.Rhs.(*ast.ExprInfix)
	if !ok {
		t.Fatalf("outer.Rhs = %#v, want nested ExprInfix (right associativity)", outer.Rhs)
	}
	if lit, ok := inner.Lhs.(*ast.ExprLiteral); !ok || lit.Lit.Value != "2" {
		t.Fatalf("inner.Lhs = %#v, want literal 2", inner.Lhs)
	}
	if lit, ok := inner.Rhs.(*ast.ExprLiteral); !ok || lit.Lit.Value != "3" {
		t.Fatalf("inner.Rhs = %#v, want literal 3", inner.Rhs)
	}
}

func TestParseLambda(t *testing.T) {
	e, env := parseTop(t, `\x y -> x`)
	lam, ok := e.(*ast.ExprLambda)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLambda", e)
	}
	if len(lam.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(lam.Args))
	}
	body, ok := lam.Body.(*ast.ExprIdent)
	if !ok || env.String(body.Name) != "x" {
		t.Fatalf("Body = %#v, want ident x", lam.Body)
	}
}

func TestParseLambdaImplicitArgument(t *testing.T) {
	e, _ := parseTop(t, `\?x -> x`)
	lam, ok := e.(*ast.ExprLambda)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLambda", e)
	}
	if len(lam.Args) != 1 || !lam.Args[0].Implicit {
		t.Fatalf("Args = %#v, want one implicit argument", lam.Args)
	}
}

func TestParseTuple(t *testing.T) {
	e, _ := parseTop(t, "(1, 2, 3)")
	tup, ok := e.(*ast.ExprTuple)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprTuple", e)
	}
	if len(tup.Elems) != 3 {
		t.Fatalf("len(Elems) = %d, want 3", len(tup.Elems))
	}
}

func TestParseParenSingleElementIsNotATuple(t *testing.T) {
	e, _ := parseTop(t, "(1)")
	if _, ok := e.(*ast.ExprTuple); ok {
		t.Fatal("single parenthesized element parsed as a tuple")
	}
	if _, ok := e.(*ast.ExprLiteral); !ok {
		t.Fatalf("got %T, want the unwrapped literal", e)
	}
}

func TestParseArray(t *testing.T) {
	e, _ := parseTop(t, "[1, 2]")
	arr, ok := e.(*ast.ExprArray)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprArray", e)
	}
	if len(arr.Elems) != 2 {
		t.Fatalf("len(Elems) = %d, want 2", len(arr.Elems))
	}
}

func TestParseRecordSplitsFieldsByCase(t *testing.T) {
	e, env := parseTop(t, "{ x = 1, Y = 2 }")
	rec, ok := e.(*ast.ExprRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprRecord", e)
	}
	if len(rec.Exprs) != 1 || env.String(rec.Exprs[0].Name) != "x" {
		t.Fatalf("Exprs = %#v, want one field named x", rec.Exprs)
	}
	if len(rec.Types) != 1 || env.String(rec.Types[0].Name) != "Y" {
		t.Fatalf("Types = %#v, want one field named Y", rec.Types)
	}
}

func TestParseRecordUpdateBase(t *testing.T) {
	e, _ := parseTop(t, "{ x = 1, .. base }")
	rec, ok := e.(*ast.ExprRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprRecord", e)
	}
	if rec.Base == nil {
		t.Fatal("Base is nil, want the spread expression")
	}
	if _, ok := rec.Base.(*ast.ExprIdent); !ok {
		t.Fatalf("Base = %#v, want ident", rec.Base)
	}
}

func TestParseProjection(t *testing.T) {
	e, env := parseTop(t, "x.y.z")
	outer, ok := e.(*ast.ExprProjection)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprProjection", e)
	}
	if env.String(outer.Field) != "z" {
		t.Fatalf("outer.Field = %q, want z", env.String(outer.Field))
	}
	inner, ok := outer.X.(*ast.ExprProjection)
	if !ok || env.String(inner.Field) != "y" {
		t.Fatalf("outer.X = %#v, want projection .y", outer.X)
	}
}

func TestParseIfElse(t *testing.T) {
	e, _ := parseTop(t, "if x then 1 else 2")
	ie, ok := e.(*ast.ExprIfElse)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprIfElse", e)
	}
	if _, ok := ie.Then.(*ast.ExprBlock); !ok {
		t.Fatalf("Then = %#v, want an ExprBlock wrapper", ie.Then)
	}
	if _, ok := ie.Else.(*ast.ExprBlock); !ok {
		t.Fatalf("Else = %#v, want an ExprBlock wrapper", ie.Else)
	}
}

func TestParseMatch(t *testing.T) {
	e, env := parseTop(t, "match x with | Some y -> y | None -> 0")
	m, ok := e.(*ast.ExprMatch)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprMatch", e)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("len(Arms) = %d, want 2", len(m.Arms))
	}
	ctor, ok := m.Arms[0].Pat.(*ast.PatternConstructor)
	if !ok || env.String(ctor.Name) != "Some" {
		t.Fatalf("Arms[0].Pat = %#v, want constructor Some", m.Arms[0].Pat)
	}
	if len(ctor.Args) != 1 {
		t.Fatalf("Some pattern has %d args, want 1", len(ctor.Args))
	}
}

func TestParseLet(t *testing.T) {
	e, env := parseTop(t, "let x = 1 in x")
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	if let.Kind != ast.LetPlain {
		t.Fatalf("Kind = %v, want LetPlain", let.Kind)
	}
	if len(let.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(let.Bindings))
	}
	name, ok := let.Bindings[0].Name.(*ast.PatternIdent)
	if !ok || env.String(name.Name) != "x" {
		t.Fatalf("Bindings[0].Name = %#v, want PatternIdent x", let.Bindings[0].Name)
	}
}

func TestParseLetWithArgs(t *testing.T) {
	e, _ := parseTop(t, "let f x y = x in f")
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	if len(let.Bindings[0].Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(let.Bindings[0].Args))
	}
}

func TestParseRecValueBinding(t *testing.T) {
	e, env := parseTop(t, "rec even n = n in even")
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	if let.Kind != ast.LetRecursive {
		t.Fatalf("Kind = %v, want LetRecursive", let.Kind)
	}
	if len(let.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(let.Bindings))
	}
	name, ok := let.Bindings[0].Name.(*ast.PatternIdent)
	if !ok || env.String(name.Name) != "even" {
		t.Fatalf("Bindings[0].Name = %#v, want PatternIdent even", let.Bindings[0].Name)
	}
}

// A multi-line "rec" lays its binding list out across several lines at
// the same indent, so the reference lexer brackets it with
// BLOCK_OPEN/BLOCK_SEPARATOR/BLOCK_CLOSE the same way it would a block;
// parseRec must consume that bracketing instead of choking on the
// BLOCK_OPEN before it ever sees the first binding.
func TestParseRecMultipleValueBindingsWithLayout(t *testing.T) {
	src := "rec\n  even n = n\n  odd n = n\nin even"
	e, env := parseTop(t, src)
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	if let.Kind != ast.LetRecursive {
		t.Fatalf("Kind = %v, want LetRecursive", let.Kind)
	}
	if len(let.Bindings) != 2 {
		t.Fatalf("len(Bindings) = %d, want 2", len(let.Bindings))
	}
	first, ok := let.Bindings[0].Name.(*ast.PatternIdent)
	if !ok || env.String(first.Name) != "even" {
		t.Fatalf("Bindings[0].Name = %#v, want PatternIdent even", let.Bindings[0].Name)
	}
	second, ok := let.Bindings[1].Name.(*ast.PatternIdent)
	if !ok || env.String(second.Name) != "odd" {
		t.Fatalf("Bindings[1].Name = %#v, want PatternIdent odd", let.Bindings[1].Name)
	}
}

func TestParseRecTypeBinding(t *testing.T) {
	e, env := parseTop(t, "rec type A = Int in A")
	tb, ok := e.(*ast.ExprTypeBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprTypeBindings", e)
	}
	if len(tb.Bindings) != 1 {
		t.Fatalf("len(Bindings) = %d, want 1", len(tb.Bindings))
	}
	if env.String(tb.Bindings[0].Name.Name) != "A" {
		t.Fatalf("Bindings[0].Name = %q, want A", env.String(tb.Bindings[0].Name.Name))
	}
}

func TestParseTypeBindingExpr(t *testing.T) {
	e, env := parseTop(t, "type Foo = Int in Foo")
	tb, ok := e.(*ast.ExprTypeBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprTypeBindings", e)
	}
	if len(tb.Bindings) != 1 || env.String(tb.Bindings[0].Name.Name) != "Foo" {
		t.Fatalf("Bindings = %#v, want one binding named Foo", tb.Bindings)
	}
	builtin, ok := tb.Bindings[0].Alias.Body.(*ast.TypeBuiltin)
	if !ok || builtin.Builtin != ast.BuiltinInt {
		t.Fatalf("Alias.Body = %#v, want TypeBuiltin{BuiltinInt}", tb.Bindings[0].Alias.Body)
	}
}

func TestParseDo(t *testing.T) {
	e, env := parseTop(t, "do x = action in x")
	do, ok := e.(*ast.ExprDo)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprDo", e)
	}
	if do.Id == nil || env.String(do.Id.Name) != "x" {
		t.Fatalf("Id = %#v, want ident x", do.Id)
	}
	bound, ok := do.Bound.(*ast.ExprIdent)
	if !ok || env.String(bound.Name) != "action" {
		t.Fatalf("Bound = %#v, want ident action", do.Bound)
	}
}

func TestParseSeq(t *testing.T) {
	e, _ := parseTop(t, "seq action in next")
	do, ok := e.(*ast.ExprDo)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprDo", e)
	}
	if do.Id != nil {
		t.Fatalf("Id = %#v, want nil for seq", do.Id)
	}
}

func TestParseMetadataOnLetBinding(t *testing.T) {
	e, _ := parseTop(t, "let #[inline] x = 1 in x")
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	meta := let.Bindings[0].Metadata
	if len(meta.Attributes) != 1 {
		t.Fatalf("len(Attributes) = %d, want 1", len(meta.Attributes))
	}
}

func TestParseAttributeWithArguments(t *testing.T) {
	e, env := parseTop(t, "let #[deprecated(since 1, 2)] x = 1 in x")
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings", e)
	}
	attrs := let.Bindings[0].Metadata.Attributes
	if len(attrs) != 1 || env.String(attrs[0].Name) != "deprecated" {
		t.Fatalf("Attributes = %#v, want one attribute named deprecated", attrs)
	}
	if attrs[0].Arguments == nil || *attrs[0].Arguments != "since 1, 2" {
		t.Fatalf("Arguments = %v, want %q", attrs[0].Arguments, "since 1, 2")
	}
}

func TestParseRecordFieldMetadata(t *testing.T) {
	e, _ := parseTop(t, "{ #[deprecated] x = 1 }")
	rec, ok := e.(*ast.ExprRecord)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprRecord", e)
	}
	if len(rec.Exprs[0].Metadata.Attributes) != 1 {
		t.Fatalf("field metadata = %#v, want one attribute", rec.Exprs[0].Metadata)
	}
}

// --- Recovery ---

func TestParseMatchArmMissingArrowRecovers(t *testing.T) {
	e, _, msgs := parseTopErr(t, "match x with | y")
	if len(msgs) == 0 {
		t.Fatal("expected at least one diagnostic for a match arm missing '->'")
	}
	m, ok := e.(*ast.ExprMatch)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprMatch even with a malformed arm", e)
	}
	if len(m.Arms) != 1 {
		t.Fatalf("len(Arms) = %d, want 1 (recovered)", len(m.Arms))
	}
	if _, ok := m.Arms[0].Body.(*ast.ExprBlock).Exprs[0].(*ast.ExprError); !ok {
		t.Fatalf("Arms[0].Body = %#v, want an ExprBlock wrapping an ExprError", m.Arms[0].Body)
	}
}

func TestParseLetMissingBindRecovers(t *testing.T) {
	e, _, msgs := parseTopErr(t, "let x in x")
	if len(msgs) == 0 {
		t.Fatal("expected at least one diagnostic for a let binding missing '='")
	}
	let, ok := e.(*ast.ExprLetBindings)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprLetBindings even with the malformed binding", e)
	}
	if _, ok := let.Bindings[0].Body.(*ast.ExprError); !ok {
		t.Fatalf("Bindings[0].Body = %#v, want *ast.ExprError", let.Bindings[0].Body)
	}
}

func TestParseProjectionMissingFieldRecovers(t *testing.T) {
	e, env, msgs := parseTopErr(t, "x.")
	if len(msgs) == 0 {
		t.Fatal("expected a diagnostic for a projection with no field name")
	}
	proj, ok := e.(*ast.ExprProjection)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprProjection", e)
	}
	if proj.Field != env.EmptyId() {
		t.Fatalf("Field = %v, want the environment's empty-id sentinel %v", proj.Field, env.EmptyId())
	}
}
