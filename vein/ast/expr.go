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

package ast

import "github.com/veinlang/vein/vein/token"

// BasicLit is a literal token carried through to the AST mostly
// unprocessed; unescaping of string/char/byte text happens in the
// literal package on demand rather than eagerly at parse time, so a
// malformed escape in a literal nobody ever inspects costs nothing.
type BasicLit struct {
	Span
	Kind  token.Token // INT, FLOAT, STRING, CHAR, or BYTE
	Value string      // raw, as it appeared in source
}

// Expr is the AST for the expression grammar.
type Expr interface {
	Node
	isExpr()
}

// ExprIdent is a bare identifier or operator-as-identifier reference.
type ExprIdent struct {
	Span
	Name Id
}

// ExprLiteral wraps a literal token as an expression.
type ExprLiteral struct {
	Span
	Lit *BasicLit
}

// ExprProjection is "x.field". A recovery-only variant (field after an
// unparsable ".") binds Field to the environment's empty identifier.
type ExprProjection struct {
	Span
	X     Expr
	Field Id
}

// ExprTuple is "(e, ...)" with two or more elements; a single
// parenthesized element is not a tuple and is unwrapped by the parser.
type ExprTuple struct {
	Span
	Elems []Expr
}

// ExprArray is "[e, ...]".
type ExprArray struct {
	Span
	Elems []Expr
}

// RecordField is one field of a record expression.
type RecordField struct {
	Span
	Metadata Metadata
	Name     Id
	Value    Expr
}

// ExprRecord is a record expression; Types and Exprs are split by
// whether the field name is uppercase- or lowercase-leading, each
// preserving source order within its own bucket. Base is the expression
// after ".." in a record-update/spread position, or nil.
type ExprRecord struct {
	Span
	Types []RecordField
	Exprs []RecordField
	Base  Expr
}

// ExprApp is a function application. At least one of ImplicitArgs and
// Args is non-empty.
type ExprApp struct {
	Span
	Func         Expr
	ImplicitArgs []Expr
	Args         []Expr
}

// ExprInfix is a binary operator application; the grammar is
// right-associative with no precedence among operators; a later pass
// reshuffles by precedence using Op's spelling.
type ExprInfix struct {
	Span
	Lhs          Expr
	Op           Id
	Rhs          Expr
	ImplicitArgs []Expr
}

// LambdaArgument is one parameter of a lambda; Implicit marks params
// introduced as "?pat" rather than "pat".
type LambdaArgument struct {
	Span
	Pat      Pattern
	Implicit bool
}

// ExprLambda is "\args -> body". Id is the empty identifier: lambdas
// have no name of their own, but carrying a (sentinel) Id here lets
// downstream passes treat lambdas uniformly with named bindings when
// they need to print or key on a binding's identity.
type ExprLambda struct {
	Span
	Id   Id
	Args []LambdaArgument
	Body Expr
}

// ExprIfElse is "if c then t else f".
type ExprIfElse struct {
	Span
	Cond, Then, Else Expr
}

// MatchArm is one "| pattern -> body" alternative. Recovery may
// produce (Error pattern, Error body) or (pattern, Error body) when the
// arrow or body is missing; Body is always itself an ExprBlock.
type MatchArm struct {
	Span
	Pat  Pattern
	Body Expr
}

// ExprMatch is "match scrutinee with arms...".
type ExprMatch struct {
	Span
	Scrutinee Expr
	Arms      []MatchArm
}

// LetKind distinguishes a plain "let" from a "rec" block of mutually
// recursive bindings.
type LetKind int

const (
	LetPlain LetKind = iota
	LetRecursive
)

// ValueArgument is one formal parameter of a named let-binding.
type ValueArgument struct {
	Span
	Pat      Pattern
	Implicit bool
}

// ValueBinding is a single "let"/"rec" value binding. A pattern-bound
// let has no Args; a named let binds Name to PatternIdent and may carry
// implicit or explicit Args.
type ValueBinding struct {
	Span
	Metadata       Metadata
	Name           Pattern
	Args           []ValueArgument
	TypeAnnotation Type // nil if absent
	Body           Expr
}

// ExprLetBindings is "let ... in body" or "rec <value bindings> in
// body".
type ExprLetBindings struct {
	Span
	Kind     LetKind
	Bindings []*ValueBinding
	Body     Expr
}

// ExprTypeBindings is "type ... in body" or "rec <type bindings> in
// body".
type ExprTypeBindings struct {
	Span
	Bindings []*TypeBinding
	Body     Expr
}

// ExprDo is "do p = m in body" (or the identifier-less "seq m in body",
// in which case Id is nil). FlatMapId, when set, names the desugared
// bind operation a later pass should use instead of the default.
type ExprDo struct {
	Span
	Id        *Ident
	Bound     Expr
	Body      Expr
	FlatMapId *Ident
}

// ExprBlock is "{ e ; e ; ... }", a layout-delimited sequence of
// expressions.
type ExprBlock struct {
	Span
	Exprs []Expr
}

// ExprError is the placeholder a recovery production substitutes for
// an expression it could not parse. Payload, when non-nil, preserves a
// partially-built subtree recovery chose not to discard.
type ExprError struct {
	Span
	Payload Expr
}

func (*ExprIdent) isExpr()        {}
func (*ExprLiteral) isExpr()      {}
func (*ExprProjection) isExpr()   {}
func (*ExprTuple) isExpr()        {}
func (*ExprArray) isExpr()        {}
func (*ExprRecord) isExpr()       {}
func (*ExprApp) isExpr()          {}
func (*ExprInfix) isExpr()        {}
func (*ExprLambda) isExpr()       {}
func (*ExprIfElse) isExpr()       {}
func (*ExprMatch) isExpr()        {}
func (*ExprLetBindings) isExpr()  {}
func (*ExprTypeBindings) isExpr() {}
func (*ExprDo) isExpr()           {}
func (*ExprBlock) isExpr()        {}
func (*ExprError) isExpr()        {}

// ReplLine is the result of parsing one interactive input: at most one
// of Expr and Let is set; both nil means the input was empty (None).
type ReplLine struct {
	Expr Expr
	Let  *ValueBinding
}
