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

import (
	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/token"
)

// Builder wraps an Arena and a KindCache with the handful of Type
// constructors the grammar needs repeatedly. It is the "type cache"
// collaborator named in the external interfaces: callers (normally the
// parser) use it instead of allocating Type nodes by hand. Of its
// constructors only Opaque consults the kind cache; Hole and EmptyRow
// allocate plain nodes.
type Builder struct {
	Arena *arena.Arena
	Kinds KindCache
}

// NewBuilder returns a Builder over a with a default SimpleKindCache.
func NewBuilder(a *arena.Arena) *Builder {
	return &Builder{Arena: a, Kinds: NewSimpleKindCache()}
}

// Hole returns the inferred-type placeholder at pos.
func (b *Builder) Hole(pos token.Pos) Type {
	return arena.Alloc(b.Arena, TypeHole{Span: Span{pos, pos}})
}

// EmptyRow returns the closed-row terminator at pos.
func (b *Builder) EmptyRow(pos token.Pos) Type {
	return arena.Alloc(b.Arena, TypeEmptyRow{Span: Span{pos, pos}})
}

// ExtendRow builds one row-spine link whose type-level part is types,
// value-level part is fields, terminated in rest.
func (b *Builder) ExtendRow(span Span, types, fields []RowField, rest Type) Type {
	return arena.Alloc(b.Arena, TypeExtendRow{
		Span:   span,
		Types:  arena.AllocExtend(b.Arena, types),
		Fields: arena.AllocExtend(b.Arena, fields),
		Rest:   rest,
	})
}

// ExtendFullRow is ExtendRow without a separate copy step for callers
// that already hold arena-owned slices.
func (b *Builder) ExtendFullRow(span Span, types, fields []RowField, rest Type) Type {
	return arena.Alloc(b.Arena, TypeExtendRow{Span: span, Types: types, Fields: fields, Rest: rest})
}

// Tuple_ builds a tuple type from two or more elements; the grammar
// unwraps a single parenthesized type before reaching here.
func (b *Builder) Tuple_(span Span, elems []Type) Type {
	return arena.Alloc(b.Arena, TypeApp{
		Span: span,
		Head: arena.Alloc(b.Arena, TypeBuiltin{Span: span, Builtin: BuiltinFunc}),
		Args: arena.AllocExtend(b.Arena, elems),
	})
}

// FunctionType right-folds args into nested Function nodes ending in
// ret, each tagged with argKind.
func (b *Builder) FunctionType(argKind ArgKind, args []Type, ret Type) Type {
	result := ret
	for i := len(args) - 1; i >= 0; i-- {
		span := NewSpan(args[i].Pos(), result.End())
		result = arena.Alloc(b.Arena, TypeFunction{
			Span:    span,
			ArgKind: argKind,
			From:    args[i],
			To:      result,
		})
	}
	return result
}

// Forall wraps body in a universal quantifier over params.
func (b *Builder) Forall(span Span, params []*Ident, body Type) Type {
	return arena.Alloc(b.Arena, TypeForall{Span: span, Params: arena.AllocExtend(b.Arena, params), Body: body})
}

// Opaque returns the abstract result type every data constructor
// function in a variant declaration ends in.
func (b *Builder) Opaque(pos token.Pos) Type {
	return arena.Alloc(b.Arena, TypeIdent{Span: Span{pos, pos}, Kind: b.Kinds.Typ()})
}
