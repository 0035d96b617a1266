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

// Package ast defines the typed AST the parser produces. Every node is
// arena-owned for the lifetime of a single parse: there are no back
// pointers and no node outlives the arena that allocated it. Child
// lists are plain slices allocated contiguously by the arena, not
// linked structures.
package ast

import (
	"github.com/veinlang/vein/vein/intern"
	"github.com/veinlang/vein/vein/token"
)

// Node is implemented by every AST entity. Every node's span must
// contain the span of each of its children.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Span gives a node its position. Embed it in every concrete node type.
type Span struct {
	Start  token.Pos
	EndPos token.Pos
}

// Pos reports the node's starting byte offset.
func (s Span) Pos() token.Pos { return s.Start }

// End reports the byte offset one past the node's last byte.
func (s Span) End() token.Pos { return s.EndPos }

// NewSpan builds a Span from a start and end position, swapping them
// if a caller accidentally passes them reversed; this can only arise
// from a parser bug, but recovering silently beats asserting in a
// package whose whole purpose is to never panic out of a parse.
func NewSpan(start, end token.Pos) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, EndPos: end}
}

// Id re-exports the interned identifier type so callers of this
// package don't need to import intern directly for field types.
type Id = intern.Id

// Ident is a single interned name together with the span of its
// occurrence. Name is an opaque symbol; String rendering always goes
// through the Environment that interned it.
type Ident struct {
	Span
	Name Id

	// Upper records whether Name's first rune was upper case at parse
	// time, i.e. whether this occurrence reads as a constructor/type
	// name under the case-discipline rule. It is cached at parse time
	// because by the time type checking runs the only other place to
	// recover this is re-stringifying through the environment.
	Upper bool
}
