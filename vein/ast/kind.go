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

// Kind classifies a Type: Hole (inferred), Type (the kind of ordinary
// types), Row (the kind of record/variant/effect rows), or an arrow
// between kinds.
type Kind interface {
	Node
	isKind()
}

// KindHole is "_": let the caller infer the kind.
type KindHole struct{ Span }

// KindType is the kind of ordinary, fully-applied types.
type KindType struct{ Span }

// KindRow is the kind of record, variant, and effect rows.
type KindRow struct{ Span }

// KindArrow is a higher-kinded arrow, e.g. Type -> Type.
type KindArrow struct {
	Span
	From, To Kind
}

func (*KindHole) isKind()  {}
func (*KindType) isKind()  {}
func (*KindRow) isKind()   {}
func (*KindArrow) isKind() {}

// KindCache canonicalizes the zero-ary kinds so that repeated parses
// sharing one cache (per the concurrency model, kind caches are
// read-mostly and may be shared across parses under the caller's
// discipline) don't re-allocate Hole/Type/Row nodes for every
// occurrence. It is supplied by the caller; the parser never
// constructs one itself.
type KindCache interface {
	Hole() Kind
	Typ() Kind
	Row() Kind
}

// SimpleKindCache is the default KindCache: it hands out one shared
// instance per zero-ary kind, each with a zero Span (offset 0, not
// token.NoPos), since a cached kind has no single occurrence to point at.
type SimpleKindCache struct {
	hole, typ, row Kind
}

// NewSimpleKindCache returns a ready-to-use, unsynchronized KindCache.
// Like other caller-supplied caches, concurrent use across parses is
// the caller's responsibility.
func NewSimpleKindCache() *SimpleKindCache {
	return &SimpleKindCache{
		hole: &KindHole{},
		typ:  &KindType{},
		row:  &KindRow{},
	}
}

func (c *SimpleKindCache) Hole() Kind { return c.hole }
func (c *SimpleKindCache) Typ() Kind  { return c.typ }
func (c *SimpleKindCache) Row() Kind  { return c.row }
