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

// Builtin names a primitive type or the function type constructor.
type Builtin int

const (
	BuiltinInt Builtin = iota
	BuiltinFloat
	BuiltinString
	BuiltinBytes
	BuiltinBool
	BuiltinFunc // the bare "(->)" function constructor
)

var builtinNames = map[string]Builtin{
	"Int":    BuiltinInt,
	"Float":  BuiltinFloat,
	"String": BuiltinString,
	"Bytes":  BuiltinBytes,
	"Bool":   BuiltinBool,
}

// LookupBuiltin reports the Builtin a dotted-path-free type name
// denotes, if any.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtinNames[name]
	return b, ok
}

// ArgKind tags how a Function argument is supplied: written out
// explicitly, elided and resolved implicitly, or standing for a
// constructor's argument position in a lowered variant field.
type ArgKind int

const (
	ArgExplicit ArgKind = iota
	ArgImplicit
	ArgConstructor
)

// Type is the AST for the type grammar: atomic types, applications,
// function arrows, foralls, and the row-backed records/variants/
// effects.
type Type interface {
	Node
	isType()
}

// TypeHole is "_": infer this type.
type TypeHole struct{ Span }

// TypeBuiltin names a primitive type or the function constructor.
type TypeBuiltin struct {
	Span
	Builtin Builtin
}

// TypeIdent is a named type; an uppercase-leading identifier.
type TypeIdent struct {
	Span
	Name Id
	Kind Kind
}

// TypeGeneric is a type variable; a lowercase-leading identifier.
type TypeGeneric struct {
	Span
	Name Id
	Kind Kind
}

// TypeProjection is a dotted path, e.g. M.T.
type TypeProjection struct {
	Span
	Path []*Ident
}

// TypeApp is a type application: Head Arg1 Arg2 ...
type TypeApp struct {
	Span
	Head Type
	Args []Type
}

// TypeFunction is an arrow type. ArgKind records whether From was
// written explicitly, behind an implicit "[ ]" marker, or re-tagged as
// a constructor argument during variant lowering.
type TypeFunction struct {
	Span
	ArgKind  ArgKind
	From, To Type
}

// TypeForall is a rank-n quantifier.
type TypeForall struct {
	Span
	Params []*Ident
	Body   Type
}

// TypeRecord is "{ row }".
type TypeRecord struct {
	Span
	Row Type
}

// TypeVariant is "variant row", used both for inline variant types and
// for the lowered right-hand side of a variant type binding.
type TypeVariant struct {
	Span
	Row Type
}

// TypeEffect is "[| row |]".
type TypeEffect struct {
	Span
	Row Type
}

// RowField is one entry in a row's type-level or value-level spine.
type RowField struct {
	Span
	Metadata Metadata
	Name     Id
	Value    Type
}

// TypeExtendRow is one link of a row spine, followed by Rest (another
// ExtendRow, EmptyRow, or an open type variable). Types holds the
// link's type-level associations and Fields its value-level fields;
// the parser puts every field of one record, effect or variant row
// into a single link, so either slice may hold several entries and
// either (or both, for an open-row "(.. r)") may be empty.
type TypeExtendRow struct {
	Span
	Types  []RowField
	Fields []RowField
	Rest   Type
}

// TypeEmptyRow closes a row.
type TypeEmptyRow struct{ Span }

func (*TypeHole) isType()       {}
func (*TypeBuiltin) isType()    {}
func (*TypeIdent) isType()      {}
func (*TypeGeneric) isType()    {}
func (*TypeProjection) isType() {}
func (*TypeApp) isType()        {}
func (*TypeFunction) isType()   {}
func (*TypeForall) isType()     {}
func (*TypeRecord) isType()     {}
func (*TypeVariant) isType()    {}
func (*TypeEffect) isType()     {}
func (*TypeExtendRow) isType()  {}
func (*TypeEmptyRow) isType()   {}

// TypeBinding is "type Name params = alias". Name/Params restate the
// surface declaration head; Alias carries the same data shaped for the
// downstream elaborator, which is the form every other consumer of a
// TypeBinding actually walks.
type TypeBinding struct {
	Span
	Metadata Metadata
	Name     *Ident
	Params   []*Ident
	Alias    AliasData
}

// AliasData is the body of a type binding: a plain type alias or a
// (possibly universally quantified) variant declaration lowered per
// the variant-lowering law.
type AliasData struct {
	Name   *Ident
	Params []*Ident
	Body   Type
}
