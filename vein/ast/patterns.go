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

// Pattern is the AST for the pattern grammar.
type Pattern interface {
	Node
	isPattern()
}

// PatternIdent binds a value to name; name is lowercase-leading.
type PatternIdent struct {
	Span
	Name Id
}

// PatternConstructor matches (and, with no Args, names) a constructor;
// Name is uppercase-leading.
type PatternConstructor struct {
	Span
	Name Id
	Args []Pattern
}

// PatternLiteral matches a literal value exactly.
type PatternLiteral struct {
	Span
	Lit *BasicLit
}

// PatternAs binds name to the whole of Pat while still destructuring it.
type PatternAs struct {
	Span
	Name Id
	Pat  Pattern
}

// PatternTuple destructures a tuple.
type PatternTuple struct {
	Span
	Elems []Pattern
}

// PatternField is one entry of a record pattern.
type PatternField struct {
	Span
	Name   Id
	Value  Pattern
	IsType bool
}

// PatternRecord destructures a record. ImplicitImport is non-nil when
// the pattern ended in "?": it names the fresh synthetic binding that
// captures the record's implicit arguments, of the form
// "implicit?<start-byte>" to guarantee it is unique within the parse.
type PatternRecord struct {
	Span
	Fields         []PatternField
	ImplicitImport *Id
}

// PatternError is the placeholder a recovery production substitutes
// for a pattern it could not parse.
type PatternError struct{ Span }

func (*PatternIdent) isPattern()       {}
func (*PatternConstructor) isPattern() {}
func (*PatternLiteral) isPattern()     {}
func (*PatternAs) isPattern()          {}
func (*PatternTuple) isPattern()       {}
func (*PatternRecord) isPattern()      {}
func (*PatternError) isPattern()       {}
