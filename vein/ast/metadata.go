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

// DocComment is the result of aggregating one or more consecutive
// documentation tokens: their texts joined with "\n". Category names
// the comment style; the parser leaves it empty, since the tokens it
// reads carry no category.
type DocComment struct {
	Span
	Text     string
	Category string
}

// Attribute is a "#[name(arguments)]" annotation. Arguments preserves
// the raw source text between the parens byte-for-byte, including
// whitespace and nested parens; it is never re-parsed by this package.
type Attribute struct {
	Span
	Name      Id
	Arguments *string // nil if the attribute had no argument list
}

// Metadata is the optional doc-comment-and-attributes prefix that can
// precede a type binding, a value binding, a rec-block (attached only
// to the first binding), or a record field.
type Metadata struct {
	Comment    *DocComment
	Attributes []*Attribute
}

// IsEmpty reports whether no metadata was present.
func (m Metadata) IsEmpty() bool {
	return m.Comment == nil && len(m.Attributes) == 0
}
