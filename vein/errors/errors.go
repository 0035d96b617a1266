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

// Package errors implements the parser's error sink. Errors never abort
// a parse: every production appends to a List and returns a structurally
// valid AST fragment.
package errors

import (
	"fmt"
	"strings"

	"github.com/mpvl/unique"

	"github.com/veinlang/vein/vein/token"
)

// Error is a single diagnostic with a precise source span.
type Error struct {
	Pos     token.Pos
	EndPos  token.Pos
	Message string

	// Expected lists the token descriptions that would have been
	// accepted where Message's unexpected token was found. Empty for
	// free-form diagnostics.
	Expected []string
}

func (e *Error) Error() string {
	if len(e.Expected) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (expected %s)", e.Message, strings.Join(e.Expected, ", "))
}

// Position reports the error's starting byte offset.
func (e *Error) Position() token.Pos { return e.Pos }

// New creates a plain diagnostic at pos.
func New(pos token.Pos, msg string) *Error {
	return &Error{Pos: pos, EndPos: pos, Message: msg}
}

// Newf creates a formatted diagnostic at pos.
func Newf(pos token.Pos, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, EndPos: pos, Message: fmt.Sprintf(format, args...)}
}

// Unexpected reports a token found where one of expected was required.
func Unexpected(pos, end token.Pos, found string, expected []string) *Error {
	return &Error{
		Pos:      pos,
		EndPos:   end,
		Message:  fmt.Sprintf("unexpected %s", found),
		Expected: expected,
	}
}

// List is an append-only collection of diagnostics in parse order.
type List []*Error

// Add appends an already-built diagnostic.
func (l *List) Add(err *Error) {
	*l = append(*l, err)
}

// AddNewf appends a formatted diagnostic at pos.
func (l *List) AddNewf(pos token.Pos, format string, args ...interface{}) {
	l.Add(Newf(pos, format, args...))
}

// Len reports the number of collected diagnostics.
func (l List) Len() int { return len(l) }

// Error implements the error interface so a List can be returned
// wherever a single error is expected; it is nil-safe (an empty list
// has no string form worth returning, callers should check Len first).
func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Append merges src into dst in parse order and returns the result.
func Append(dst List, src ...*Error) List {
	return append(dst, src...)
}

// SortUnique orders diagnostics by position and discards any entry with
// the same position and message as another (EndPos and Expected are not
// compared), duplicates which recovery productions can otherwise emit twice when
// a single malformed token trips more than one production in the same
// pass.
func (l List) SortUnique() List {
	cp := make(sortableList, len(l))
	copy(cp, l)
	unique.Sort(&cp)
	return List(cp)
}

// *sortableList satisfies unique.Interface (sort.Interface plus
// Truncate), letting mpvl/unique both order the diagnostics and drop
// the adjacent duplicates a sort exposes.
type sortableList List

func (l sortableList) Len() int      { return len(l) }
func (l sortableList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l sortableList) Less(i, j int) bool {
	if l[i].Pos != l[j].Pos {
		return l[i].Pos < l[j].Pos
	}
	return l[i].Message < l[j].Message
}
func (l *sortableList) Truncate(n int) { *l = (*l)[:n] }
