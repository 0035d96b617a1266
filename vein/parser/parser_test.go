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

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/intern"
	"github.com/veinlang/vein/vein/lex"
	"github.com/veinlang/vein/vein/parser"
)

// newParser builds a fresh Parser reading src through the reference
// lexer, for tests that need more than the canned entry points below
// (e.g. to inspect p.Errors() after a deliberately malformed input).
// The returned Environment lets a test stringify any Id it finds in
// the resulting tree back to the name the source spelled out.
func newParser(src string) (*parser.Parser, *intern.Environment) {
	env := intern.New()
	return parser.New(lex.New(src), env, arena.New(), ast.NewSimpleKindCache()), env
}

// parseTop parses src (a single top-level expression) and fails the
// test if any diagnostics were produced. Most test inputs are on one
// line, which sidesteps the reference lexer's indentation-based layout
// rule: layout tokens are only synthesized at a line break, so a
// one-line source parses as the bare expression with no implicit block
// wrapper. A multi-line input gets layout tokens at each indented line.
func parseTop(t *testing.T, src string) (ast.Expr, *intern.Environment) {
	t.Helper()
	p, env := newParser(src)
	e := p.TopExpr()
	if errs := p.Errors(); errs.Len() > 0 {
		t.Fatalf("unexpected parse errors for %q: %s", src, errs.Error())
	}
	return e, env
}

// parseTopErr parses src and returns the raw top-level result, its
// Environment, and the accumulated diagnostics, for tests exercising
// recovery.
func parseTopErr(t *testing.T, src string) (ast.Expr, *intern.Environment, []string) {
	t.Helper()
	p, env := newParser(src)
	e := p.TopExpr()
	errs := p.Errors()
	msgs := make([]string, errs.Len())
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return e, env, msgs
}
