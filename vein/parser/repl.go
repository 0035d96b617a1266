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

package parser

import (
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/token"
)

// TopExpr parses a single top-level expression: an optional leading
// shebang line (already consumed upstream by the lexer and surfaced
// here only if the token stream still carries one), one expression,
// then discards any trailing noise via recovery so a caller driving
// one file through the parser gets back exactly one tree.
func (p *Parser) TopExpr() ast.Expr {
	if p.tok == token.SHEBANG {
		p.next()
	}
	e := p.parseExpr()
	for p.tok != token.EOF {
		p.errorExpected(p.pos, "end of input")
		p.next()
	}
	return e
}

// ReplLine parses one interactive input line per §4.6: a top-level
// expression, a layout-delimited plain value binding standing alone
// (so a REPL can bind a name without wrapping it in "let ... in"), or
// nothing at all for a blank line.
func (p *Parser) ReplLine() ast.ReplLine {
	if p.tok == token.EOF {
		return ast.ReplLine{}
	}
	if p.tok == token.BLOCK_OPEN {
		p.next()
		meta := p.parseMetadata()
		binding := p.parseValueBindingBody(p.pos, meta)
		p.expectClosing(token.BLOCK_CLOSE, "REPL binding")
		return ast.ReplLine{Let: binding}
	}
	return ast.ReplLine{Expr: p.TopExpr()}
}
