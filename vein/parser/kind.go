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

// parseAtomicKind handles "_" | "Type" | "Row" | "(" Kind ")".
func (p *Parser) parseAtomicKind() ast.Kind {
	if p.trace {
		defer un(trace(p, "AtomicKind"))
	}
	pos := p.pos
	switch {
	case p.tok == token.IDENT && p.lit == "_":
		p.next()
		return p.kinds.Hole()
	case p.tok == token.IDENT && p.lit == "Type":
		p.next()
		return p.kinds.Typ()
	case p.tok == token.IDENT && p.lit == "Row":
		p.next()
		return p.kinds.Row()
	case p.tok == token.LPAREN:
		p.next()
		k := p.parseKind()
		p.expect(token.RPAREN)
		return k
	}
	p.errorExpected(pos, "'_'", "'Row'", "'Type'")
	p.next()
	return p.kinds.Hole()
}

// parseKind handles Kind → AtomicKind | AtomicKind "->" Kind, right
// associative.
func (p *Parser) parseKind() ast.Kind {
	if p.trace {
		defer un(trace(p, "Kind"))
	}
	from := p.parseAtomicKind()
	if p.tok != token.ARROW {
		return from
	}
	p.next()
	to := p.parseKind()
	return &ast.KindArrow{Span: ast.NewSpan(from.Pos(), to.End()), From: from, To: to}
}
