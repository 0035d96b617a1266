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
	"strconv"

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/token"
)

// startsAtomicPattern reports whether the lookahead can begin an
// AtomicPattern, used to decide whether constructor application
// continues gathering arguments.
func (p *Parser) startsAtomicPattern() bool {
	switch p.tok {
	case token.IDENT, token.LPAREN, token.LBRACE, token.INT, token.FLOAT, token.STRING, token.CHAR, token.BYTE:
		return true
	}
	return false
}

// parseAtomicPattern handles AtomicPattern.
func (p *Parser) parseAtomicPattern() ast.Pattern {
	if p.trace {
		defer un(trace(p, "AtomicPattern"))
	}
	start := p.pos
	switch {
	case p.tok == token.IDENT:
		name := p.lit
		id := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), name)
		p.next()
		if p.tok == token.AT {
			p.next()
			inner := p.parseAtomicPattern()
			return &ast.PatternAs{Span: ast.NewSpan(start, inner.End()), Name: id.Name, Pat: inner}
		}
		if id.Upper {
			return &ast.PatternConstructor{Span: id.Span, Name: id.Name}
		}
		return &ast.PatternIdent{Span: id.Span, Name: id.Name}

	case p.tok == token.INT, p.tok == token.FLOAT, p.tok == token.STRING, p.tok == token.CHAR, p.tok == token.BYTE:
		lit := &ast.BasicLit{Span: ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), Kind: p.tok, Value: p.lit}
		p.next()
		return &ast.PatternLiteral{Span: lit.Span, Lit: lit}

	case p.tok == token.LPAREN:
		p.next()
		mark := p.patternStack.Start()
		for p.tok != token.RPAREN && p.tok != token.EOF {
			p.patternStack.Push(p.parsePattern())
			if !p.atComma("pattern tuple", token.RPAREN) {
				break
			}
			if p.tok == token.COMMA {
				p.next()
			}
		}
		elems := p.patternStack.Drain(mark)
		end := p.expectClosing(token.RPAREN, "parenthesized pattern")
		if len(elems) == 1 {
			return elems[0]
		}
		return &ast.PatternTuple{Span: ast.NewSpan(start, end), Elems: arena.AllocExtend(p.arena, elems)}

	case p.tok == token.LBRACE:
		p.next()
		mark := p.patFieldStack.Start()
		for p.tok != token.RBRACE && p.tok != token.QUESTION && p.tok != token.EOF {
			p.patFieldStack.Push(p.parsePatternField())
			if !p.atComma("record pattern", token.RBRACE, token.QUESTION) {
				break
			}
			if p.tok == token.COMMA {
				p.next()
			}
		}
		fields := p.patFieldStack.Drain(mark)
		var implicit *ast.Id
		if p.tok == token.QUESTION {
			name := p.env.FromStr("implicit?" + strconv.Itoa(int(p.pos)))
			implicit = &name
			p.next()
		}
		end := p.expectClosing(token.RBRACE, "record pattern")
		return &ast.PatternRecord{Span: ast.NewSpan(start, end), Fields: arena.AllocExtend(p.arena, fields), ImplicitImport: implicit}

	default:
		p.errorExpected(start, "pattern")
		p.next()
		return &ast.PatternError{Span: ast.NewSpan(start, start)}
	}
}

// parsePatternField handles one PatternField: "Ident '=' Pattern" or a
// bare IdentStr, which types as a type field if uppercase-leading and
// otherwise binds the same name as a value field.
func (p *Parser) parsePatternField() ast.PatternField {
	start := p.pos
	if p.tok != token.IDENT {
		p.errorExpected(p.pos, "identifier")
		p.next()
		return ast.PatternField{Span: ast.NewSpan(start, p.pos)}
	}
	name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
	p.next()

	if p.tok == token.BIND {
		p.next()
		val := p.parsePattern()
		return ast.PatternField{Span: ast.NewSpan(start, val.End()), Name: name.Name, Value: val, IsType: name.Upper}
	}
	var val ast.Pattern
	if name.Upper {
		val = &ast.PatternConstructor{Span: name.Span, Name: name.Name}
	} else {
		val = &ast.PatternIdent{Span: name.Span, Name: name.Name}
	}
	return ast.PatternField{Span: name.Span, Name: name.Name, Value: val, IsType: name.Upper}
}

// parsePattern handles Pattern = AtomicPattern | Ident Many1<AtomicPattern>.
func (p *Parser) parsePattern() ast.Pattern {
	if p.trace {
		defer un(trace(p, "Pattern"))
	}
	if p.tok != token.IDENT {
		return p.parseAtomicPattern()
	}
	start := p.pos
	upper := ast.StartsUpper(p.lit)
	head := p.parseAtomicPattern()
	if !upper || !p.startsAtomicPattern() {
		return head
	}
	ctor, ok := head.(*ast.PatternConstructor)
	if !ok {
		return head
	}
	mark := p.patternStack.Start()
	for p.startsAtomicPattern() {
		p.patternStack.Push(p.parseAtomicPattern())
	}
	args := p.patternStack.Drain(mark)
	return &ast.PatternConstructor{
		Span: ast.NewSpan(start, args[len(args)-1].End()),
		Name: ctor.Name,
		Args: arena.AllocExtend(p.arena, args),
	}
}
