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
	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/token"
)

// parseDottedPath parses (Ident ".")* IdentStr and classifies the
// result per the atomic-type disambiguation rule: a lone "_" is Hole,
// a lone builtin name is Builtin, a lone uppercase name is Ident, a
// lone lowercase name is Generic, and a multi-segment path is a
// Projection regardless of case.
func (p *Parser) parseDottedPath() ast.Type {
	start := p.pos
	first := p.lit
	id := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), first)
	p.next()

	if p.tok != token.PERIOD {
		switch {
		case first == "_":
			return p.build.Hole(start)
		case ast.StartsUpper(first):
			if b, ok := ast.LookupBuiltin(first); ok {
				return &ast.TypeBuiltin{Span: ast.NewSpan(start, id.End()), Builtin: b}
			}
			return &ast.TypeIdent{Span: ast.NewSpan(start, id.End()), Name: id.Name, Kind: p.kinds.Hole()}
		default:
			return &ast.TypeGeneric{Span: ast.NewSpan(start, id.End()), Name: id.Name, Kind: p.kinds.Hole()}
		}
	}

	mark := p.identStack.Start()
	p.identStack.Push(id)
	for p.tok == token.PERIOD {
		p.next()
		if p.tok != token.IDENT {
			p.errorExpected(p.pos, "identifier")
			break
		}
		seg := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
		p.next()
		p.identStack.Push(seg)
	}
	path := p.identStack.Drain(mark)
	last := path[len(path)-1]
	return &ast.TypeProjection{Span: ast.NewSpan(start, last.End()), Path: arena.AllocExtend(p.arena, path)}
}

// parseAtomicType handles AtomicType_.
func (p *Parser) parseAtomicType() ast.Type {
	if p.trace {
		defer un(trace(p, "AtomicType"))
	}
	start := p.pos
	switch p.tok {
	case token.IDENT:
		return p.parseDottedPath()

	case token.LPAREN:
		p.next()
		if p.tok == token.ARROW {
			p.next()
			end := p.expect(token.RPAREN)
			return &ast.TypeBuiltin{Span: ast.NewSpan(start, end), Builtin: ast.BuiltinFunc}
		}
		if p.tok == token.ELLIPSIS {
			p.next()
			rest := p.parseAtomicType()
			end := p.expectClosing(token.RPAREN, "open row")
			return p.build.ExtendFullRow(ast.NewSpan(start, end), nil, nil, rest)
		}
		mark := p.typeStack.Start()
		for p.tok != token.RPAREN && p.tok != token.EOF {
			p.typeStack.Push(p.parseType())
			if !p.atComma("type tuple", token.RPAREN) {
				break
			}
			if p.tok == token.COMMA {
				p.next()
			}
		}
		elems := p.typeStack.Drain(mark)
		end := p.expectClosing(token.RPAREN, "parenthesized type")
		if len(elems) == 1 {
			return elems[0]
		}
		return p.build.Tuple_(ast.NewSpan(start, end), arena.AllocExtend(p.arena, elems))

	case token.LBRACK:
		return p.parseEffectRow(start)

	case token.LBRACE:
		return p.parseRecordType(start)

	default:
		p.errorExpected(start, "type")
		p.next()
		return p.build.Hole(start)
	}
}

// parseEffectRow handles "[" "|" Effect,* ("|" Type)? "|" "]".
// An Effect entry is "name : Type", an operation signature in the row;
// this shape isn't spelled out further in the grammar summary, so it
// is modeled the same as a value-level row field.
func (p *Parser) parseEffectRow(start token.Pos) ast.Type {
	p.next() // consume '['
	p.expect(token.PIPE)

	mark := p.fieldRowStack.Start()
	for p.tok != token.PIPE && p.tok != token.EOF {
		fstart := p.pos
		meta := p.parseMetadata()
		if p.tok != token.IDENT {
			p.errorExpected(p.pos, "identifier")
			break
		}
		name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
		p.next()
		p.expect(token.COLON)
		typ := p.parseType()
		p.fieldRowStack.Push(ast.RowField{
			Span:     ast.NewSpan(fstart, typ.End()),
			Metadata: meta,
			Name:     name.Name,
			Value:    typ,
		})
		if !p.atComma("effect row", token.PIPE) {
			break
		}
		if p.tok == token.COMMA {
			p.next()
		}
	}
	fields := p.fieldRowStack.Drain(mark)

	var rest ast.Type
	if p.tok == token.PIPE && !p.peekAfterPipeIsRBrack() {
		p.next()
		rest = p.parseType()
	}
	p.expect(token.PIPE)
	end := p.expect(token.RBRACK)
	if rest == nil {
		rest = p.build.EmptyRow(end)
	}
	row := p.build.ExtendFullRow(ast.NewSpan(start, end), nil, arena.AllocExtend(p.arena, fields), rest)
	return &ast.TypeEffect{Span: ast.NewSpan(start, end), Row: row}
}

// parseRecordType handles "{" RecordField,* ("|" Type)? "}".
func (p *Parser) parseRecordType(start token.Pos) ast.Type {
	p.next() // consume '{'

	typesMark := p.typeRowStack.Start()
	fieldsMark := p.fieldRowStack.Start()
	for p.tok != token.RBRACE && p.tok != token.PIPE && p.tok != token.EOF {
		p.parseRecordField()
		if !p.atComma("record type", token.RBRACE, token.PIPE) {
			break
		}
		if p.tok == token.COMMA {
			p.next()
		}
	}
	types := p.typeRowStack.Drain(typesMark)
	fields := p.fieldRowStack.Drain(fieldsMark)

	var rest ast.Type
	if p.tok == token.PIPE {
		p.next()
		rest = p.parseType()
	}
	end := p.expectClosing(token.RBRACE, "record type")
	if rest == nil {
		rest = p.build.EmptyRow(end)
	}
	row := p.build.ExtendFullRow(ast.NewSpan(start, end),
		arena.AllocExtend(p.arena, types), arena.AllocExtend(p.arena, fields), rest)
	return &ast.TypeRecord{Span: ast.NewSpan(start, end), Row: row}
}

// parseRecordField handles the three RecordField shapes, pushing the
// result onto p.typeRowStack or p.fieldRowStack per the type/value split.
func (p *Parser) parseRecordField() {
	start := p.pos
	meta := p.parseMetadata()
	if p.tok != token.IDENT {
		p.errorExpected(p.pos, "identifier")
		p.next()
		return
	}
	name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
	p.next()

	switch {
	case p.tok == token.COLON:
		p.next()
		typ := p.parseType()
		if name.Upper {
			p.errf(name.Pos(), "Defining a kind for a type in this location is not supported yet")
			p.typeRowStack.Push(ast.RowField{Span: ast.NewSpan(start, typ.End()), Metadata: meta, Name: name.Name, Value: typ})
			return
		}
		p.fieldRowStack.Push(ast.RowField{Span: ast.NewSpan(start, typ.End()), Metadata: meta, Name: name.Name, Value: typ})

	case p.tok == token.BIND:
		p.next()
		body := p.parseType()
		p.typeRowStack.Push(ast.RowField{Span: ast.NewSpan(start, body.End()), Metadata: meta, Name: name.Name, Value: body})

	case p.tok == token.IDENT:
		// "id Ident* '=' Type": params fold into a forall over the body,
		// the closest existing AST shape for a parameterized alias field.
		mark := p.identStack.Start()
		for p.tok == token.IDENT {
			pname := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
			p.next()
			p.identStack.Push(pname)
		}
		params := p.identStack.Drain(mark)
		p.expect(token.BIND)
		body := p.parseType()
		if len(params) > 0 {
			body = p.build.Forall(ast.NewSpan(params[0].Pos(), body.End()), arena.AllocExtend(p.arena, params), body)
		}
		p.typeRowStack.Push(ast.RowField{Span: ast.NewSpan(start, body.End()), Metadata: meta, Name: name.Name, Value: body})

	default:
		// bare "id": shorthand alias field with Hole body.
		p.typeRowStack.Push(ast.RowField{Span: ast.NewSpan(start, name.End()), Metadata: meta, Name: name.Name, Value: p.build.Hole(name.End())})
	}
}

// parseAppType handles AppType_ → AtomicType Many1<AtomicType>.
func (p *Parser) parseAppType() ast.Type {
	if p.trace {
		defer un(trace(p, "AppType"))
	}
	head := p.parseAtomicType()
	if !p.startsAtomicType() {
		return head
	}
	mark := p.typeStack.Start()
	for p.startsAtomicType() {
		p.typeStack.Push(p.parseAtomicType())
	}
	args := p.typeStack.Drain(mark)
	return &ast.TypeApp{Span: ast.NewSpan(head.Pos(), args[len(args)-1].End()), Head: head, Args: arena.AllocExtend(p.arena, args)}
}

// startsAtomicType reports whether the lookahead can begin AtomicType,
// used to decide whether application continues.
func (p *Parser) startsAtomicType() bool {
	switch p.tok {
	case token.IDENT, token.LPAREN, token.LBRACK, token.LBRACE:
		return true
	}
	return false
}

// parseArgType handles ArgType → AppType | "[" Type "]". "[|" is an
// effect row, not the implicit marker, so it is distinguished with one
// extra token of lookahead before committing to either reading.
func (p *Parser) parseArgType() (ast.Type, ast.ArgKind) {
	if p.tok == token.LBRACK && !p.peekIsPipe() {
		p.next()
		t := p.parseType()
		p.expect(token.RBRACK)
		return t, ast.ArgImplicit
	}
	return p.parseAppType(), ast.ArgExplicit
}

// parseType handles Type_ → AppType_ | "forall" Ident+ "." Type |
// ArgType "->" Type.
func (p *Parser) parseType() ast.Type {
	if p.trace {
		defer un(trace(p, "Type"))
	}
	start := p.pos
	if p.tok == token.FORALL {
		p.next()
		mark := p.identStack.Start()
		for p.tok == token.IDENT {
			id := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
			p.next()
			p.identStack.Push(id)
		}
		params := p.identStack.Drain(mark)
		if len(params) == 0 {
			p.errorExpected(p.pos, "identifier")
		}
		p.expect(token.PERIOD)
		body := p.parseType()
		return p.build.Forall(ast.NewSpan(start, body.End()), arena.AllocExtend(p.arena, params), body)
	}

	arg, argKind := p.parseArgType()
	if p.tok != token.ARROW {
		return arg
	}
	p.next()
	ret := p.parseType()
	return p.build.FunctionType(argKind, []ast.Type{arg}, ret)
}
