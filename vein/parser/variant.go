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

// parseVariantType handles a type binding's variant right-hand side:
//
//	VariantField+ (".." AtomicType)?
//	"forall" Ident+ "." "(" VariantType ")"
//
// Quantifiers accumulate outward across nested foralls; the assembled
// row is wrapped in Variant and the collected quantifiers are returned
// alongside it, for the caller to wrap in Forall if there are any.
func (p *Parser) parseVariantType(start token.Pos) (ast.Type, []*ast.Ident) {
	if p.tok == token.FORALL {
		p.next()
		mark := p.identStack.Start()
		for p.tok == token.IDENT {
			id := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
			p.next()
			p.identStack.Push(id)
		}
		outer := p.identStack.Drain(mark)
		p.expect(token.PERIOD)
		p.expect(token.LPAREN)
		inner, innerParams := p.parseVariantType(p.pos)
		p.expect(token.RPAREN)
		return inner, append(outer, innerParams...)
	}

	mark := p.fieldRowStack.Start()
	for p.tok == token.PIPE {
		p.fieldRowStack.Push(p.parseVariantField())
	}
	fields := p.fieldRowStack.Drain(mark)

	var rest ast.Type
	end := p.pos
	if p.tok == token.ELLIPSIS {
		p.next()
		rest = p.parseAtomicType()
		end = rest.End()
	} else if len(fields) > 0 {
		end = fields[len(fields)-1].Value.End()
		rest = p.build.EmptyRow(end)
	} else {
		rest = p.build.EmptyRow(end)
	}

	row := p.build.ExtendFullRow(ast.NewSpan(start, end), nil, arena.AllocExtend(p.arena, fields), rest)
	return &ast.TypeVariant{Span: ast.NewSpan(start, end), Row: row}, nil
}

// parseVariantField handles one "| Ctor T1 .. Tn" or "| Ctor : T"
// alternative and lowers it to a row field per the variant-lowering
// law: a simple variant becomes "Ctor : T1 -> ... -> Tn -> Opaque"
// with every argument tagged Constructor; a GADT variant re-tags the
// leading arrow spine of its written type the same way, leaving the
// result type untouched.
func (p *Parser) parseVariantField() ast.RowField {
	start := p.pos
	p.expect(token.PIPE)
	meta := p.parseMetadata()
	if p.tok != token.IDENT {
		p.errorExpected(p.pos, "constructor name")
		p.next()
		return ast.RowField{Span: ast.NewSpan(start, p.pos), Metadata: meta, Name: p.env.EmptyId(), Value: p.build.Opaque(p.pos)}
	}
	name := p.identAt(ast.NewSpan(p.pos, p.pos+token.Pos(len(p.lit))), p.lit)
	if !name.Upper {
		p.errf(name.Pos(), "constructor names must start with an uppercase letter")
	}
	p.next()

	if p.tok == token.COLON {
		p.next()
		written := p.parseType()
		tagged := retagConstructorArgs(written)
		return ast.RowField{Span: ast.NewSpan(start, tagged.End()), Metadata: meta, Name: name.Name, Value: tagged}
	}

	mark := p.typeStack.Start()
	for p.startsAtomicType() {
		p.typeStack.Push(p.parseAtomicType())
	}
	args := p.typeStack.Drain(mark)
	end := name.End()
	if len(args) > 0 {
		end = args[len(args)-1].End()
	}
	body := p.build.FunctionType(ast.ArgConstructor, args, p.build.Opaque(end))
	return ast.RowField{Span: ast.NewSpan(start, end), Metadata: meta, Name: name.Name, Value: body}
}

// retagConstructorArgs walks the leading Function spine of a written
// GADT type and re-tags each argument's ArgKind as Constructor,
// leaving the eventual result type untouched.
func retagConstructorArgs(t ast.Type) ast.Type {
	fn, ok := t.(*ast.TypeFunction)
	if !ok {
		return t
	}
	return &ast.TypeFunction{
		Span:    fn.Span,
		ArgKind: ast.ArgConstructor,
		From:    fn.From,
		To:      retagConstructorArgs(fn.To),
	}
}
