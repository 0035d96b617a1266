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
	"strings"

	"github.com/veinlang/vein/vein/arena"
	"github.com/veinlang/vein/vein/ast"
	"github.com/veinlang/vein/vein/token"
)

// parseMetadata consumes a leading run of DOC_COMMENT tokens and
// "#[name(args)]" attributes. A doc-comment run is aggregated into a
// single DocComment whose Text joins every line with "\n". Its Category
// is left empty: DOC_COMMENT tokens carry no comment category for the
// parser to copy.
func (p *Parser) parseMetadata() ast.Metadata {
	var doc *ast.DocComment
	if p.tok == token.DOC_COMMENT {
		start := p.pos
		var lines []string
		end := p.pos
		for p.tok == token.DOC_COMMENT {
			lines = append(lines, p.lit)
			end = p.pos + token.Pos(len(p.lit))
			p.next()
		}
		doc = &ast.DocComment{
			Span: ast.NewSpan(start, end),
			Text: strings.Join(lines, "\n"),
		}
	}

	var attrs []*ast.Attribute
	if p.tok == token.ATTRIBUTE {
		mark := p.attrStack.Start()
		for p.tok == token.ATTRIBUTE {
			p.attrStack.Push(p.parseAttribute())
		}
		attrs = p.attrStack.Drain(mark)
	}

	return ast.Metadata{Comment: doc, Attributes: arena.AllocExtend(p.arena, attrs)}
}

// parseAttribute handles a single "#[" name ("(" ... ")")? "]" form.
// The argument text between the parens is copied byte-for-byte from
// the original source via Source.Slice, never re-lexed.
func (p *Parser) parseAttribute() *ast.Attribute {
	start := p.pos
	p.next() // consume '#['

	if p.tok != token.IDENT {
		p.errorExpected(p.pos, "attribute name")
		p.sync(token.RBRACK)
		if p.tok == token.RBRACK {
			p.next()
		}
		return &ast.Attribute{Span: ast.NewSpan(start, p.pos), Name: p.env.EmptyId()}
	}
	name := p.env.FromStr(p.lit)
	p.next()

	var args *string
	if p.tok == token.LPAREN {
		p.next()
		argStart := p.pos
		depth := 1
		for depth > 0 && p.tok != token.EOF {
			switch p.tok {
			case token.LPAREN:
				depth++
			case token.RPAREN:
				depth--
				if depth == 0 {
					continue
				}
			}
			p.next()
		}
		raw := p.src.Slice(argStart, p.pos)
		args = &raw
		p.expect(token.RPAREN)
	}
	end := p.expect(token.RBRACK)
	return &ast.Attribute{Span: ast.NewSpan(start, end), Name: name, Arguments: args}
}
